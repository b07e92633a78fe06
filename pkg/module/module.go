// Package module implements the module cache and path resolution of
// §4.K: every require()/import that the parser encounters is resolved
// to a canonical path, checked against two sets (in-progress and
// complete) for cycles and memoisation, and loaded at most once.
package module

import (
	"strings"

	"github.com/functionalscript/nanvm-sub000/pkg/value"
)

// Cache is owned by one top-level parse (§5 "Shared state": "the module
// cache is owned by the parse context; it is never shared across
// threads"). Progress and Complete are keyed by canonicalised path and
// must never both contain the same key at once.
type Cache struct {
	Progress map[string]bool
	Complete map[string]value.Any
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{Progress: map[string]bool{}, Complete: map[string]value.Any{}}
}

// Resolve implements resolve(current_path, relative) (§4.K): join the
// directory of current_path with relative, normalising ".." segments by
// consuming one parent directory segment each, but never climbing above
// the root (a ".." with nothing left to consume is kept literally,
// matching the spec's "never beyond the root, which preserves ..").
func Resolve(currentPath, relative string) string {
	dir := dirname(currentPath)
	joined := dir
	if joined != "" && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	joined += relative
	return normalize(joined)
}

func dirname(p string) string {
	i := strings.LastIndexByte(p, '/')
	switch {
	case i < 0:
		return ""
	case i == 0:
		return "/"
	default:
		return p[:i]
	}
}

// normalize collapses "." and ".." segments left to right, consuming one
// parent segment per "..", but never beyond the root: a ".." with
// nothing left to consume is preserved literally, for rooted and
// non-rooted paths alike (§4.K).
func normalize(p string) string {
	rooted := strings.HasPrefix(p, "/")
	segments := strings.Split(p, "/")
	var out []string
	for _, s := range segments {
		switch s {
		case "", ".":
			continue
		case "..":
			if n := len(out); n > 0 && out[n-1] != ".." {
				out = out[:n-1]
			} else {
				out = append(out, "..")
			}
		default:
			out = append(out, s)
		}
	}
	joined := strings.Join(out, "/")
	if rooted {
		return "/" + joined
	}
	return joined
}
