// Package config holds the plain CLI-level option struct cmd/nanvm
// binds its flags into. Per §9 "Config objects" and SPEC_FULL.md §1,
// this mirrors the donor's own search.Config/stoke.Config convention —
// a plain struct built from flags, no parsing library.
package config

// Allocator selects which heap.Block backend (§4.C) new values are
// allocated through.
type Allocator uint8

const (
	AllocatorGlobal Allocator = iota
	AllocatorArena
)

// Config is the set of options cmd/nanvm's commands bind their flags
// into.
type Config struct {
	// ModuleRoot is the directory a relative <input> path is joined
	// against; require()/import paths resolve relative to the importing
	// file.
	ModuleRoot string
	// MaxImportDepth bounds the module loader's recursion (§4.K) as a
	// defensive limit beyond the spec's own cycle detection; 0 means
	// unbounded.
	MaxImportDepth int
	// Allocator selects the heap backend new top-level parses use.
	Allocator Allocator
	// Format, if non-empty, forces cmd/nanvm run's output format
	// instead of deferring to the format the parse itself settled on.
	Format string
}

// Default returns the zero-value configuration: global allocator,
// unbounded import depth, output format inferred from the parse.
func Default() Config {
	return Config{Allocator: AllocatorGlobal}
}
