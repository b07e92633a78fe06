// Package snapshot persists a module.Cache's resolved-module set to
// disk via encoding/gob, grounded on the donor's
// pkg/result/checkpoint.go SaveCheckpoint/LoadCheckpoint pattern (gob
// Encoder/Decoder over a plain struct). cmd/nanvm's `check` subcommand
// uses this under --cache-out so that repeated runs against the same
// module tree can skip re-parsing already-resolved files.
//
// A value.Any cannot itself cross a gob boundary (its reference
// payloads are refcounted heap.Block pointers, meaningless in a new
// process), so a snapshot instead stores each completed module's
// canonical path alongside its serialized JSON text; restoring a
// snapshot re-parses that text back into a fresh value.Any through
// pkg/serialize's inverse, pkg/parse.
package snapshot

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	"github.com/functionalscript/nanvm-sub000/pkg/ioabs"
	"github.com/functionalscript/nanvm-sub000/pkg/module"
	"github.com/functionalscript/nanvm-sub000/pkg/parse"
	"github.com/functionalscript/nanvm-sub000/pkg/serialize"
)

// file is the on-disk gob record: one entry per module.Cache.Complete
// path, holding its canonical JSON text.
type file struct {
	Modules map[string]string
}

// Save writes every completed module in cache to path as JSON text.
func Save(path string, cache *module.Cache) error {
	f := file{Modules: make(map[string]string, len(cache.Complete))}
	for p, v := range cache.Complete {
		text, err := serialize.ToJSON(v)
		if err != nil {
			return errors.Wrapf(err, "serialize cached module %s", p)
		}
		f.Modules[p] = text
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create snapshot %s", path)
	}
	defer out.Close()
	return errors.Wrap(gob.NewEncoder(out).Encode(&f), "encode snapshot")
}

// Load reads path and returns a module.Cache whose Complete set is
// repopulated by re-parsing each cached module's JSON text (io is only
// needed because pkg/parse's entry points take one; no file is
// actually read back off it for already-complete modules).
func Load(path string, io ioabs.IO) (*module.Cache, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open snapshot %s", path)
	}
	defer in.Close()
	var f file
	if err := gob.NewDecoder(in).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	cache := module.New()
	for p, text := range f.Modules {
		res, err := parse.ParseString(io, text)
		if err != nil {
			return nil, errors.Wrapf(err, "restore cached module %s", p)
		}
		cache.Complete[p] = res.Value
	}
	return cache, nil
}
