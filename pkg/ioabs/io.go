// Package ioabs is the I/O abstraction the module loader reads through
// (§6 "I/O abstraction"). The core never touches os directly: it depends
// on this narrow interface so tests can swap in an in-memory filesystem
// without touching disk.
package ioabs

import (
	"os"
	"sort"

	"github.com/pkg/errors"
)

// IO is the interface the parser's module loader depends on. Only
// ReadToString is on the loader's hot path; Write and CurrentDir exist
// for tooling (the CLI's output step, and tests that seed a working
// directory).
type IO interface {
	ReadToString(path string) (string, error)
	Write(path string, data []byte) error
	CurrentDir() (string, error)
}

// OS is the real filesystem backing.
type OS struct{}

func (OS) ReadToString(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", p)
	}
	return string(b), nil
}

func (OS) Write(p string, data []byte) error {
	return errors.Wrapf(os.WriteFile(p, data, 0o644), "write %s", p)
}

func (OS) CurrentDir() (string, error) {
	d, err := os.Getwd()
	return d, errors.Wrap(err, "getwd")
}

// Virtual is an in-memory backing for tests: a flat map of path to
// file contents, plus a notional current directory.
type Virtual struct {
	Files   map[string]string
	WorkDir string
}

// NewVirtual builds an empty in-memory filesystem rooted at "/".
func NewVirtual() *Virtual {
	return &Virtual{Files: map[string]string{}, WorkDir: "/"}
}

func (v *Virtual) ReadToString(p string) (string, error) {
	s, ok := v.Files[p]
	if !ok {
		return "", errors.Errorf("no such file: %s", p)
	}
	return s, nil
}

func (v *Virtual) Write(p string, data []byte) error {
	v.Files[p] = string(data)
	return nil
}

func (v *Virtual) CurrentDir() (string, error) {
	return v.WorkDir, nil
}

// Paths returns the virtual filesystem's file paths in sorted order, for
// deterministic test assertions.
func (v *Virtual) Paths() []string {
	ps := make([]string, 0, len(v.Files))
	for p := range v.Files {
		ps = append(ps, p)
	}
	sort.Strings(ps)
	return ps
}
