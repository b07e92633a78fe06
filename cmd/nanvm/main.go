// Command nanvm is the CLI entry wrapper around the core value runtime
// (§6 "CLI"): it reads a JSON/DJS/CJS/MJS input file, resolves its
// require()/import graph, and writes the result back as text in any of
// the four wire formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/functionalscript/nanvm-sub000/pkg/config"
	"github.com/functionalscript/nanvm-sub000/pkg/heap"
	"github.com/functionalscript/nanvm-sub000/pkg/ioabs"
	"github.com/functionalscript/nanvm-sub000/pkg/module"
	"github.com/functionalscript/nanvm-sub000/pkg/parse"
	"github.com/functionalscript/nanvm-sub000/pkg/serialize"
	"github.com/functionalscript/nanvm-sub000/pkg/snapshot"
	"github.com/functionalscript/nanvm-sub000/pkg/value"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nanvm",
		Short: "nanvm — a miniature JSON-superset value runtime",
	}

	var format string
	var cacheIn string
	var cacheOut string
	var moduleRoot string
	var maxImportDepth int
	var allocatorFlag string

	runCmd := &cobra.Command{
		Use:   "run <input> <output>",
		Short: "Parse input and write it back as JSON/DJS/CJS/MJS text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(moduleRoot, maxImportDepth, allocatorFlag, format)
			if err != nil {
				return err
			}
			return runRun(args[0], args[1], cfg, cacheIn, cacheOut)
		},
	}
	runCmd.Flags().StringVar(&format, "format", "", "output format: json, djs, cjs, mjs (default: the format the parse settled on)")
	runCmd.Flags().StringVar(&cacheIn, "cache-in", "", "restore a module cache snapshot before parsing")
	runCmd.Flags().StringVar(&cacheOut, "cache-out", "", "save the resolved module cache snapshot after parsing")
	runCmd.Flags().StringVar(&moduleRoot, "module-root", "", "directory a relative <input> resolves against (default: current directory)")
	runCmd.Flags().IntVar(&maxImportDepth, "max-import-depth", 0, "bound require()/import recursion (0 means unbounded)")
	runCmd.Flags().StringVar(&allocatorFlag, "allocator", "global", "heap backend new values allocate through: global or arena")

	checkCmd := &cobra.Command{
		Use:   "check <input>",
		Short: "Parse input and report success or the first parse error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(moduleRoot, maxImportDepth, allocatorFlag, "")
			if err != nil {
				return err
			}
			return runCheck(args[0], cfg, cacheIn, cacheOut)
		},
	}
	checkCmd.Flags().StringVar(&cacheIn, "cache-in", "", "restore a module cache snapshot before parsing")
	checkCmd.Flags().StringVar(&cacheOut, "cache-out", "", "save the resolved module cache snapshot after parsing")
	checkCmd.Flags().StringVar(&moduleRoot, "module-root", "", "directory a relative <input> resolves against (default: current directory)")
	checkCmd.Flags().IntVar(&maxImportDepth, "max-import-depth", 0, "bound require()/import recursion (0 means unbounded)")
	checkCmd.Flags().StringVar(&allocatorFlag, "allocator", "global", "heap backend new values allocate through: global or arena")

	rootCmd.AddCommand(runCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nanvm:", err)
		os.Exit(1)
	}
}

// buildConfig binds the CLI flags into a config.Config, per SPEC_FULL.md
// §1's "module root, max-import-depth, arena-vs-global allocator
// selection" claim.
func buildConfig(moduleRoot string, maxImportDepth int, allocatorFlag, format string) (config.Config, error) {
	alloc, err := parseAllocatorFlag(allocatorFlag)
	if err != nil {
		return config.Config{}, err
	}
	return config.Config{
		ModuleRoot:     moduleRoot,
		MaxImportDepth: maxImportDepth,
		Allocator:      alloc,
		Format:         format,
	}, nil
}

func parseAllocatorFlag(s string) (config.Allocator, error) {
	switch s {
	case "", "global":
		return config.AllocatorGlobal, nil
	case "arena":
		return config.AllocatorArena, nil
	default:
		return 0, fmt.Errorf("nanvm: unknown --allocator %q (want global or arena)", s)
	}
}

// resolveInput joins input against cfg.ModuleRoot when input isn't
// already absolute, so a run/check invocation can be pointed at a tree
// rooted anywhere without the caller computing the join itself.
func resolveInput(input string, cfg config.Config) string {
	if cfg.ModuleRoot == "" || filepath.IsAbs(input) {
		return input
	}
	return filepath.Join(cfg.ModuleRoot, input)
}

// newAllocator builds the value.Allocator cfg.Allocator selects. For the
// arena backend it also returns the backing heap.Arena so the caller can
// report its live-block/byte accounting once the parse completes.
func newAllocator(cfg config.Config) (value.Allocator, *heap.Arena) {
	if cfg.Allocator != config.AllocatorArena {
		return value.GlobalAllocator, nil
	}
	arena := heap.NewArena()
	return value.NewArenaAllocator(arena), arena
}

func loadCache(cacheIn string, io ioabs.IO) (*module.Cache, error) {
	if cacheIn == "" {
		return module.New(), nil
	}
	return snapshot.Load(cacheIn, io)
}

func saveCache(cacheOut string, cache *module.Cache) error {
	if cacheOut == "" {
		return nil
	}
	return snapshot.Save(cacheOut, cache)
}

func runRun(input, output string, cfg config.Config, cacheIn, cacheOut string) error {
	io := ioabs.OS{}
	cache, err := loadCache(cacheIn, io)
	if err != nil {
		return err
	}
	alloc, arena := newAllocator(cfg)
	res, err := parse.ParseWithOptions(io, resolveInput(input, cfg), cache, cfg.MaxImportDepth, alloc)
	if err != nil {
		return err
	}
	if err := saveCache(cacheOut, cache); err != nil {
		return err
	}
	reportArena(arena)
	outFormat := res.Format
	if cfg.Format != "" {
		outFormat = parseFormatFlag(cfg.Format)
	}
	text, err := serialize.ForFormat(res.Value, outFormat)
	if err != nil {
		return err
	}
	return io.Write(output, []byte(text))
}

func runCheck(input string, cfg config.Config, cacheIn, cacheOut string) error {
	io := ioabs.OS{}
	cache, err := loadCache(cacheIn, io)
	if err != nil {
		return err
	}
	alloc, arena := newAllocator(cfg)
	res, err := parse.ParseWithOptions(io, resolveInput(input, cfg), cache, cfg.MaxImportDepth, alloc)
	if err != nil {
		return err
	}
	if err := saveCache(cacheOut, cache); err != nil {
		return err
	}
	reportArena(arena)
	fmt.Printf("ok: parsed as %s\n", res.Format)
	return nil
}

// reportArena prints the arena's live-block/byte accounting when the
// arena allocator was selected; a nil arena (global allocator) is a
// silent no-op.
func reportArena(arena *heap.Arena) {
	if arena == nil {
		return
	}
	fmt.Printf("arena: %d live blocks, %d live bytes\n", arena.LiveBlocks(), arena.LiveBytes())
}

func parseFormatFlag(s string) parse.Format {
	switch s {
	case "djs":
		return parse.Djs
	case "cjs":
		return parse.Cjs
	case "mjs":
		return parse.Mjs
	default:
		return parse.Json
	}
}
