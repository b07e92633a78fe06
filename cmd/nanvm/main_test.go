package main

import (
	"testing"

	"github.com/functionalscript/nanvm-sub000/pkg/config"
)

func TestBuildConfigBindsFlags(t *testing.T) {
	cfg, err := buildConfig("/root", 5, "arena", "djs")
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.ModuleRoot != "/root" {
		t.Fatalf("ModuleRoot = %q, want /root", cfg.ModuleRoot)
	}
	if cfg.MaxImportDepth != 5 {
		t.Fatalf("MaxImportDepth = %d, want 5", cfg.MaxImportDepth)
	}
	if cfg.Allocator != config.AllocatorArena {
		t.Fatalf("Allocator = %v, want AllocatorArena", cfg.Allocator)
	}
	if cfg.Format != "djs" {
		t.Fatalf("Format = %q, want djs", cfg.Format)
	}
}

func TestBuildConfigRejectsUnknownAllocator(t *testing.T) {
	if _, err := buildConfig("", 0, "bogus", ""); err == nil {
		t.Fatal("buildConfig with an unknown --allocator value should fail")
	}
}

func TestResolveInputJoinsModuleRoot(t *testing.T) {
	cfg := config.Config{ModuleRoot: "/work"}
	if got := resolveInput("main.djs", cfg); got != "/work/main.djs" {
		t.Fatalf("resolveInput = %q, want /work/main.djs", got)
	}
}

func TestResolveInputLeavesAbsolutePathAlone(t *testing.T) {
	cfg := config.Config{ModuleRoot: "/work"}
	if got := resolveInput("/elsewhere/main.djs", cfg); got != "/elsewhere/main.djs" {
		t.Fatalf("resolveInput = %q, want /elsewhere/main.djs unchanged", got)
	}
}

func TestNewAllocatorArenaBacking(t *testing.T) {
	cfg := config.Config{Allocator: config.AllocatorArena}
	_, arena := newAllocator(cfg)
	if arena == nil {
		t.Fatal("newAllocator with AllocatorArena should return a non-nil arena")
	}
}

func TestNewAllocatorGlobalHasNoArena(t *testing.T) {
	cfg := config.Config{Allocator: config.AllocatorGlobal}
	_, arena := newAllocator(cfg)
	if arena != nil {
		t.Fatal("newAllocator with AllocatorGlobal should return a nil arena")
	}
}
