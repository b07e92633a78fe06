package config

import "testing"

func TestDefaultUsesGlobalAllocator(t *testing.T) {
	c := Default()
	if c.Allocator != AllocatorGlobal {
		t.Fatalf("Default().Allocator = %v, want AllocatorGlobal", c.Allocator)
	}
	if c.MaxImportDepth != 0 {
		t.Fatalf("Default().MaxImportDepth = %d, want 0 (unbounded)", c.MaxImportDepth)
	}
}
