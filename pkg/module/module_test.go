package module

import "testing"

func TestResolveSibling(t *testing.T) {
	got := Resolve("/main.djs", "./other.djs")
	want := "/other.djs"
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveSubdirectory(t *testing.T) {
	got := Resolve("/sub/main.djs", "./other.djs")
	want := "/sub/other.djs"
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveParentClimb(t *testing.T) {
	got := Resolve("/sub/dir/main.djs", "../other.djs")
	want := "/sub/other.djs"
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveParentBeyondRootIsPreserved(t *testing.T) {
	got := Resolve("main.djs", "../../other.djs")
	want := "../../other.djs"
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveRootedParentBeyondRootIsPreserved(t *testing.T) {
	got := Resolve("/main.djs", "../other.djs")
	want := "/../other.djs"
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestNewCacheIsEmpty(t *testing.T) {
	c := New()
	if len(c.Progress) != 0 || len(c.Complete) != 0 {
		t.Fatalf("New() cache is not empty: %+v", c)
	}
}
