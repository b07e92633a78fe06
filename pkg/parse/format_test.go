package parse

import "testing"

func TestFormatLatticeUpgrades(t *testing.T) {
	if got := Json.setDjs(); got != Djs {
		t.Fatalf("Json.setDjs() = %v, want Djs", got)
	}
	if got := Djs.setCjs(); got != Cjs {
		t.Fatalf("Djs.setCjs() = %v, want Cjs", got)
	}
	if got := Djs.setMjs(); got != Mjs {
		t.Fatalf("Djs.setMjs() = %v, want Mjs", got)
	}
}

func TestCjsAndMjsAreMutuallyExclusive(t *testing.T) {
	if Cjs.IsMjsCompatible() {
		t.Fatal("Cjs.IsMjsCompatible() = true, want false")
	}
	if Mjs.IsCjsCompatible() {
		t.Fatal("Mjs.IsCjsCompatible() = true, want false")
	}
}

func TestIsDjsReflectsPromotion(t *testing.T) {
	if Json.IsDjs() {
		t.Fatal("Json.IsDjs() = true, want false")
	}
	for _, f := range []Format{Djs, Cjs, Mjs} {
		if !f.IsDjs() {
			t.Fatalf("%v.IsDjs() = false, want true", f)
		}
	}
}
