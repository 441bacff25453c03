package guest

import "testing"

func TestRefTableInsertGet(t *testing.T) {
	tbl := NewRefTable[string]()

	a := tbl.Insert("alpha")
	b := tbl.Insert("beta")
	if a == 0 || b == 0 {
		t.Fatal("insert minted ref 0")
	}
	if a == b {
		t.Fatal("distinct inserts share a ref")
	}

	if v, ok := tbl.Get(a); !ok || v != "alpha" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if v, ok := tbl.Get(b); !ok || v != "beta" {
		t.Errorf("Get(b) = %q, %v", v, ok)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d", tbl.Len())
	}
}

func TestRefTableZeroRefInvalid(t *testing.T) {
	tbl := NewRefTable[int]()
	tbl.Insert(7)

	if _, ok := tbl.Get(0); ok {
		t.Error("Get(0) succeeded")
	}
	if _, ok := tbl.Drop(0); ok {
		t.Error("Drop(0) succeeded")
	}
}

func TestRefTableDrop(t *testing.T) {
	tbl := NewRefTable[int]()
	ref := tbl.Insert(42)

	v, ok := tbl.Drop(ref)
	if !ok || v != 42 {
		t.Fatalf("Drop = %d, %v", v, ok)
	}
	if _, ok := tbl.Get(ref); ok {
		t.Error("dropped ref still resolves")
	}
	if _, ok := tbl.Drop(ref); ok {
		t.Error("double drop succeeded")
	}
	if tbl.Len() != 0 {
		t.Errorf("Len = %d", tbl.Len())
	}
}

func TestRefTableSlotReuse(t *testing.T) {
	tbl := NewRefTable[string]()
	a := tbl.Insert("a")
	b := tbl.Insert("b")

	tbl.Drop(a)
	c := tbl.Insert("c")
	if c != a {
		t.Errorf("freed slot not reused: c = %d, want %d", c, a)
	}
	if v, ok := tbl.Get(c); !ok || v != "c" {
		t.Errorf("Get(c) = %q, %v", v, ok)
	}
	if v, ok := tbl.Get(b); !ok || v != "b" {
		t.Errorf("Get(b) = %q, %v", v, ok)
	}
}

func TestRefTableOutOfRange(t *testing.T) {
	tbl := NewRefTable[int]()
	tbl.Insert(1)

	if _, ok := tbl.Get(99); ok {
		t.Error("out-of-range ref resolved")
	}
	if _, ok := tbl.Drop(99); ok {
		t.Error("out-of-range drop succeeded")
	}
}
