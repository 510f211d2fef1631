package symbols

import "testing"

func TestDeclareAndLookup(t *testing.T) {
	root := NewScope[int](nil)
	if !root.Declare("a", 1) {
		t.Fatal("first declaration should succeed")
	}
	if root.Declare("a", 2) {
		t.Error("redeclaration in the same scope should fail")
	}
	if v, ok := root.Lookup("a"); !ok || v != 1 {
		t.Errorf("Lookup(a) = %d, %v", v, ok)
	}
	if _, ok := root.Lookup("missing"); ok {
		t.Error("Lookup of an unbound name should fail")
	}
}

func TestShadowing(t *testing.T) {
	root := NewScope[string](nil)
	root.Declare("x", "outer")
	child := NewScope[string](root)
	if !child.Declare("x", "inner") {
		t.Fatal("shadowing an outer binding should succeed")
	}
	if v, _ := child.Lookup("x"); v != "inner" {
		t.Errorf("child sees %q, want inner", v)
	}
	if v, _ := root.Lookup("x"); v != "outer" {
		t.Errorf("root sees %q, want outer", v)
	}
}

func TestAssign(t *testing.T) {
	root := NewScope[int](nil)
	root.Declare("x", 1)
	child := NewScope[int](root)

	// Assignment through a child scope updates the outer binding.
	if !child.Assign("x", 5) {
		t.Fatal("Assign should find the outer binding")
	}
	if v, _ := root.Lookup("x"); v != 5 {
		t.Errorf("root x = %d, want 5", v)
	}
	if child.Assign("y", 1) {
		t.Error("Assign to an unbound name should fail")
	}
}

func TestParent(t *testing.T) {
	root := NewScope[int](nil)
	child := NewScope[int](root)
	if child.Parent() != root {
		t.Error("Parent should return the enclosing scope")
	}
	if root.Parent() != nil {
		t.Error("root Parent should be nil")
	}
}
