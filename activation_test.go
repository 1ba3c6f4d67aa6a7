package loom

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// activationFixture builds an activatable container with three children.
// Child "a" starts active so ModeSingle groups are valid.
func activationFixture(t *testing.T, mode ActivationMode) (*Tree, NodeRef, map[string]NodeRef) {
	t.Helper()
	tree := NewTree(NewContainer("root", Column))
	group, err := tree.Insert(tree.Root(), NewActivatable("tabs", Row, mode))
	if err != nil {
		t.Fatal(err)
	}

	refs := make(map[string]NodeRef)
	for _, name := range []string{"a", "b", "c"} {
		ref, err := tree.Insert(group, NewItem(name, WithActive(false)))
		if err != nil {
			t.Fatal(err)
		}
		refs[name] = ref
	}
	if _, err := tree.Activate(group, refs["a"]); err != nil {
		t.Fatal(err)
	}
	return tree, group, refs
}

func TestActivate_SingleReplacesPrevious(t *testing.T) {
	tree, group, refs := activationFixture(t, ModeSingle)

	previous, err := tree.Activate(group, refs["b"])
	if err != nil {
		t.Fatal(err)
	}
	if previous != refs["a"] {
		t.Errorf("previous = %d, want %d", previous, refs["a"])
	}

	g := tree.mustGet(group).Group()
	if diff := cmp.Diff([]NodeRef{refs["b"]}, g.Active()); diff != "" {
		t.Errorf("active set mismatch (-want +got):\n%s", diff)
	}
	if tree.mustGet(refs["a"]).Active() {
		t.Error("a still flagged active")
	}
	if !tree.mustGet(refs["b"]).Active() {
		t.Error("b not flagged active")
	}
}

func TestDeactivate_SingleRejectsEmptying(t *testing.T) {
	tree, group, refs := activationFixture(t, ModeSingle)

	err := tree.Deactivate(group, refs["a"])
	var inv *InvalidActivationError
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want InvalidActivationError", err)
	}
	if !tree.mustGet(refs["a"]).Active() {
		t.Error("rejected deactivation still cleared the flag")
	}
}

func TestDeactivate_SingleNullAllowsEmptying(t *testing.T) {
	tree, group, refs := activationFixture(t, ModeSingleNull)

	if err := tree.Deactivate(group, refs["a"]); err != nil {
		t.Fatal(err)
	}
	if got := tree.mustGet(group).Group().Active(); len(got) != 0 {
		t.Errorf("active set = %v, want empty", got)
	}
}

func TestActivate_MultipleAccumulates(t *testing.T) {
	tree, group, refs := activationFixture(t, ModeMultiple)

	if _, err := tree.Activate(group, refs["b"]); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Activate(group, refs["c"]); err != nil {
		t.Fatal(err)
	}

	g := tree.mustGet(group).Group()
	want := []NodeRef{refs["a"], refs["b"], refs["c"]}
	if diff := cmp.Diff(want, g.Active()); diff != "" {
		t.Errorf("active set mismatch (-want +got):\n%s", diff)
	}

	if err := tree.Deactivate(group, refs["b"]); err != nil {
		t.Fatal(err)
	}
	want = []NodeRef{refs["a"], refs["c"]}
	if diff := cmp.Diff(want, g.Active()); diff != "" {
		t.Errorf("active set after deactivate mismatch (-want +got):\n%s", diff)
	}
}

func TestActivate_Idempotent(t *testing.T) {
	tree, group, refs := activationFixture(t, ModeSingle)

	previous, err := tree.Activate(group, refs["a"])
	if err != nil {
		t.Fatal(err)
	}
	if previous != 0 {
		t.Errorf("re-activating the active child returned previous %d", previous)
	}
}

func TestActivate_RejectsNonChild(t *testing.T) {
	tree, group, _ := activationFixture(t, ModeSingle)
	outsider, err := tree.Insert(tree.Root(), NewItem("outsider"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = tree.Activate(group, outsider)
	var inv *InvalidActivationError
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want InvalidActivationError", err)
	}
}

func TestActivate_RejectsPlainContainer(t *testing.T) {
	tree := NewTree(NewContainer("root", Column))
	box, _ := tree.Insert(tree.Root(), NewContainer("box", Column))
	item, _ := tree.Insert(box, NewItem("item"))

	_, err := tree.Activate(box, item)
	var inv *InvalidActivationError
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want InvalidActivationError", err)
	}
}
