package loom

// ActivationMode constrains how many children of an activatable container
// may be active simultaneously.
type ActivationMode uint8

const (
	// ModeSingle requires exactly one active child.
	ModeSingle ActivationMode = iota
	// ModeSingleNull allows at most one active child.
	ModeSingleNull
	// ModeMultiple allows any subset of active children.
	ModeMultiple
)

// String returns the mode's configuration-facing name.
func (m ActivationMode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeSingleNull:
		return "single_null"
	case ModeMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// ActivationGroup tracks the active subset of an activatable container's
// children. It is owned by the container and mutated only through
// Tree.Activate/Tree.Deactivate.
type ActivationGroup struct {
	Mode   ActivationMode
	active []NodeRef // activation order
}

// Active returns the active child refs in activation order.
func (g *ActivationGroup) Active() []NodeRef {
	out := make([]NodeRef, len(g.active))
	copy(out, g.active)
	return out
}

// IsActive reports whether ref is in the active set.
func (g *ActivationGroup) IsActive(ref NodeRef) bool {
	for _, r := range g.active {
		if r == ref {
			return true
		}
	}
	return false
}

func (g *ActivationGroup) add(ref NodeRef) {
	if !g.IsActive(ref) {
		g.active = append(g.active, ref)
	}
}

func (g *ActivationGroup) remove(ref NodeRef) {
	for i, r := range g.active {
		if r == ref {
			g.active = append(g.active[:i], g.active[i+1:]...)
			return
		}
	}
}

// activatable resolves container and child for an activation change,
// validating the container kind and the parent/child relationship.
func (t *Tree) activatable(container, child NodeRef) (*Component, *Component, error) {
	cont, err := t.Get(container)
	if err != nil {
		return nil, nil, err
	}
	if cont.kind != KindActivatable {
		return nil, nil, &InvalidActivationError{
			Container: t.Path(container),
			Reason:    "component is not an activatable container",
		}
	}
	ch, err := t.Get(child)
	if err != nil {
		return nil, nil, err
	}
	if ch.parent != container {
		return nil, nil, &InvalidActivationError{
			Container: t.Path(container),
			Child:     ch.name,
			Reason:    "component is not a direct child of the container",
		}
	}
	return cont, ch, nil
}

// Activate adds child to its container's active set. Under ModeSingle and
// ModeSingleNull the previously active child (if any) is deactivated
// first; its ref is returned so callers can emit a deactivation event.
func (t *Tree) Activate(container, child NodeRef) (previous NodeRef, err error) {
	cont, ch, err := t.activatable(container, child)
	if err != nil {
		return 0, err
	}
	g := cont.group
	if g.IsActive(child) {
		return 0, nil
	}
	if g.Mode == ModeSingle || g.Mode == ModeSingleNull {
		if len(g.active) > 0 {
			previous = g.active[0]
			t.mustGet(previous).active = false
			g.remove(previous)
		}
	}
	g.add(child)
	ch.active = true
	return previous, nil
}

// Deactivate removes child from its container's active set. A plain
// ModeSingle group rejects a change that would leave it empty.
func (t *Tree) Deactivate(container, child NodeRef) error {
	cont, ch, err := t.activatable(container, child)
	if err != nil {
		return err
	}
	g := cont.group
	if !g.IsActive(child) {
		return nil
	}
	if g.Mode == ModeSingle && len(g.active) == 1 {
		return &InvalidActivationError{
			Container: t.Path(container),
			Child:     ch.name,
			Reason:    "deactivation would leave a single-mode group with no active child",
		}
	}
	g.remove(child)
	ch.active = false
	return nil
}
