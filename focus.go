package loom

import "sort"

// FocusManager tracks the single focused component and derives tab order
// from the tree. A component can hold focus only while it is selectable,
// enabled, and visible.
type FocusManager struct {
	tree    *Tree
	bus     *Bus // nil suppresses focus/blur events
	focused NodeRef
}

// NewFocusManager creates a focus manager over the given tree. Focus and
// blur transitions are emitted on bus when it is non-nil.
func NewFocusManager(tree *Tree, bus *Bus) *FocusManager {
	return &FocusManager{tree: tree, bus: bus}
}

// Focused returns the currently focused ref, or 0 when nothing is focused.
func (f *FocusManager) Focused() NodeRef { return f.focused }

// TabOrder computes the deterministic focus traversal sequence: a
// depth-first walk filtered to selectable/enabled/visible components,
// with explicit tab indexes (ascending, ties in tree order) ahead of the
// unindexed rest in tree order.
func (f *FocusManager) TabOrder() []NodeRef {
	type entry struct {
		ref   NodeRef
		index int
	}
	var indexed, unindexed []entry
	f.tree.WalkVisible(func(ref NodeRef, c *Component) {
		if c.focusable() {
			if c.tabIndex > 0 {
				indexed = append(indexed, entry{ref: ref, index: c.tabIndex})
			} else {
				unindexed = append(unindexed, entry{ref: ref})
			}
		}
	})
	sort.SliceStable(indexed, func(a, b int) bool {
		return indexed[a].index < indexed[b].index
	})

	out := make([]NodeRef, 0, len(indexed)+len(unindexed))
	for _, e := range indexed {
		out = append(out, e.ref)
	}
	for _, e := range unindexed {
		out = append(out, e.ref)
	}
	return out
}

// SetFocus moves focus to ref, failing with NotFocusable if the target
// does not pass the selectable/enabled/visible predicate.
func (f *FocusManager) SetFocus(ref NodeRef) error {
	c, err := f.tree.Get(ref)
	if err != nil {
		return err
	}
	if !c.focusable() {
		return &NotFocusableError{Ref: ref, Name: c.name}
	}
	if f.focused == ref {
		return nil
	}
	f.blur()
	f.focused = ref
	if f.bus != nil {
		f.bus.Emit(ref, EventFocus, nil)
	}
	return nil
}

// ClearFocus leaves no component focused.
func (f *FocusManager) ClearFocus() {
	f.blur()
	f.focused = 0
}

func (f *FocusManager) blur() {
	if f.focused == 0 {
		return
	}
	prev := f.focused
	f.focused = 0
	if f.bus != nil && f.tree.Contains(prev) {
		f.bus.Emit(prev, EventBlur, nil)
	}
}

// Next moves focus to the following entry in tab order, wrapping at the
// end. Returns the newly focused ref, or 0 if nothing is focusable.
func (f *FocusManager) Next() NodeRef {
	return f.step(1)
}

// Prev moves focus to the preceding entry in tab order, wrapping at the
// start.
func (f *FocusManager) Prev() NodeRef {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) NodeRef {
	order := f.TabOrder()
	if len(order) == 0 {
		f.ClearFocus()
		return 0
	}
	pos := -1
	for i, ref := range order {
		if ref == f.focused {
			pos = i
			break
		}
	}
	var next NodeRef
	if pos == -1 {
		// Nothing (or something no longer focusable) focused: enter the
		// cycle at an end.
		if delta > 0 {
			next = order[0]
		} else {
			next = order[len(order)-1]
		}
	} else {
		next = order[(pos+delta+len(order))%len(order)]
	}
	if err := f.SetFocus(next); err != nil {
		return 0
	}
	return next
}

// MoveArrow navigates among the focused component's siblings: the direct
// selectable children of its parent container, along that container's
// primary axis only. It does not consult the global tab order and does
// not wrap. Returns the new focus and whether the key moved it.
func (f *FocusManager) MoveArrow(key Key) (NodeRef, bool) {
	c, err := f.tree.Get(f.focused)
	if err != nil || c.parent == 0 {
		return f.focused, false
	}
	parent := f.tree.mustGet(c.parent)

	delta, ok := arrowDelta(parent.style, key)
	if !ok {
		return f.focused, false
	}

	siblings := parent.children
	pos := -1
	for i, ref := range siblings {
		if ref == f.focused {
			pos = i
			break
		}
	}
	if pos == -1 {
		return f.focused, false
	}

	// Scan outward in the arrow direction for the next focusable sibling.
	for i := pos + delta; i >= 0 && i < len(siblings); i += delta {
		sib := f.tree.mustGet(siblings[i])
		if sib.focusable() {
			if err := f.SetFocus(siblings[i]); err != nil {
				return f.focused, false
			}
			return siblings[i], true
		}
	}
	return f.focused, false
}

// arrowDelta maps an arrow key to a child index delta for the container's
// primary axis. Keys perpendicular to the axis do not navigate; a Grid
// container navigates on both axes, rows being Columns apart.
func arrowDelta(st Style, key Key) (int, bool) {
	switch st.Direction {
	case Row:
		switch key {
		case KeyLeft:
			return -1, true
		case KeyRight:
			return 1, true
		}
	case Column:
		switch key {
		case KeyUp:
			return -1, true
		case KeyDown:
			return 1, true
		}
	case Grid:
		cols := st.Columns
		if cols < 1 {
			cols = 1
		}
		switch key {
		case KeyLeft:
			return -1, true
		case KeyRight:
			return 1, true
		case KeyUp:
			return -cols, true
		case KeyDown:
			return cols, true
		}
	}
	return 0, false
}

// handleRemoved clears focus if the focused component left the tree.
func (f *FocusManager) handleRemoved(ref NodeRef) {
	if f.focused == ref {
		f.focused = 0
	}
}

// Chain returns the focus chain used for key binding resolution: the
// focused component first, then its ancestors toward the root. Empty when
// nothing is focused.
func (f *FocusManager) Chain() []NodeRef {
	if f.focused == 0 || !f.tree.Contains(f.focused) {
		return nil
	}
	chain := []NodeRef{f.focused}
	for ancestor := range f.tree.Ancestors(f.focused) {
		chain = append(chain, ancestor)
	}
	return chain
}
