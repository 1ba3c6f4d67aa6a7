package loom

import (
	"fmt"
	"iter"
	"strings"

	"github.com/loomui/loom/internal/layout"
)

// NodeRef is an opaque handle into a Tree's node table. Refs are never
// reused; a ref whose component has been removed resolves to NotFound.
// The zero ref is invalid.
type NodeRef uint64

// Tree owns the component hierarchy. It is the single owner of all nodes:
// parent and children are stored as refs into the node table, so removal
// of a subtree atomically invalidates every ref within it.
//
// All lookups are pure; Insert and Remove are the only structural
// mutations and re-validate uniqueness before committing.
type Tree struct {
	nodes   map[NodeRef]*Component
	byID    map[string]NodeRef
	root    NodeRef
	nextRef NodeRef
	dirty   bool

	// Engine hooks for lifecycle events. Nil outside an engine.
	onInsert func(NodeRef)
	onRemove func(NodeRef)
}

// NewTree creates a tree owning root as its topmost component.
func NewTree(root *Component) *Tree {
	t := &Tree{
		nodes: make(map[NodeRef]*Component),
		byID:  make(map[string]NodeRef),
		dirty: true,
	}
	t.root = t.attach(root)
	if root.id != "" {
		t.byID[root.id] = t.root
	}
	return t
}

func (t *Tree) attach(c *Component) NodeRef {
	t.nextRef++
	c.ref = t.nextRef
	t.nodes[c.ref] = c
	return c.ref
}

// Root returns the ref of the tree's root component.
func (t *Tree) Root() NodeRef { return t.root }

// Len returns the number of components in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Contains reports whether ref is live in this tree.
func (t *Tree) Contains(ref NodeRef) bool {
	_, ok := t.nodes[ref]
	return ok
}

// Get resolves a ref to its component, failing with NotFound on a stale
// or unknown ref.
func (t *Tree) Get(ref NodeRef) (*Component, error) {
	c, ok := t.nodes[ref]
	if !ok {
		return nil, &NotFoundError{Ref: ref}
	}
	return c, nil
}

// MustGet resolves a ref known to be live. It panics on a stale ref and
// is reserved for internal traversal over refs the tree itself produced.
func (t *Tree) mustGet(ref NodeRef) *Component {
	c, ok := t.nodes[ref]
	if !ok {
		panic(fmt.Sprintf("loom: stale ref %d in tree traversal", ref))
	}
	return c
}

// Parent returns the parent ref, or 0 for the root.
func (t *Tree) Parent(ref NodeRef) (NodeRef, error) {
	c, err := t.Get(ref)
	if err != nil {
		return 0, err
	}
	return c.parent, nil
}

// Children returns the ordered child refs of a container.
func (t *Tree) Children(ref NodeRef) ([]NodeRef, error) {
	c, err := t.Get(ref)
	if err != nil {
		return nil, err
	}
	out := make([]NodeRef, len(c.children))
	copy(out, c.children)
	return out, nil
}

// Path returns the dotted name path of a component below the root
// ("" for the root itself).
func (t *Tree) Path(ref NodeRef) string {
	c, ok := t.nodes[ref]
	if !ok {
		return ""
	}
	var names []string
	for c.parent != 0 {
		names = append(names, c.name)
		c = t.mustGet(c.parent)
	}
	// Reverse into root-first order.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, ".")
}

// Insert attaches a detached component under parent. The optional index
// places it among the existing children (clamped); by default it is
// appended. Fails with DuplicateName if a sibling already uses the name,
// or DuplicateId if the id collides anywhere in the tree.
func (t *Tree) Insert(parent NodeRef, c *Component, index ...int) (NodeRef, error) {
	p, err := t.Get(parent)
	if err != nil {
		return 0, err
	}
	if !p.kind.IsContainer() {
		return 0, fmt.Errorf("cannot insert under item %q", t.Path(parent))
	}
	if c.ref != 0 {
		return 0, fmt.Errorf("component %q is already attached", c.name)
	}
	for _, sib := range p.children {
		if t.mustGet(sib).name == c.name {
			return 0, &DuplicateNameError{Parent: t.Path(parent), Name: c.name}
		}
	}
	if c.id != "" {
		if existing, ok := t.byID[c.id]; ok {
			return 0, &DuplicateIDError{ID: c.id, Existing: t.Path(existing)}
		}
	}

	ref := t.attach(c)
	c.parent = parent
	at := len(p.children)
	if len(index) > 0 {
		at = index[0]
		if at < 0 {
			at = 0
		}
		if at > len(p.children) {
			at = len(p.children)
		}
	}
	p.children = append(p.children, 0)
	copy(p.children[at+1:], p.children[at:])
	p.children[at] = ref

	if c.id != "" {
		t.byID[c.id] = ref
	}
	t.dirty = true
	if t.onInsert != nil {
		t.onInsert(ref)
	}
	return ref, nil
}

// Remove detaches the subtree rooted at ref, invalidating every ref
// within it. The root cannot be removed.
func (t *Tree) Remove(ref NodeRef) error {
	c, err := t.Get(ref)
	if err != nil {
		return err
	}
	if ref == t.root {
		return fmt.Errorf("cannot remove the root component")
	}

	// Detach from the parent first so the subtree is unreachable even if
	// a removal hook looks at the tree.
	p := t.mustGet(c.parent)
	for i, child := range p.children {
		if child == ref {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}

	t.removeSubtree(ref)
	t.dirty = true
	return nil
}

// removeSubtree tears down children first, mirroring unmount order.
func (t *Tree) removeSubtree(ref NodeRef) {
	c := t.mustGet(ref)
	for _, child := range c.children {
		t.removeSubtree(child)
	}
	if t.onRemove != nil {
		t.onRemove(ref)
	}
	if c.id != "" {
		delete(t.byID, c.id)
	}
	delete(t.nodes, ref)
	c.ref = 0
	c.parent = 0
}

// FindByID resolves a tree-wide id in O(1).
func (t *Tree) FindByID(id string) (NodeRef, bool) {
	ref, ok := t.byID[id]
	return ref, ok
}

// FindByPath resolves a dotted chain of sibling names starting at the
// root's children. It fails with NotFound on any missing segment.
func (t *Tree) FindByPath(path string) (NodeRef, error) {
	if path == "" {
		return t.root, nil
	}
	current := t.root
	for _, seg := range strings.Split(path, ".") {
		c := t.mustGet(current)
		next := NodeRef(0)
		for _, child := range c.children {
			if t.mustGet(child).name == seg {
				next = child
				break
			}
		}
		if next == 0 {
			return 0, &NotFoundError{Path: path}
		}
		current = next
	}
	return current, nil
}

// Find returns a lazy, restartable sequence of refs matching pred, in
// depth-first pre-order. Each range over the sequence re-walks the tree.
func (t *Tree) Find(pred func(*Component) bool) iter.Seq[NodeRef] {
	return func(yield func(NodeRef) bool) {
		t.walk(t.root, func(ref NodeRef, c *Component) bool {
			if pred(c) {
				return yield(ref)
			}
			return true
		})
	}
}

// Ancestors returns the chain from ref's parent to the root, nearest
// first.
func (t *Tree) Ancestors(ref NodeRef) iter.Seq[NodeRef] {
	return func(yield func(NodeRef) bool) {
		c, ok := t.nodes[ref]
		if !ok {
			return
		}
		for c.parent != 0 {
			if !yield(c.parent) {
				return
			}
			c = t.mustGet(c.parent)
		}
	}
}

// Walk visits every component in depth-first pre-order. Returning false
// from fn stops the entire walk, including pending siblings.
func (t *Tree) Walk(fn func(NodeRef, *Component) bool) {
	t.walk(t.root, fn)
}

// WalkVisible visits every visible component in depth-first pre-order.
// A hidden component is skipped along with its whole subtree; siblings
// after it are still visited.
func (t *Tree) WalkVisible(fn func(NodeRef, *Component)) {
	t.walkVisible(t.root, fn)
}

func (t *Tree) walkVisible(ref NodeRef, fn func(NodeRef, *Component)) {
	c := t.mustGet(ref)
	if !c.visible {
		return
	}
	fn(ref, c)
	for _, child := range c.children {
		t.walkVisible(child, fn)
	}
}

func (t *Tree) walk(ref NodeRef, fn func(NodeRef, *Component) bool) bool {
	c := t.mustGet(ref)
	if !fn(ref, c) {
		return false
	}
	for _, child := range c.children {
		if !t.walk(child, fn) {
			return false
		}
	}
	return true
}

// MarkDirty schedules a layout pass for the next tick.
func (t *Tree) MarkDirty() { t.dirty = true }

// Dirty reports whether geometry is stale.
func (t *Tree) Dirty() bool { return t.dirty }

// CalculateLayout computes geometry for the whole tree within the
// available rectangle and clears the dirty flag. Layout never fails.
func (t *Tree) CalculateLayout(available Rect) {
	layout.Calculate(treeNode{t: t, c: t.mustGet(t.root)}, available)
	t.dirty = false
}

// treeNode adapts a component (plus its owning tree, for child ref
// resolution) to the layout engine's Layoutable interface.
type treeNode struct {
	t *Tree
	c *Component
}

var _ layout.Layoutable = treeNode{}

func (n treeNode) LayoutStyle() layout.Style { return n.c.style }

func (n treeNode) LayoutChildren() []layout.Layoutable {
	out := make([]layout.Layoutable, len(n.c.children))
	for i, ref := range n.c.children {
		out[i] = treeNode{t: n.t, c: n.t.mustGet(ref)}
	}
	return out
}

func (n treeNode) LayoutVisible() bool { return n.c.visible }

func (n treeNode) ContentSize() layout.Size {
	if n.c.text == "" {
		return layout.Size{}
	}
	return layout.Size{Width: layout.MeasureText(n.c.text), Height: 1}
}

func (n treeNode) SetResult(r layout.Result) { n.c.result = r }
