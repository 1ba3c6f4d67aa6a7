package layout

// Layoutable is the interface for anything that can participate in layout
// calculation. The engine works entirely with this interface, so it can be
// tested without a component tree behind it.
type Layoutable interface {
	// LayoutStyle returns the layout style properties for this node.
	LayoutStyle() Style

	// LayoutChildren returns the children to be laid out, in declaration
	// order. Leaf nodes return an empty slice.
	LayoutChildren() []Layoutable

	// LayoutVisible reports whether the node participates in layout.
	// Hidden nodes receive a zero Result and occupy no space.
	LayoutVisible() bool

	// ContentSize returns the natural size of the node's own content,
	// ignoring children (e.g. the measured text of a label). Container
	// intrinsic sizes are derived by the engine from their children.
	ContentSize() Size

	// SetResult is called by the engine to store the computed layout.
	SetResult(Result)
}

// Result holds the computed layout for a node.
type Result struct {
	// Rect is the node's allocated geometry.
	Rect Rect

	// ContentRect is Rect inset by the node's padding.
	ContentRect Rect

	// Overflow is set on a container whose children could not fit the
	// available extent; the container scrolls rather than growing.
	Overflow bool

	// Truncated is set on a leaf whose content exceeded its allotted
	// width and was shortened with an ellipsis marker.
	Truncated bool
}
