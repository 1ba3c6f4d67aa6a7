// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package loom

import "github.com/loomui/loom/internal/layout"

// Direction specifies how a container arranges its children.
type Direction = layout.Direction

const (
	// Column stacks children top-to-bottom (VBox).
	Column = layout.Column
	// Row lays children out left-to-right (HBox).
	Row = layout.Row
	// Grid arranges children on a two-axis grid; see Style.Columns.
	Grid = layout.Grid
)

// Align specifies how a child is positioned within its cross-axis allocation.
type Align = layout.Align

const (
	AlignStretch = layout.AlignStretch
	AlignStart   = layout.AlignStart
	AlignCenter  = layout.AlignCenter
	AlignEnd     = layout.AlignEnd
)

// Style holds the layout properties for a component.
type Style = layout.Style

// Rect represents a rectangle with position and dimensions.
type Rect = layout.Rect

// Size represents a width/height pair.
type Size = layout.Size

// Point represents an x/y coordinate.
type Point = layout.Point

// Edges represents spacing on four sides.
type Edges = layout.Edges

// LayoutResult holds the computed layout for a component.
type LayoutResult = layout.Result

// DefaultStyle returns a Style with default values.
func DefaultStyle() Style {
	return layout.DefaultStyle()
}

// NewRect creates a Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return layout.NewRect(x, y, width, height)
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n int) Edges {
	return layout.EdgeAll(n)
}

// EdgeSymmetric creates Edges with vertical and horizontal values.
func EdgeSymmetric(v, h int) Edges {
	return layout.EdgeSymmetric(v, h)
}

// Distribute splits total cells among weights using the largest-remainder
// method. Exposed for renderers that subdivide regions the same way the
// layout engine does.
func Distribute(total int, weights []float64) []int {
	return layout.Distribute(total, weights)
}

// MeasureText returns the display width of s in terminal cells.
func MeasureText(s string) int {
	return layout.MeasureText(s)
}

// TruncateText shortens s to at most width cells with a trailing ellipsis.
func TruncateText(s string, width int) string {
	return layout.TruncateText(s, width)
}
