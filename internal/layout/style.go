package layout

// Direction specifies how a container arranges its children.
type Direction uint8

const (
	Column Direction = iota // Children stacked top-to-bottom (VBox)
	Row                     // Children laid out left-to-right (HBox)
	Grid                    // Two-axis variant; see Style.Columns
)

// Align specifies how a child is positioned within its cross-axis
// allocation when it does not fill it.
type Align uint8

const (
	AlignStretch Align = iota // Fill the allocation (default)
	AlignStart                // Pack at start of cross axis
	AlignCenter               // Center on cross axis
	AlignEnd                  // Pack at end of cross axis
)

// Style contains all layout properties for a node.
//
// Size constraints are in terminal cells. A zero MaxSize axis means
// unbounded; a zero FixedSize axis means the axis is sized to content.
// MinSize never exceeds MaxSize on either axis.
type Style struct {
	MinSize   Size
	MaxSize   Size
	FixedSize Size

	// Flexible sizing along the parent's primary axis.
	Expand       bool
	ExpandWeight float64 // Relative share among expanding siblings (default 1)

	// Container properties.
	Direction Direction
	Columns   int // Grid tracks per row (Grid direction only, min 1)
	Spacing   int // Cells between adjacent children on the primary axis
	Padding   Edges

	// Cross-axis placement of this node within its allocation.
	HAlign Align
	VAlign Align
}

// DefaultStyle returns a Style with default values.
func DefaultStyle() Style {
	return Style{ExpandWeight: 1}
}

// Weight returns the effective expand weight, defaulting to 1 when unset.
func (s Style) Weight() float64 {
	if s.ExpandWeight > 0 {
		return s.ExpandWeight
	}
	return 1
}

// axis selects a dimension: axisX is the horizontal extent, axisY vertical.
type axis uint8

const (
	axisX axis = iota
	axisY
)

func (s Size) along(a axis) int {
	if a == axisX {
		return s.Width
	}
	return s.Height
}

// mainAxis returns the primary axis for a linear direction.
func mainAxis(d Direction) axis {
	if d == Row {
		return axisX
	}
	return axisY
}

func (a axis) cross() axis {
	if a == axisX {
		return axisY
	}
	return axisX
}

// min returns the style's minimum extent along a.
func (s Style) min(a axis) int {
	return s.MinSize.along(a)
}

// max returns the style's maximum extent along a, or a large sentinel
// when unbounded.
func (s Style) max(a axis) int {
	m := s.MaxSize.along(a)
	if m <= 0 {
		return unbounded
	}
	return m
}

// fixed returns the fixed extent along a, or 0 when the axis is not fixed.
func (s Style) fixed(a axis) int {
	return s.FixedSize.along(a)
}

// align returns the alignment governing placement along axis a.
func (s Style) align(a axis) Align {
	if a == axisX {
		return s.HAlign
	}
	return s.VAlign
}

const unbounded = 1 << 30

// clamp restricts v to the range [minVal, maxVal].
// If minVal > maxVal, minVal wins.
func clamp(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if maxVal >= minVal && v > maxVal {
		return maxVal
	}
	return v
}
