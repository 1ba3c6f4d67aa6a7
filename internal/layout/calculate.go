package layout

// Calculate performs layout on the tree rooted at root within the
// available rectangle, writing geometry into every node via SetResult.
//
// Layout never fails: every allocation conflict is resolved by clamping
// to [MinSize, MaxSize] plus overflow/truncation flags.
func Calculate(root Layoutable, available Rect) {
	if root == nil {
		return
	}
	if !root.LayoutVisible() {
		zeroResults(root)
		return
	}
	st := root.LayoutStyle()
	w := resolveExtent(st, axisX, available.Width)
	h := resolveExtent(st, axisY, available.Height)
	layoutNode(root, NewRect(available.X, available.Y, w, h))
}

// resolveExtent computes a node's own extent along one axis given the
// parent's offer. A fixed size overrides the offer; either way the result
// is clamped, so a node claims its minimum even when offered less.
func resolveExtent(st Style, a axis, offer int) int {
	v := st.fixed(a)
	if v == 0 {
		v = offer
	}
	return clamp(v, st.min(a), st.max(a))
}

// layoutNode stores the node's final geometry and lays out its children
// inside the content rect.
func layoutNode(n Layoutable, rect Rect) {
	st := n.LayoutStyle()
	res := Result{Rect: rect, ContentRect: rect.Inset(st.Padding)}

	children := make([]Layoutable, 0, len(n.LayoutChildren()))
	for _, c := range n.LayoutChildren() {
		if c.LayoutVisible() {
			children = append(children, c)
		} else {
			zeroResults(c)
		}
	}

	if len(children) == 0 {
		// Leaf: content wider than the allocation is shortened with an
		// ellipsis by the renderer rather than resized past MaxSize.
		if cs := n.ContentSize(); cs.Width > rect.Width {
			res.Truncated = true
		}
		n.SetResult(res)
		return
	}

	if st.Direction == Grid {
		res.Overflow = layoutGrid(children, st, res.ContentRect)
	} else {
		res.Overflow = layoutLinear(children, st, res.ContentRect)
	}
	n.SetResult(res)
}

// zeroResults clears the computed geometry of a hidden subtree.
func zeroResults(n Layoutable) {
	n.SetResult(Result{})
	for _, c := range n.LayoutChildren() {
		zeroResults(c)
	}
}

// Intrinsic returns the natural size of a node: content size for leaves,
// aggregated child extents plus spacing and padding for containers.
// Fixed axes override the aggregate; both axes are clamped.
func Intrinsic(n Layoutable) Size {
	st := n.LayoutStyle()

	var kids []Layoutable
	for _, c := range n.LayoutChildren() {
		if c.LayoutVisible() {
			kids = append(kids, c)
		}
	}

	var w, h int
	if len(kids) == 0 {
		cs := n.ContentSize()
		w, h = cs.Width, cs.Height
	} else {
		switch st.Direction {
		case Row:
			for _, c := range kids {
				cs := Intrinsic(c)
				w += cs.Width
				h = max(h, cs.Height)
			}
			w += st.Spacing * (len(kids) - 1)
		case Column:
			for _, c := range kids {
				cs := Intrinsic(c)
				w = max(w, cs.Width)
				h += cs.Height
			}
			h += st.Spacing * (len(kids) - 1)
		case Grid:
			cols := max(st.Columns, 1)
			rows := (len(kids) + cols - 1) / cols
			colNat := make([]int, cols)
			rowNat := make([]int, rows)
			for i, c := range kids {
				cs := Intrinsic(c)
				colNat[i%cols] = max(colNat[i%cols], cs.Width)
				rowNat[i/cols] = max(rowNat[i/cols], cs.Height)
			}
			for _, cw := range colNat {
				w += cw
			}
			for _, rh := range rowNat {
				h += rh
			}
			w += st.Spacing * (cols - 1)
			h += st.Spacing * (rows - 1)
		}
		w += st.Padding.Horizontal()
		h += st.Padding.Vertical()
	}

	if f := st.fixed(axisX); f > 0 {
		w = f
	}
	if f := st.fixed(axisY); f > 0 {
		h = f
	}
	return Size{
		Width:  clamp(w, st.min(axisX), st.max(axisX)),
		Height: clamp(h, st.min(axisY), st.max(axisY)),
	}
}

// layoutLinear arranges children along a single primary axis (Row or
// Column). Returns whether the container overflowed.
func layoutLinear(children []Layoutable, st Style, content Rect) bool {
	main := mainAxis(st.Direction)
	cross := main.cross()
	innerMain := extentOf(content, main)
	innerCross := extentOf(content, cross)

	n := len(children)
	gaps := st.Spacing * (n - 1)

	// Partition: non-expanding children take their natural size, clamped.
	extents := make([]int, n)
	fixedSum := 0
	var expandIdx []int
	var weights []float64
	for i, c := range children {
		cst := c.LayoutStyle()
		if cst.Expand {
			expandIdx = append(expandIdx, i)
			weights = append(weights, cst.Weight())
			continue
		}
		extents[i] = Intrinsic(c).along(main)
		fixedSum += extents[i]
	}

	overflow := false
	remaining := innerMain - fixedSum - gaps
	if remaining < 0 {
		// Negative space is never allocated: every child drops to its
		// minimum and the container scrolls instead.
		overflow = true
		for i, c := range children {
			extents[i] = c.LayoutStyle().min(main)
		}
	} else if len(expandIdx) > 0 {
		shares := Distribute(remaining, weights)
		for k, i := range expandIdx {
			cst := children[i].LayoutStyle()
			// A clamp that absorbs less than its share leaves the slack
			// with the container; it is not redistributed.
			extents[i] = clamp(shares[k], cst.min(main), cst.max(main))
		}
	}

	// Minimums can still exceed the inner extent.
	used := gaps
	for _, e := range extents {
		used += e
	}
	if used > innerMain {
		overflow = true
	}

	offset := 0
	for i, c := range children {
		crossExtent, crossOffset := placeCross(c, cross, innerCross)
		layoutNode(c, axisRect(content, main, offset, extents[i], crossOffset, crossExtent))
		offset += extents[i] + st.Spacing
	}
	return overflow
}

// layoutGrid applies the linear distribution rule independently per axis:
// column widths across the column tracks, row heights across the rows.
func layoutGrid(children []Layoutable, st Style, content Rect) bool {
	cols := max(st.Columns, 1)
	rows := (len(children) + cols - 1) / cols

	colNat := make([]int, cols)
	colWeight := make([]float64, cols)
	colExpand := make([]bool, cols)
	rowNat := make([]int, rows)
	rowWeight := make([]float64, rows)
	rowExpand := make([]bool, rows)

	for i, c := range children {
		col, row := i%cols, i/cols
		cst := c.LayoutStyle()
		cs := Intrinsic(c)
		if cst.Expand {
			colExpand[col] = true
			colWeight[col] = maxf(colWeight[col], cst.Weight())
			rowExpand[row] = true
			rowWeight[row] = maxf(rowWeight[row], cst.Weight())
		} else {
			colNat[col] = max(colNat[col], cs.Width)
			rowNat[row] = max(rowNat[row], cs.Height)
		}
	}

	colSizes, ovX := distributeTracks(content.Width, st.Spacing, colNat, colWeight, colExpand)
	rowSizes, ovY := distributeTracks(content.Height, st.Spacing, rowNat, rowWeight, rowExpand)

	colPos := trackPositions(colSizes, st.Spacing)
	rowPos := trackPositions(rowSizes, st.Spacing)

	for i, c := range children {
		col, row := i%cols, i/cols
		w, xo := placeCross(c, axisX, colSizes[col])
		h, yo := placeCross(c, axisY, rowSizes[row])
		layoutNode(c, Rect{
			X:      content.X + colPos[col] + xo,
			Y:      content.Y + rowPos[row] + yo,
			Width:  w,
			Height: h,
		})
	}
	return ovX || ovY
}

// distributeTracks sizes grid tracks: non-expanding tracks take their
// natural extent, expanding tracks split the remainder by weight.
func distributeTracks(inner, spacing int, nat []int, weight []float64, expand []bool) ([]int, bool) {
	n := len(nat)
	sizes := make([]int, n)
	gaps := spacing * (n - 1)

	fixedSum := 0
	var expandIdx []int
	var weights []float64
	for i := 0; i < n; i++ {
		if expand[i] {
			expandIdx = append(expandIdx, i)
			weights = append(weights, weight[i])
			continue
		}
		sizes[i] = nat[i]
		fixedSum += nat[i]
	}

	remaining := inner - fixedSum - gaps
	if remaining < 0 {
		return sizes, true
	}
	shares := Distribute(remaining, weights)
	for k, i := range expandIdx {
		sizes[i] = shares[k]
	}
	return sizes, false
}

// trackPositions converts track sizes to start offsets with spacing.
func trackPositions(sizes []int, spacing int) []int {
	pos := make([]int, len(sizes))
	offset := 0
	for i, s := range sizes {
		pos[i] = offset
		offset += s + spacing
	}
	return pos
}

// placeCross resolves a child's extent and offset along an axis it does
// not flex on: stretch fills the allocation, otherwise the natural size is
// positioned per the child's alignment. A child wider than its allocation
// is cut to it (never below its minimum, which may overflow).
func placeCross(c Layoutable, a axis, avail int) (extent, offset int) {
	cst := c.LayoutStyle()
	if cst.align(a) == AlignStretch && cst.fixed(a) == 0 {
		return clamp(avail, cst.min(a), cst.max(a)), 0
	}
	extent = Intrinsic(c).along(a)
	if extent > avail {
		extent = max(cst.min(a), avail)
	}
	switch cst.align(a) {
	case AlignCenter:
		offset = (avail - extent) / 2
	case AlignEnd:
		offset = avail - extent
	}
	if offset < 0 {
		offset = 0
	}
	return extent, offset
}

// axisRect builds a child rect from main/cross offsets and extents.
func axisRect(content Rect, main axis, mainPos, mainExtent, crossPos, crossExtent int) Rect {
	if main == axisX {
		return Rect{
			X:      content.X + mainPos,
			Y:      content.Y + crossPos,
			Width:  mainExtent,
			Height: crossExtent,
		}
	}
	return Rect{
		X:      content.X + crossPos,
		Y:      content.Y + mainPos,
		Width:  crossExtent,
		Height: mainExtent,
	}
}

func extentOf(r Rect, a axis) int {
	if a == axisX {
		return r.Width
	}
	return r.Height
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
