package loom

// ComponentView is a read-only copy of one visible component, taken for
// a rendering backend. Maps are copied, so a view stays stable while the
// next tick mutates the tree.
type ComponentView struct {
	Ref  NodeRef
	Name string
	ID   string
	Kind Kind
	Path string

	Text        string
	DisplayText string

	Geometry    Rect
	ContentRect Rect
	Overflow    bool
	Truncated   bool

	Focused bool
	Active  bool
	Enabled bool

	Props map[string]any
	State map[string]any

	Children []NodeRef
}

// Snapshot returns a view of every visible component in depth-first
// pre-order: geometry, display text, and copies of properties and state.
// Hidden subtrees are omitted entirely.
func (e *Engine) Snapshot() []ComponentView {
	focused := e.focus.Focused()
	var out []ComponentView
	e.tree.WalkVisible(func(ref NodeRef, c *Component) {
		r := c.Layout()
		v := ComponentView{
			Ref:         ref,
			Name:        c.name,
			ID:          c.id,
			Kind:        c.kind,
			Path:        e.tree.Path(ref),
			Text:        c.text,
			DisplayText: c.DisplayText(),
			Geometry:    r.Rect,
			ContentRect: r.ContentRect,
			Overflow:    r.Overflow,
			Truncated:   r.Truncated,
			Focused:     ref == focused,
			Active:      c.active,
			Enabled:     c.enabled,
		}
		if len(c.props) > 0 {
			v.Props = make(map[string]any, len(c.props))
			for k, val := range c.props {
				v.Props[k] = val
			}
		}
		if len(c.state) > 0 {
			v.State = make(map[string]any, len(c.state))
			for k, val := range c.state {
				v.State[k] = val
			}
		}
		if len(c.children) > 0 {
			v.Children = make([]NodeRef, len(c.children))
			copy(v.Children, c.children)
		}
		out = append(out, v)
	})
	return out
}
