package loom

// Kind tags a component variant. The set is closed: container behavior
// (child management, layout delegation, activation) is keyed off the tag
// rather than a type hierarchy.
type Kind uint8

const (
	// KindItem is a leaf component with no children.
	KindItem Kind = iota
	// KindContainer owns and lays out child components.
	KindContainer
	// KindActivatable is a container that also tracks an activation set
	// over its children.
	KindActivatable
)

// String returns the kind's configuration-facing name.
func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindContainer:
		return "container"
	case KindActivatable:
		return "activatable"
	default:
		return "unknown"
	}
}

// IsContainer reports whether components of this kind may own children.
func (k Kind) IsContainer() bool {
	return k == KindContainer || k == KindActivatable
}

// Component is a node in the UI tree. Components are created with
// NewItem/NewContainer/NewActivatable and attached via Tree.Insert; the
// tree is the single owner, and parent/children are held as refs into its
// node table, never as pointers.
type Component struct {
	name string
	id   string
	kind Kind

	style    Style
	tabIndex int
	text     string

	visible    bool
	enabled    bool
	selectable bool
	active     bool

	props map[string]any
	state map[string]any

	group *ActivationGroup // non-nil only for KindActivatable

	// Managed by the owning tree.
	ref      NodeRef
	parent   NodeRef
	children []NodeRef

	// Written only by the layout engine.
	result LayoutResult
}

// Option configures a Component at construction.
type Option func(*Component)

func newComponent(kind Kind, name string, opts ...Option) *Component {
	c := &Component{
		name:    name,
		kind:    kind,
		style:   DefaultStyle(),
		visible: true,
		enabled: true,
		active:  kind == KindItem, // items default active, containers not
		props:   make(map[string]any),
		state:   make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewItem creates a leaf component.
func NewItem(name string, opts ...Option) *Component {
	return newComponent(KindItem, name, opts...)
}

// NewContainer creates a container laying out children in the given
// direction.
func NewContainer(name string, dir Direction, opts ...Option) *Component {
	c := newComponent(KindContainer, name, opts...)
	c.style.Direction = dir
	return c
}

// NewActivatable creates a container that tracks an activation set over
// its children.
func NewActivatable(name string, dir Direction, mode ActivationMode, opts ...Option) *Component {
	c := newComponent(KindActivatable, name, opts...)
	c.style.Direction = dir
	c.group = &ActivationGroup{Mode: mode}
	return c
}

// --- Accessors ---

// Name returns the component's name, unique among its siblings.
func (c *Component) Name() string { return c.name }

// ID returns the component's tree-wide identifier, or "" if unset.
func (c *Component) ID() string { return c.id }

// Kind returns the component's variant tag.
func (c *Component) Kind() Kind { return c.kind }

// Ref returns the handle the owning tree assigned, or 0 if detached.
func (c *Component) Ref() NodeRef { return c.ref }

// Text returns the leaf content used for intrinsic sizing.
func (c *Component) Text() string { return c.text }

// SetText replaces the leaf content. The caller is responsible for
// scheduling a layout pass (Engine does this for bound properties).
func (c *Component) SetText(s string) { c.text = s }

// Visible reports whether the component participates in layout and focus.
func (c *Component) Visible() bool { return c.visible }

// SetVisible shows or hides the component and its subtree.
func (c *Component) SetVisible(v bool) { c.visible = v }

// Enabled reports whether the component accepts interaction.
func (c *Component) Enabled() bool { return c.enabled }

// SetEnabled toggles interaction.
func (c *Component) SetEnabled(v bool) { c.enabled = v }

// Selectable reports whether the component can hold keyboard focus.
func (c *Component) Selectable() bool { return c.selectable }

// Active reports the component's activation flag.
func (c *Component) Active() bool { return c.active }

// TabIndex returns the explicit tab order index, or 0 when unset.
func (c *Component) TabIndex() int { return c.tabIndex }

// LayoutStyle returns a copy of the component's layout style.
func (c *Component) LayoutStyle() Style { return c.style }

// Group returns the activation group for KindActivatable components,
// nil otherwise.
func (c *Component) Group() *ActivationGroup { return c.group }

// Geometry returns the rectangle computed by the last layout pass.
func (c *Component) Geometry() Rect { return c.result.Rect }

// Layout returns the full computed layout, including overflow and
// truncation flags.
func (c *Component) Layout() LayoutResult { return c.result }

// DisplayText returns the text as it should be painted: shortened with a
// trailing ellipsis when the last layout pass flagged truncation.
func (c *Component) DisplayText() string {
	if c.result.Truncated {
		return TruncateText(c.text, c.result.Rect.Width)
	}
	return c.text
}

// Property returns a property value set at construction or written by a
// binding.
func (c *Component) Property(name string) (any, bool) {
	v, ok := c.props[name]
	return v, ok
}

// SetProperty writes a property value. Bindings and event handlers are
// the intended writers; direct calls do not schedule a layout pass.
func (c *Component) SetProperty(name string, v any) {
	c.props[name] = v
}

// StateValue returns a runtime state value owned by the component.
func (c *Component) StateValue(name string) (any, bool) {
	v, ok := c.state[name]
	return v, ok
}

// SetStateValue writes a runtime state value owned by the component.
func (c *Component) SetStateValue(name string, v any) {
	c.state[name] = v
}

// focusable reports whether the component passes the focus predicate.
func (c *Component) focusable() bool {
	return c.selectable && c.enabled && c.visible
}

// --- Options ---

// WithID sets the tree-wide identifier.
func WithID(id string) Option {
	return func(c *Component) { c.id = id }
}

// WithText sets leaf content.
func WithText(s string) Option {
	return func(c *Component) { c.text = s }
}

// WithMinSize sets the minimum size in cells.
func WithMinSize(w, h int) Option {
	return func(c *Component) { c.style.MinSize = Size{Width: w, Height: h} }
}

// WithMaxSize sets the maximum size in cells. Zero on an axis means
// unbounded.
func WithMaxSize(w, h int) Option {
	return func(c *Component) { c.style.MaxSize = Size{Width: w, Height: h} }
}

// WithFixedSize pins the size in cells. Zero on an axis leaves that axis
// content-sized.
func WithFixedSize(w, h int) Option {
	return func(c *Component) { c.style.FixedSize = Size{Width: w, Height: h} }
}

// WithExpand marks the component expandable with the default weight.
func WithExpand() Option {
	return func(c *Component) { c.style.Expand = true }
}

// WithWeight marks the component expandable with the given weight.
func WithWeight(w float64) Option {
	return func(c *Component) {
		c.style.Expand = true
		c.style.ExpandWeight = w
	}
}

// WithSpacing sets the gap between children on the primary axis.
func WithSpacing(n int) Option {
	return func(c *Component) { c.style.Spacing = n }
}

// WithPadding sets the container's inner padding.
func WithPadding(e Edges) Option {
	return func(c *Component) { c.style.Padding = e }
}

// WithColumns sets the number of grid tracks per row (Grid direction).
func WithColumns(n int) Option {
	return func(c *Component) { c.style.Columns = n }
}

// WithHAlign sets horizontal placement within the allocated slot.
func WithHAlign(a Align) Option {
	return func(c *Component) { c.style.HAlign = a }
}

// WithVAlign sets vertical placement within the allocated slot.
func WithVAlign(a Align) Option {
	return func(c *Component) { c.style.VAlign = a }
}

// WithTabIndex sets an explicit tab order index (ascending, before all
// unindexed components).
func WithTabIndex(i int) Option {
	return func(c *Component) { c.tabIndex = i }
}

// WithSelectable controls whether the component can hold focus.
func WithSelectable(v bool) Option {
	return func(c *Component) { c.selectable = v }
}

// WithHidden constructs the component invisible.
func WithHidden() Option {
	return func(c *Component) { c.visible = false }
}

// WithDisabled constructs the component disabled.
func WithDisabled() Option {
	return func(c *Component) { c.enabled = false }
}

// WithActive sets the initial activation flag.
func WithActive(v bool) Option {
	return func(c *Component) { c.active = v }
}

// WithProp sets one construction-time property.
func WithProp(name string, v any) Option {
	return func(c *Component) { c.props[name] = v }
}

// WithProps merges construction-time properties.
func WithProps(props map[string]any) Option {
	return func(c *Component) {
		for k, v := range props {
			c.props[k] = v
		}
	}
}
