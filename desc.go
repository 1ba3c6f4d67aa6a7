package loom

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Description is the normalized document an external configuration
// loader hands to Build: the component tree, initial state, the event
// vocabulary, and the binding and key binding declarations. Decode only;
// templating and merging happen upstream.
type Description struct {
	Root     ComponentDesc    `yaml:"root"`
	State    map[string]any   `yaml:"state,omitempty"`
	Events   []string         `yaml:"events,omitempty"`
	Bindings []BindingDesc    `yaml:"bindings,omitempty"`
	Keys     []KeyBindingDesc `yaml:"keys,omitempty"`
}

// SizeDesc is a width/height pair in cells.
type SizeDesc struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ComponentDesc describes one component and its subtree.
type ComponentDesc struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id,omitempty"`
	Kind string `yaml:"kind,omitempty"` // item (default), container, activatable
	Text string `yaml:"text,omitempty"`

	Direction string    `yaml:"direction,omitempty"` // column (default), row, grid
	Columns   int       `yaml:"columns,omitempty"`
	Spacing   int       `yaml:"spacing,omitempty"`
	Padding   int       `yaml:"padding,omitempty"`
	Min       *SizeDesc `yaml:"min,omitempty"`
	Max       *SizeDesc `yaml:"max,omitempty"`
	Fixed     *SizeDesc `yaml:"fixed,omitempty"`
	Expand    bool      `yaml:"expand,omitempty"`
	Weight    float64   `yaml:"weight,omitempty"`
	HAlign    string    `yaml:"halign,omitempty"` // stretch (default), start, center, end
	VAlign    string    `yaml:"valign,omitempty"`

	TabIndex   int   `yaml:"tabindex,omitempty"`
	Selectable *bool `yaml:"selectable,omitempty"`
	Hidden     bool  `yaml:"hidden,omitempty"`
	Disabled   bool  `yaml:"disabled,omitempty"`
	Active     *bool `yaml:"active,omitempty"`

	Mode string `yaml:"mode,omitempty"` // single, single_null, multiple (activatable only)

	Props map[string]any `yaml:"props,omitempty"`

	Children []ComponentDesc `yaml:"children,omitempty"`
}

// BindingDesc declares one state-to-property binding. Transform names a
// function supplied to Build via WithTransforms.
type BindingDesc struct {
	Source    string `yaml:"source"`
	Target    string `yaml:"target"` // component id
	Property  string `yaml:"property"`
	Transform string `yaml:"transform,omitempty"`
}

// KeyBindingDesc declares one chord-to-event binding. Scope is a
// component id, empty for global. When names a predicate supplied to
// Build via WithPredicates.
type KeyBindingDesc struct {
	Chord string `yaml:"chord"`
	Scope string `yaml:"scope,omitempty"`
	Event string `yaml:"event"`
	When  string `yaml:"when,omitempty"`
}

// FromYAML decodes a description document.
func FromYAML(data []byte) (Description, error) {
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Description{}, fmt.Errorf("decoding description: %w", err)
	}
	return d, nil
}

// component materializes the description into a Component, without
// attaching children.
func (d ComponentDesc) component() (*Component, error) {
	kind, err := parseKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", d.Name, err)
	}

	var opts []Option
	if d.ID != "" {
		opts = append(opts, WithID(d.ID))
	}
	if d.Text != "" {
		opts = append(opts, WithText(d.Text))
	}
	if d.Min != nil {
		opts = append(opts, WithMinSize(d.Min.Width, d.Min.Height))
	}
	if d.Max != nil {
		opts = append(opts, WithMaxSize(d.Max.Width, d.Max.Height))
	}
	if d.Fixed != nil {
		opts = append(opts, WithFixedSize(d.Fixed.Width, d.Fixed.Height))
	}
	if d.Expand {
		opts = append(opts, WithExpand())
	}
	if d.Weight != 0 {
		opts = append(opts, WithWeight(d.Weight))
	}
	if d.Spacing != 0 {
		opts = append(opts, WithSpacing(d.Spacing))
	}
	if d.Padding != 0 {
		opts = append(opts, WithPadding(EdgeAll(d.Padding)))
	}
	if d.Columns != 0 {
		opts = append(opts, WithColumns(d.Columns))
	}
	if d.HAlign != "" {
		a, err := parseAlign(d.HAlign)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", d.Name, err)
		}
		opts = append(opts, WithHAlign(a))
	}
	if d.VAlign != "" {
		a, err := parseAlign(d.VAlign)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", d.Name, err)
		}
		opts = append(opts, WithVAlign(a))
	}
	if d.TabIndex != 0 {
		opts = append(opts, WithTabIndex(d.TabIndex))
	}
	if d.Selectable != nil {
		opts = append(opts, WithSelectable(*d.Selectable))
	}
	if d.Hidden {
		opts = append(opts, WithHidden())
	}
	if d.Disabled {
		opts = append(opts, WithDisabled())
	}
	if d.Active != nil {
		opts = append(opts, WithActive(*d.Active))
	}
	if len(d.Props) > 0 {
		opts = append(opts, WithProps(d.Props))
	}

	var c *Component
	switch kind {
	case KindItem:
		c = NewItem(d.Name, opts...)
	case KindContainer:
		dir, err := parseDirection(d.Direction)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", d.Name, err)
		}
		c = NewContainer(d.Name, dir, opts...)
	case KindActivatable:
		dir, err := parseDirection(d.Direction)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", d.Name, err)
		}
		mode, err := parseMode(d.Mode)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", d.Name, err)
		}
		c = NewActivatable(d.Name, dir, mode, opts...)
	}
	return c, nil
}

func parseKind(s string) (Kind, error) {
	switch s {
	case "", "item":
		return KindItem, nil
	case "container":
		return KindContainer, nil
	case "activatable":
		return KindActivatable, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func parseDirection(s string) (Direction, error) {
	switch s {
	case "", "column":
		return Column, nil
	case "row":
		return Row, nil
	case "grid":
		return Grid, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func parseAlign(s string) (Align, error) {
	switch s {
	case "", "stretch":
		return AlignStretch, nil
	case "start":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end":
		return AlignEnd, nil
	}
	return 0, fmt.Errorf("unknown alignment %q", s)
}

func parseMode(s string) (ActivationMode, error) {
	switch s {
	case "", "single":
		return ModeSingle, nil
	case "single_null":
		return ModeSingleNull, nil
	case "multiple":
		return ModeMultiple, nil
	}
	return 0, fmt.Errorf("unknown activation mode %q", s)
}
