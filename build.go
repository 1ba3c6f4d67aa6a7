package loom

import (
	"fmt"
	"strings"
)

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	transforms map[string]Transform
	predicates map[string]Predicate
	width      int
	height     int
}

// WithTransforms supplies the named transform functions binding
// declarations may reference.
func WithTransforms(m map[string]Transform) BuildOption {
	return func(c *buildConfig) { c.transforms = m }
}

// WithPredicates supplies the named enabled-predicates key binding
// declarations may reference.
func WithPredicates(m map[string]Predicate) BuildOption {
	return func(c *buildConfig) { c.predicates = m }
}

// WithSize sets the initial available size. Defaults to 80x24.
func WithSize(width, height int) BuildOption {
	return func(c *buildConfig) {
		c.width = width
		c.height = height
	}
}

// Build constructs a validated engine from a description: the component
// tree, initial state, bindings, and key bindings. Every structural
// error is construction-fatal with full context; a successfully built
// engine has already run its bindings once and computed initial layout.
func Build(desc Description, opts ...BuildOption) (*Engine, error) {
	cfg := buildConfig{width: 80, height: 24}
	for _, opt := range opts {
		opt(&cfg)
	}

	tree, err := buildTree(desc.Root)
	if err != nil {
		return nil, err
	}
	if err := seedActivation(tree); err != nil {
		return nil, err
	}

	store := NewStore(desc.State)
	store.OnChange(func(string, any) { tree.MarkDirty() })

	bindings, err := resolveBindings(desc, tree, cfg.transforms)
	if err != nil {
		return nil, err
	}
	binder, err := NewBinder(tree, store, bindings)
	if err != nil {
		return nil, err
	}

	keyBindings, err := resolveKeys(desc, tree, cfg.predicates)
	if err != nil {
		return nil, err
	}
	resolver, err := NewResolver(keyBindings)
	if err != nil {
		return nil, err
	}

	e := newEngine(tree, store, binder, resolver, cfg.width, cfg.height)
	binder.Apply()
	tree.CalculateLayout(NewRect(0, 0, cfg.width, cfg.height))
	return e, nil
}

// buildTree materializes the description into a tree, inserting children
// depth-first so uniqueness is validated at every step.
func buildTree(root ComponentDesc) (*Tree, error) {
	rc, err := root.component()
	if err != nil {
		return nil, err
	}
	tree := NewTree(rc)

	var insert func(parent NodeRef, descs []ComponentDesc) error
	insert = func(parent NodeRef, descs []ComponentDesc) error {
		for _, d := range descs {
			c, err := d.component()
			if err != nil {
				return err
			}
			ref, err := tree.Insert(parent, c)
			if err != nil {
				return err
			}
			if err := insert(ref, d.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(tree.Root(), root.Children); err != nil {
		return nil, err
	}
	return tree, nil
}

// seedActivation populates each activatable container's group from its
// children's initial active flags and validates the mode constraint:
// single requires exactly one active child, single_null at most one.
func seedActivation(tree *Tree) error {
	var failure error
	tree.Walk(func(ref NodeRef, c *Component) bool {
		if c.kind != KindActivatable {
			return true
		}
		g := c.group
		for _, child := range c.children {
			if tree.mustGet(child).active {
				g.add(child)
			}
		}
		switch g.Mode {
		case ModeSingle:
			if len(g.active) != 1 {
				failure = &InvalidActivationError{
					Container: tree.Path(ref),
					Reason:    fmt.Sprintf("single mode requires exactly one active child, got %d", len(g.active)),
				}
				return false
			}
		case ModeSingleNull:
			if len(g.active) > 1 {
				failure = &InvalidActivationError{
					Container: tree.Path(ref),
					Reason:    fmt.Sprintf("single_null mode allows at most one active child, got %d", len(g.active)),
				}
				return false
			}
		}
		return true
	})
	return failure
}

// resolveBindings checks every binding declaration against the tree, the
// declared state, and the supplied transforms.
func resolveBindings(desc Description, tree *Tree, transforms map[string]Transform) ([]Binding, error) {
	out := make([]Binding, 0, len(desc.Bindings))
	for _, bd := range desc.Bindings {
		used := fmt.Sprintf("binding %s -> %s.%s", bd.Source, bd.Target, bd.Property)
		if _, ok := tree.FindByID(bd.Target); !ok {
			return nil, &UnresolvedReferenceError{Kind: "component", Name: bd.Target, Used: used}
		}
		if err := checkSource(desc, tree, bd.Source, used); err != nil {
			return nil, err
		}
		b := Binding{Source: bd.Source, TargetID: bd.Target, Property: bd.Property}
		if bd.Transform != "" {
			fn, ok := transforms[bd.Transform]
			if !ok {
				return nil, &UnresolvedReferenceError{Kind: "transform", Name: bd.Transform, Used: used}
			}
			b.Transform = fn
		}
		out = append(out, b)
	}
	return out, nil
}

// checkSource accepts a source path that overlaps a declared state path
// (either one a dotted prefix of the other) or targets the reserved
// "comp.<id>.<property>" namespace with a defined id.
func checkSource(desc Description, tree *Tree, source, used string) error {
	if rest, ok := strings.CutPrefix(source, "comp."); ok {
		id, _, _ := strings.Cut(rest, ".")
		if _, found := tree.FindByID(id); !found {
			return &UnresolvedReferenceError{Kind: "component", Name: id, Used: used}
		}
		return nil
	}
	for path := range desc.State {
		if pathTriggers(path, source) || pathTriggers(source, path) {
			return nil
		}
	}
	return &UnresolvedReferenceError{Kind: "state", Name: source, Used: used}
}

// resolveKeys parses and checks every key binding declaration: the chord
// must parse, the scope id and predicate must resolve, and the event must
// belong to the declared vocabulary (engine-reserved events are always
// allowed; an empty vocabulary accepts anything).
func resolveKeys(desc Description, tree *Tree, predicates map[string]Predicate) ([]KeyBinding, error) {
	vocabulary := make(map[string]bool, len(desc.Events))
	for _, ev := range desc.Events {
		vocabulary[ev] = true
	}

	out := make([]KeyBinding, 0, len(desc.Keys))
	for _, kd := range desc.Keys {
		used := fmt.Sprintf("key binding %q -> %q", kd.Chord, kd.Event)
		chord, err := ParseChord(kd.Chord)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", used, err)
		}
		b := KeyBinding{Chord: chord, Event: kd.Event, ScopeID: kd.Scope}
		if kd.Scope != "" {
			ref, ok := tree.FindByID(kd.Scope)
			if !ok {
				return nil, &UnresolvedReferenceError{Kind: "component", Name: kd.Scope, Used: used}
			}
			b.Scope = ref
		}
		if len(vocabulary) > 0 && !vocabulary[kd.Event] && !reservedEvent(kd.Event) {
			return nil, &UnresolvedReferenceError{Kind: "event", Name: kd.Event, Used: used}
		}
		if kd.When != "" {
			fn, ok := predicates[kd.When]
			if !ok {
				return nil, &UnresolvedReferenceError{Kind: "predicate", Name: kd.When, Used: used}
			}
			b.Enabled = fn
		}
		out = append(out, b)
	}
	return out, nil
}

func reservedEvent(name string) bool {
	switch name {
	case EventMount, EventUnmount, EventFocus, EventBlur,
		EventActivate, EventDeactivate, EventResize, EventKey:
		return true
	}
	return false
}
