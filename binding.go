package loom

import (
	"fmt"

	"github.com/loomui/loom/internal/debug"
)

// Transform maps a state value before it is assigned to a bound property.
type Transform func(any) any

// Binding declares a one-way flow from a state path to a component
// property: whenever the source path (or anything beneath it) changes,
// the value is transformed and written to the target.
type Binding struct {
	Source    string    // state path watched for changes
	TargetID  string    // id of the component receiving the value
	Property  string    // property written on the target
	Transform Transform // nil = identity
}

// propertyPath is the reserved state path a binding write republishes to,
// which lets one binding's output feed another binding's source. The
// "comp." namespace is reserved for this purpose.
func propertyPath(id, property string) string {
	return "comp." + id + "." + property
}

// produces returns the path this binding's writes appear under.
func (b Binding) produces() string {
	return propertyPath(b.TargetID, b.Property)
}

// Binder wires declared bindings between a store and a tree. Bindings are
// validated for cycles at construction and applied automatically as the
// store changes; Apply runs every binding once for initial values.
type Binder struct {
	tree     *Tree
	store    *Store
	bindings []Binding
}

// NewBinder validates the bindings and registers their watchers.
// A cycle in the binding graph (a binding whose output feeds, possibly
// through other bindings, back into its own source) fails construction
// with a BindingCycleError naming the chain.
func NewBinder(tree *Tree, store *Store, bindings []Binding) (*Binder, error) {
	if err := validateBindings(bindings); err != nil {
		return nil, err
	}
	bd := &Binder{tree: tree, store: store, bindings: bindings}
	for _, b := range bindings {
		store.Watch(b.Source, func(path string, value any) {
			bd.apply(b, value)
		})
	}
	return bd, nil
}

// Apply runs every binding once against the store's current values, in
// declaration order. Sources with no value yet are skipped.
func (bd *Binder) Apply() {
	for _, b := range bd.bindings {
		if v, ok := bd.store.Get(b.Source); ok {
			bd.apply(b, v)
		}
	}
}

// apply transforms the value, writes the target property, and republishes
// the written value on the target's reserved path so chained bindings
// observe it. A binding whose target has left the tree does nothing.
func (bd *Binder) apply(b Binding, value any) {
	ref, ok := bd.tree.FindByID(b.TargetID)
	if !ok {
		debug.Log("binding %s -> %s.%s: target gone, skipped", b.Source, b.TargetID, b.Property)
		return
	}
	if b.Transform != nil {
		value = b.Transform(value)
	}
	c := bd.tree.mustGet(ref)
	setBoundProperty(c, b.Property, value)
	bd.tree.MarkDirty()
	bd.store.Set(b.produces(), value)
}

// setBoundProperty routes well-known property names to their typed
// component fields; everything else lands in the generic property map.
func setBoundProperty(c *Component, property string, value any) {
	switch property {
	case "text":
		if s, ok := value.(string); ok {
			c.SetText(s)
		} else {
			c.SetText(fmt.Sprint(value))
		}
	case "visible":
		if v, ok := value.(bool); ok {
			c.SetVisible(v)
		}
	case "enabled":
		if v, ok := value.(bool); ok {
			c.SetEnabled(v)
		}
	default:
		c.SetProperty(property, value)
	}
}

// validateBindings detects cycles in the binding graph. Binding i feeds
// binding j when i's republished output path would trigger j's source
// watcher.
func validateBindings(bindings []Binding) error {
	n := len(bindings)
	edges := make([][]int, n)
	for i := range bindings {
		out := bindings[i].produces()
		for j := range bindings {
			if pathTriggers(out, bindings[j].Source) {
				edges[i] = append(edges[i], j)
			}
		}
	}

	const (
		white = iota // unvisited
		gray         // on the current path
		black        // fully explored
	)
	color := make([]int, n)
	var path []int

	var visit func(i int) *BindingCycleError
	visit = func(i int) *BindingCycleError {
		color[i] = gray
		path = append(path, i)
		for _, j := range edges[i] {
			switch color[j] {
			case gray:
				// Back edge: slice the chain from j's position.
				start := 0
				for k, p := range path {
					if p == j {
						start = k
						break
					}
				}
				chain := make([]string, 0, len(path)-start+1)
				for _, p := range path[start:] {
					chain = append(chain, bindings[p].Source)
				}
				chain = append(chain, bindings[j].Source)
				return &BindingCycleError{Chain: chain}
			case white:
				if err := visit(j); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		color[i] = black
		return nil
	}

	for i := 0; i < n; i++ {
		if color[i] == white {
			if err := visit(i); err != nil {
				return err
			}
		}
	}
	return nil
}
