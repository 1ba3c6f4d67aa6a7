package loom

// Predicate gates a key binding on application state.
type Predicate func(*Store) bool

// KeyBinding maps a normalized chord, at a scope, to an event name.
// Bindings are constructed once from configuration, validated for
// conflicts, and immutable thereafter; only the Enabled predicate is
// re-evaluated at resolve time.
type KeyBinding struct {
	Chord   Chord
	Scope   NodeRef // component the binding is scoped to, 0 = global
	ScopeID string  // configuration-facing id of the scope, for reporting
	Event   string
	Enabled Predicate // nil = always enabled
}

// Resolver maps chords plus a focus context to event names. Two bindings
// on the same chord at the same scope level are a static conflict, so
// after construction each (scope, chord) pair resolves to exactly one
// binding.
type Resolver struct {
	global map[Chord]KeyBinding
	scoped map[NodeRef]map[Chord]KeyBinding
}

// NewResolver validates the configured bindings pairwise and builds the
// lookup tables. Every conflicting pair is enumerated in a single
// KeyConflictError; construction aborts on any conflict.
func NewResolver(bindings []KeyBinding) (*Resolver, error) {
	type slot struct {
		scope NodeRef
		chord Chord
	}
	groups := make(map[slot][]KeyBinding)
	var order []slot
	for _, b := range bindings {
		s := slot{scope: b.Scope, chord: b.Chord}
		if _, seen := groups[s]; !seen {
			order = append(order, s)
		}
		groups[s] = append(groups[s], b)
	}

	var conflicts []KeyConflict
	for _, s := range order {
		group := groups[s]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				conflicts = append(conflicts, KeyConflict{
					Chord:  s.chord,
					Scope:  group[i].ScopeID,
					EventA: group[i].Event,
					EventB: group[j].Event,
				})
			}
		}
	}
	if len(conflicts) > 0 {
		return nil, &KeyConflictError{Conflicts: conflicts}
	}

	r := &Resolver{
		global: make(map[Chord]KeyBinding),
		scoped: make(map[NodeRef]map[Chord]KeyBinding),
	}
	for _, b := range bindings {
		if b.Scope == 0 {
			r.global[b.Chord] = b
			continue
		}
		if r.scoped[b.Scope] == nil {
			r.scoped[b.Scope] = make(map[Chord]KeyBinding)
		}
		r.scoped[b.Scope][b.Chord] = b
	}
	return r, nil
}

// Resolve maps a chord to an event name given the focus chain (innermost
// focused component first, then its ancestors). Scoped bindings win over
// global ones; a binding whose Enabled predicate evaluates false is
// passed over. The second return is the binding's scope, which becomes
// the event origin. ok is false when the chord is unbound, in which case
// default navigation applies beneath user bindings.
func (r *Resolver) Resolve(chord Chord, chain []NodeRef, store *Store) (event string, scope NodeRef, ok bool) {
	for _, ref := range chain {
		if b, found := r.scoped[ref][chord]; found && r.enabled(b, store) {
			return b.Event, ref, true
		}
	}
	if b, found := r.global[chord]; found && r.enabled(b, store) {
		return b.Event, 0, true
	}
	return "", 0, false
}

func (r *Resolver) enabled(b KeyBinding, store *Store) bool {
	return b.Enabled == nil || b.Enabled(store)
}

// NavAction is a default navigation behavior applied when a chord is
// unbound.
type NavAction uint8

const (
	NavNone NavAction = iota
	NavFocusNext
	NavFocusPrev
	NavArrow
	NavActivate
	NavCancel
)

// DefaultNav maps an unbound chord to the fallback navigation layer:
// tab/shift-tab cycle focus, bare arrows navigate within the focused
// component's container, enter toggles activation, escape clears focus.
func DefaultNav(chord Chord) NavAction {
	switch {
	case chord.Key == KeyTab && chord.Mod == ModNone:
		return NavFocusNext
	case chord.Key == KeyTab && chord.Mod == ModShift:
		return NavFocusPrev
	case chord.Mod == ModNone &&
		(chord.Key == KeyUp || chord.Key == KeyDown || chord.Key == KeyLeft || chord.Key == KeyRight):
		return NavArrow
	case chord.Key == KeyEnter && chord.Mod == ModNone:
		return NavActivate
	case chord.Key == KeyEscape && chord.Mod == ModNone:
		return NavCancel
	}
	return NavNone
}
