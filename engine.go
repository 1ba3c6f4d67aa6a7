package loom

import (
	"context"
	"sync"

	"github.com/loomui/loom/internal/debug"
)

// Engine is the explicit context tying the tree, store, bus, focus, and
// key resolver together under a single-threaded tick model. Exactly one
// mutator context exists: queued items run one at a time on the tick, so
// none of the owned structures need locking.
//
// External callers (input sources, probes, tasks) interact only through
// the Inject entry points, which enqueue work, and the read-only query
// methods. Probe-driven interaction is indistinguishable from real input.
type Engine struct {
	tree   *Tree
	store  *Store
	bus    *Bus
	focus  *FocusManager
	keys   *Resolver
	binder *Binder

	queue    chan func()
	stopCh   chan struct{}
	stopOnce sync.Once

	width  int
	height int
}

const queueSize = 256

func newEngine(tree *Tree, store *Store, binder *Binder, keys *Resolver, width, height int) *Engine {
	e := &Engine{
		tree:   tree,
		store:  store,
		binder: binder,
		keys:   keys,
		queue:  make(chan func(), queueSize),
		stopCh: make(chan struct{}),
		width:  width,
		height: height,
	}
	e.bus = NewBus(tree)
	e.focus = NewFocusManager(tree, e.bus)

	tree.onInsert = func(ref NodeRef) {
		e.bus.Emit(ref, EventMount, nil)
	}
	tree.onRemove = func(ref NodeRef) {
		e.bus.Emit(ref, EventUnmount, nil)
		e.bus.RemoveListeners(ref)
		e.focus.handleRemoved(ref)
	}
	return e
}

// Tree returns the engine's component tree.
func (e *Engine) Tree() *Tree { return e.tree }

// Store returns the engine's state store.
func (e *Engine) Store() *Store { return e.store }

// Bus returns the engine's event bus, for handler registration.
func (e *Engine) Bus() *Bus { return e.bus }

// Focus returns the engine's focus manager.
func (e *Engine) Focus() *FocusManager { return e.focus }

// --- Tick loop ---

// Step processes at most one queued item to completion: full event
// propagation, all triggered bindings, then one layout pass if anything
// went dirty. Returns false when the queue was empty.
func (e *Engine) Step() bool {
	select {
	case fn := <-e.queue:
		fn()
		e.layoutIfDirty()
		return true
	default:
		return false
	}
}

// Close signals running tasks to stop. Idempotent; Run calls it on exit.
func (e *Engine) Close() {
	e.stopOnce.Do(func() { close(e.stopCh) })
}

// Run drains the queue until the context is cancelled, one item per
// tick. The only suspension point is the wait for the next item.
func (e *Engine) Run(ctx context.Context) error {
	defer e.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-e.queue:
			fn()
			e.layoutIfDirty()
		}
	}
}

func (e *Engine) layoutIfDirty() {
	if e.tree.Dirty() {
		e.tree.CalculateLayout(NewRect(0, 0, e.width, e.height))
	}
}

// Update enqueues an arbitrary function onto the tick. This is the safe
// way for external goroutines to mutate engine state.
func (e *Engine) Update(fn func()) {
	e.queue <- fn
}

// --- Injection entry points ---

// InjectKey enqueues a key chord as if the user pressed it.
func (e *Engine) InjectKey(chord Chord) {
	e.queue <- func() { e.handleKey(chord) }
}

// InjectResize enqueues a change of the available size.
func (e *Engine) InjectResize(width, height int) {
	e.queue <- func() {
		e.width = width
		e.height = height
		e.tree.MarkDirty()
		e.bus.Emit(e.tree.Root(), EventResize, Size{Width: width, Height: height})
	}
}

// InjectStateUpdate enqueues a store write.
func (e *Engine) InjectStateUpdate(path string, value any) {
	e.queue <- func() { e.store.Set(path, value) }
}

// --- Queries (read-only) ---

// GetState reads a store value.
func (e *Engine) GetState(path string) (any, bool) {
	return e.store.Get(path)
}

// GetGeometry returns the computed rectangle for a component.
func (e *Engine) GetGeometry(ref NodeRef) (Rect, error) {
	c, err := e.tree.Get(ref)
	if err != nil {
		return Rect{}, err
	}
	return c.Geometry(), nil
}

// --- Key handling ---

// handleKey resolves the chord against the focus chain. A resolved
// binding emits its event from the binding's scope (global bindings emit
// from the focused component, or the root when nothing is focused). An
// unbound chord falls through to default navigation; a chord neither
// layer claims is delivered raw as a key event, so listeners can observe
// input no binding covers.
func (e *Engine) handleKey(chord Chord) {
	chain := e.focus.Chain()
	if event, scope, ok := e.keys.Resolve(chord, chain, e.store); ok {
		origin := scope
		if origin == 0 {
			origin = e.focus.Focused()
		}
		if origin == 0 {
			origin = e.tree.Root()
		}
		e.bus.Emit(origin, event, chord)
		return
	}

	switch DefaultNav(chord) {
	case NavFocusNext:
		e.focus.Next()
	case NavFocusPrev:
		e.focus.Prev()
	case NavArrow:
		e.focus.MoveArrow(chord.Key)
	case NavActivate:
		e.toggleActivation()
	case NavCancel:
		e.focus.ClearFocus()
	default:
		origin := e.focus.Focused()
		if origin == 0 {
			origin = e.tree.Root()
		}
		debug.Log("unbound chord %s delivered as raw key from %d", chord, origin)
		e.bus.Emit(origin, EventKey, chord)
	}
}

// toggleActivation flips the focused component's activation within its
// parent activatable container, emitting activate/deactivate events. A
// rejected change (single-mode emptying) is dropped for this gesture.
func (e *Engine) toggleActivation() {
	focused := e.focus.Focused()
	c, err := e.tree.Get(focused)
	if err != nil || c.parent == 0 {
		return
	}
	parent := e.tree.mustGet(c.parent)
	if parent.kind != KindActivatable {
		return
	}

	if parent.group.IsActive(focused) {
		if err := e.tree.Deactivate(c.parent, focused); err != nil {
			debug.Log("deactivation rejected: %v", err)
			return
		}
		e.bus.Emit(focused, EventDeactivate, nil)
		return
	}
	previous, err := e.tree.Activate(c.parent, focused)
	if err != nil {
		debug.Log("activation rejected: %v", err)
		return
	}
	if previous != 0 {
		e.bus.Emit(previous, EventDeactivate, nil)
	}
	e.bus.Emit(focused, EventActivate, nil)
}
