package loom

import (
	"time"

	"github.com/loomui/loom/internal/debug"
)

// Wildcard subscribes a handler to every event type on a node.
const Wildcard = "*"

// Event types emitted by the engine itself. Applications define their own
// types freely; these names are reserved.
const (
	EventMount      = "mount"
	EventUnmount    = "unmount"
	EventFocus      = "focus"
	EventBlur       = "blur"
	EventActivate   = "activate"
	EventDeactivate = "deactivate"
	EventResize     = "resize"
	EventKey        = "key"
)

// Event is the record of a named occurrence propagating from its origin
// component up through its ancestors.
type Event struct {
	Type   string
	Origin NodeRef
	Data   any
	Time   time.Time

	stopped bool
}

// StopPropagation prevents delivery to the current node's ancestors.
// Handlers already scheduled on the current node still run.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether a handler stopped the event.
func (e *Event) PropagationStopped() bool { return e.stopped }

// Handler receives events delivered to a subscription.
type Handler func(*Event)

// subscription is a non-owning registration: delivery checks that the
// owner is still in the tree and silently drops the subscription if not.
type subscription struct {
	handler Handler
	sender  NodeRef // only deliver events originating here (0 = any)
	once    bool
	done    bool
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*subscription)

// Once removes the subscription after its first delivery.
func Once() SubscribeOption {
	return func(s *subscription) { s.once = true }
}

// FromSender restricts delivery to events whose origin matches ref.
func FromSender(ref NodeRef) SubscribeOption {
	return func(s *subscription) { s.sender = ref }
}

type subKey struct {
	owner NodeRef
	typ   string
}

// Bus is the subscriber registry and propagation engine. Subscriptions
// are keyed by (node, event type) and hold no owning reference to the
// node: a listener whose node has been removed from the tree is skipped
// and pruned.
type Bus struct {
	tree *Tree
	subs map[subKey][]*subscription

	// onHandlerError observes recovered handler panics. Delivery always
	// continues past a failing handler.
	onHandlerError func(owner NodeRef, ev *Event, recovered any)
}

// NewBus creates a bus over the given tree.
func NewBus(tree *Tree) *Bus {
	return &Bus{
		tree: tree,
		subs: make(map[subKey][]*subscription),
	}
}

// OnHandlerError installs a callback observing recovered handler
// failures, for a logging collaborator.
func (b *Bus) OnHandlerError(fn func(owner NodeRef, ev *Event, recovered any)) {
	b.onHandlerError = fn
}

// Subscribe registers a handler for events of the given type delivered to
// owner. Use Wildcard to observe all events on the node. The returned
// function cancels the subscription.
func (b *Bus) Subscribe(owner NodeRef, typ string, h Handler, opts ...SubscribeOption) func() {
	s := &subscription{handler: h}
	for _, opt := range opts {
		opt(s)
	}
	key := subKey{owner: owner, typ: typ}
	b.subs[key] = append(b.subs[key], s)
	return func() { s.done = true }
}

// RemoveListeners drops every subscription owned by a node. Called by the
// engine when a node leaves the tree; delivery also skips stale owners,
// so this is cleanup rather than correctness.
func (b *Bus) RemoveListeners(owner NodeRef) {
	for key := range b.subs {
		if key.owner == owner {
			delete(b.subs, key)
		}
	}
}

// Emit constructs an event and delivers it synchronously: handlers on the
// origin in registration order (exact type first, then wildcard), then
// the same on each ancestor toward the root, unless a handler stopped
// propagation. An event nobody handles is simply dropped.
func (b *Bus) Emit(origin NodeRef, typ string, data any) *Event {
	ev := &Event{
		Type:   typ,
		Origin: origin,
		Data:   data,
		Time:   time.Now(),
	}
	node := origin
	for node != 0 && b.tree.Contains(node) {
		b.deliver(node, typ, ev)
		b.deliver(node, Wildcard, ev)
		if ev.stopped {
			break
		}
		node = b.tree.mustGet(node).parent
	}
	return ev
}

func (b *Bus) deliver(owner NodeRef, typ string, ev *Event) {
	key := subKey{owner: owner, typ: typ}
	subs := b.subs[key]
	if len(subs) == 0 {
		return
	}
	if !b.tree.Contains(owner) {
		// The listening node is gone; drop its subscriptions.
		delete(b.subs, key)
		return
	}

	// Iterate a snapshot: handlers may subscribe or cancel during delivery.
	snapshot := make([]*subscription, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		if s.done {
			continue
		}
		if s.sender != 0 && s.sender != ev.Origin {
			continue
		}
		if s.once {
			s.done = true
		}
		b.invoke(owner, s, ev)
	}

	// Compact cancelled subscriptions.
	live := b.subs[key][:0]
	for _, s := range b.subs[key] {
		if !s.done {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		delete(b.subs, key)
	} else {
		b.subs[key] = live
	}
}

// invoke runs one handler with panic isolation: a failing handler never
// blocks later handlers or propagation.
func (b *Bus) invoke(owner NodeRef, s *subscription, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			debug.Log("event handler panic on node %d for %q: %v", owner, ev.Type, r)
			if b.onHandlerError != nil {
				b.onHandlerError(owner, ev, r)
			}
		}
	}()
	s.handler(ev)
}
