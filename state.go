package loom

import (
	"reflect"
	"strings"
	"sync"

	"github.com/loomui/loom/internal/debug"
)

// WatchFunc receives the written path and its new value.
type WatchFunc func(path string, value any)

// Unwatch removes a watcher. Call it to stop receiving updates.
type Unwatch func()

// watcher is a registered callback on a source path.
type watcher struct {
	id     uint64
	source string
	fn     WatchFunc
	active bool
}

// Store is the application state: a path-keyed value map that notifies
// watchers when values change.
//
// Paths are dot-separated ("user.name"). A watcher on "user" fires for
// writes to "user" and to anything beneath it ("user.name").
//
// Thread Safety Rules:
//   - Get() and Snapshot() are safe to call from any goroutine
//   - Set() must only be called from the engine loop
//   - For background updates, use tasks or Engine.Update()
//
// Batching:
//
// Use Batch() to coalesce multiple Set() calls so each watcher fires at
// most once, with the final value:
//
//	store.Batch(func() {
//	    store.Set("user.first", "Bob")
//	    store.Set("user.last", "Smith")
//	})
type Store struct {
	mu       sync.RWMutex
	values   map[string]any
	previous map[string]any // value each path held before its last effective write
	watchers []*watcher
	nextID   uint64

	// batch state for deferring watcher execution
	batchDepth   int
	pending      map[uint64]func() // pending callbacks keyed by watcher id
	pendingOrder []uint64          // order in which watchers were first triggered

	// onChange observes every effective write, for dirty tracking.
	onChange func(path string, value any)
}

// NewStore creates a store seeded with the given initial values. initial
// may be nil.
func NewStore(initial map[string]any) *Store {
	s := &Store{
		values:   make(map[string]any, len(initial)),
		previous: make(map[string]any),
		pending:  make(map[uint64]func()),
	}
	for path, v := range initial {
		s.values[path] = v
	}
	return s
}

// OnChange installs a callback observing every effective write. Used by
// the engine to mark the tree dirty.
func (s *Store) OnChange(fn func(path string, value any)) {
	s.onChange = fn
}

// Get returns the value at path. Safe for reading from any goroutine.
func (s *Store) Get(path string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[path]
	return v, ok
}

// GetPrevious returns the value path held before its most recent
// effective write. No-op writes do not shift it. ok is false until the
// path has been overwritten at least once; initial seeding does not
// count.
func (s *Store) GetPrevious(path string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.previous[path]
	return v, ok
}

// Snapshot returns a copy of the current values.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for path, v := range s.values {
		out[path] = v
	}
	return out
}

// Set writes the value at path and notifies matching watchers in
// registration order. Writing a value deeply equal to the current one is
// a no-op: no watcher fires and the store is unchanged.
//
// Must be called from the engine loop only. If called within a Batch(),
// watcher execution is deferred until the batch completes.
func (s *Store) Set(path string, v any) {
	s.mu.Lock()
	if prev, ok := s.values[path]; ok {
		if reflect.DeepEqual(prev, v) {
			s.mu.Unlock()
			return
		}
		s.previous[path] = prev
	}
	s.values[path] = v

	// Copy matching active watchers while holding the lock and compact
	// away removed ones.
	live := s.watchers[:0]
	var triggered []*watcher
	for _, w := range s.watchers {
		if !w.active {
			continue
		}
		live = append(live, w)
		if pathTriggers(path, w.source) {
			triggered = append(triggered, w)
		}
	}
	s.watchers = live
	isBatching := s.batchDepth > 0
	if isBatching {
		// Defer execution keyed by watcher id: a later Set on the same
		// watcher overwrites with the new value, order follows first
		// occurrence.
		for _, w := range triggered {
			fn, p, captured := w.fn, path, v
			if _, exists := s.pending[w.id]; !exists {
				s.pendingOrder = append(s.pendingOrder, w.id)
			}
			s.pending[w.id] = func() { fn(p, captured) }
		}
	}
	onChange := s.onChange
	s.mu.Unlock()

	debug.Log("Store.Set: %s = %v (%d watchers, batching=%v)", path, v, len(triggered), isBatching)
	if onChange != nil {
		onChange(path, v)
	}
	if !isBatching {
		for _, w := range triggered {
			w.fn(path, v)
		}
	}
}

// Update applies a function to the current value at path and writes the
// result. Convenience for read-modify-write.
func (s *Store) Update(path string, fn func(any) any) {
	v, _ := s.Get(path)
	s.Set(path, fn(v))
}

// Watch registers a callback fired when path, or any path beneath it,
// changes. Watchers fire in registration order. The returned handle
// removes the watcher.
func (s *Store) Watch(source string, fn WatchFunc) Unwatch {
	s.mu.Lock()
	s.nextID++
	w := &watcher{id: s.nextID, source: source, fn: fn, active: true}
	s.watchers = append(s.watchers, w)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		w.active = false
		s.mu.Unlock()
	}
}

// Batch executes fn and defers all watcher callbacks until fn returns.
// A watcher triggered multiple times during the batch fires once, with
// the final value, in the order watchers were first triggered. Nested
// batches fire when the outermost completes. If fn panics, the batch
// state is cleaned up before the panic propagates.
func (s *Store) Batch(fn func()) {
	s.mu.Lock()
	s.batchDepth++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.batchDepth--
		var callbacks []func()
		if s.batchDepth == 0 && len(s.pending) > 0 {
			callbacks = make([]func(), 0, len(s.pendingOrder))
			for _, id := range s.pendingOrder {
				if cb, exists := s.pending[id]; exists {
					callbacks = append(callbacks, cb)
				}
			}
			s.pending = make(map[uint64]func())
			s.pendingOrder = nil
		}
		s.mu.Unlock()

		// Execute outside the lock: callbacks may Set.
		for _, cb := range callbacks {
			cb()
		}
	}()

	fn()
}

// pathTriggers reports whether a write to path should fire a watcher on
// source: exact match or source is a dotted prefix of path.
func pathTriggers(path, source string) bool {
	return path == source || strings.HasPrefix(path, source+".")
}
