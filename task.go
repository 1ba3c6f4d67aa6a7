package loom

import (
	"time"

	"github.com/loomui/loom/internal/debug"
)

// Task is a deferred source of work running off the main tick. A task
// never mutates the tree, store, or focus state from its own goroutine:
// it posts completions onto the queue, and they execute on the next tick
// through the normal entry points.
type Task interface {
	// Start begins the task goroutine. The queue and stop channel are
	// provided by the engine.
	Start(queue chan<- func(), stop <-chan struct{})
}

// StartTask starts a task owned by a component. Completions arriving
// after the owner has been removed from the tree are discarded; that is
// the cancellation model. An owner of 0 means the task outlives any
// component.
func (e *Engine) StartTask(owner NodeRef, t Task) {
	if owner == 0 {
		t.Start(e.queue, e.stopCh)
		return
	}

	// Forward through a proxy so each completion checks ownership on the
	// tick that executes it, not the goroutine that posted it.
	proxy := make(chan func(), queueSize)
	t.Start(proxy, e.stopCh)
	go func() {
		for {
			select {
			case <-e.stopCh:
				return
			case fn, ok := <-proxy:
				if !ok {
					return
				}
				wrapped := func() {
					if !e.tree.Contains(owner) {
						debug.Log("task completion for removed node %d discarded", owner)
						return
					}
					fn()
				}
				select {
				case e.queue <- wrapped:
				case <-e.stopCh:
					return
				}
			}
		}
	}()
}

// ChannelTask posts a completion for each value received on a channel.
type ChannelTask[T any] struct {
	ch      <-chan T
	handler func(T)
}

// NewChannelTask creates a task that calls fn on the main tick for each
// value received on ch. The task ends when ch closes.
func NewChannelTask[T any](ch <-chan T, fn func(T)) *ChannelTask[T] {
	return &ChannelTask[T]{ch: ch, handler: fn}
}

// Start the task.
func (t *ChannelTask[T]) Start(queue chan<- func(), stop <-chan struct{}) {
	go func() {
		for {
			select {
			case <-stop:
				return
			case val, ok := <-t.ch:
				if !ok {
					return
				}
				v := val
				select {
				case queue <- func() { t.handler(v) }:
				case <-stop:
					return
				}
			}
		}
	}()
}

// timerTask fires at a regular interval.
type timerTask struct {
	interval time.Duration
	handler  func()
}

// OnTimer creates a task that posts handler at the given interval. The
// handler runs on the main tick.
func OnTimer(interval time.Duration, handler func()) Task {
	return &timerTask{interval: interval, handler: handler}
}

// Start the task.
func (t *timerTask) Start(queue chan<- func(), stop <-chan struct{}) {
	go func() {
		debug.Log("timer task started, interval %s", t.interval)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case queue <- t.handler:
				case <-stop:
					return
				}
			}
		}
	}()
}
