package loom

import (
	"fmt"
	"strings"
)

// DuplicateNameError reports an insert that would give two siblings the
// same name.
type DuplicateNameError struct {
	Parent string // path of the parent container
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate component name %q under %q", e.Name, e.Parent)
}

// DuplicateIDError reports an insert that would reuse a component id
// already present somewhere in the tree.
type DuplicateIDError struct {
	ID       string
	Existing string // path of the component already holding the id
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate component id %q (already used by %q)", e.ID, e.Existing)
}

// NotFoundError reports a lookup that resolved to no component: a stale
// ref, an unknown id, or a missing path segment.
type NotFoundError struct {
	Ref  NodeRef
	Path string
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("component not found: %q", e.Path)
	}
	return fmt.Sprintf("component not found: ref %d", e.Ref)
}

// NotFocusableError reports a SetFocus target that fails the
// selectable/enabled/visible predicate.
type NotFocusableError struct {
	Ref  NodeRef
	Name string
}

func (e *NotFocusableError) Error() string {
	return fmt.Sprintf("component %q is not focusable", e.Name)
}

// InvalidActivationError reports an activation change that would violate
// the container's activation mode.
type InvalidActivationError struct {
	Container string
	Child     string
	Reason    string
}

func (e *InvalidActivationError) Error() string {
	return fmt.Sprintf("invalid activation on %q: %s", e.Container, e.Reason)
}

// KeyConflict identifies one pair of key bindings claiming the same chord
// at the same scope.
type KeyConflict struct {
	Chord  Chord
	Scope  string // component id, or "" for global
	EventA string
	EventB string
}

func (c KeyConflict) String() string {
	scope := c.Scope
	if scope == "" {
		scope = "global"
	}
	return fmt.Sprintf("%s@%s: %q vs %q", c.Chord, scope, c.EventA, c.EventB)
}

// KeyConflictError aggregates every conflicting key binding pair found
// during construction.
type KeyConflictError struct {
	Conflicts []KeyConflict
}

func (e *KeyConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = c.String()
	}
	return "conflicting key bindings: " + strings.Join(parts, "; ")
}

// BindingCycleError reports a cycle in the binding graph, as the chain of
// state paths and component properties that feeds back into itself.
type BindingCycleError struct {
	Chain []string
}

func (e *BindingCycleError) Error() string {
	return "binding cycle: " + strings.Join(e.Chain, " -> ")
}

// UnresolvedReferenceError reports a name used by the description but
// never defined: a component id, state path, event name, transform, or
// predicate.
type UnresolvedReferenceError struct {
	Kind string // "component", "state", "event", "transform", "predicate"
	Name string
	Used string // where the reference appears
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved %s reference %q in %s", e.Kind, e.Name, e.Used)
}
