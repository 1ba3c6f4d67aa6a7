// Package loom provides the reactive core of a terminal UI toolkit.
//
// Users import this single package for the complete public API: the
// component tree, constraint-based layout, event propagation, focus and
// activation, key binding resolution, and reactive state bindings.
// Terminal I/O, painting, and theming are external collaborators that
// consume the per-tick Snapshot this package produces.
package loom
