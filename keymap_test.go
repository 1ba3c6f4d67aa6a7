package loom

import (
	"errors"
	"strings"
	"testing"
)

func TestNewResolver_GlobalConflict(t *testing.T) {
	_, err := NewResolver([]KeyBinding{
		{Chord: MustChord("ctrl+s"), Event: "save"},
		{Chord: MustChord("Ctrl+S"), Event: "sync"},
	})

	var conflict *KeyConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want KeyConflictError", err)
	}
	if len(conflict.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(conflict.Conflicts))
	}
	c := conflict.Conflicts[0]
	if c.EventA != "save" || c.EventB != "sync" {
		t.Errorf("conflict names %q/%q, want save/sync", c.EventA, c.EventB)
	}
	if !strings.Contains(err.Error(), "save") || !strings.Contains(err.Error(), "sync") {
		t.Errorf("error %q does not name both events", err)
	}
}

func TestNewResolver_SameChordDifferentScopes(t *testing.T) {
	bindings := []KeyBinding{
		{Chord: MustChord("enter"), Event: "submit"},
		{Chord: MustChord("enter"), Scope: 7, Event: "open"},
	}
	if _, err := NewResolver(bindings); err != nil {
		t.Fatalf("scoped and global on the same chord conflicted: %v", err)
	}
}

func TestNewResolver_EnumeratesAllConflictPairs(t *testing.T) {
	_, err := NewResolver([]KeyBinding{
		{Chord: MustChord("ctrl+s"), Event: "one"},
		{Chord: MustChord("ctrl+s"), Event: "two"},
		{Chord: MustChord("ctrl+s"), Event: "three"},
	})

	var conflict *KeyConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want KeyConflictError", err)
	}
	if len(conflict.Conflicts) != 3 {
		t.Errorf("conflicts = %d, want all 3 pairs", len(conflict.Conflicts))
	}
}

func TestResolve_ScopePrecedence(t *testing.T) {
	const (
		inner NodeRef = 10
		outer NodeRef = 20
	)
	r, err := NewResolver([]KeyBinding{
		{Chord: MustChord("enter"), Event: "global-submit"},
		{Chord: MustChord("enter"), Scope: outer, Event: "outer-open"},
		{Chord: MustChord("enter"), Scope: inner, Event: "inner-select"},
	})
	if err != nil {
		t.Fatal(err)
	}
	chain := []NodeRef{inner, outer}

	type tc struct {
		chain     []NodeRef
		wantEvent string
		wantScope NodeRef
	}

	tests := map[string]tc{
		"innermost wins":       {chain: chain, wantEvent: "inner-select", wantScope: inner},
		"ancestor when no own": {chain: []NodeRef{outer}, wantEvent: "outer-open", wantScope: outer},
		"global fallback":      {chain: nil, wantEvent: "global-submit", wantScope: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			event, scope, ok := r.Resolve(MustChord("enter"), tt.chain, nil)
			if !ok {
				t.Fatal("chord did not resolve")
			}
			if event != tt.wantEvent || scope != tt.wantScope {
				t.Errorf("Resolve = %q@%d, want %q@%d", event, scope, tt.wantEvent, tt.wantScope)
			}
		})
	}
}

func TestResolve_UnboundChord(t *testing.T) {
	r, err := NewResolver([]KeyBinding{
		{Chord: MustChord("ctrl+s"), Event: "save"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := r.Resolve(MustChord("ctrl+q"), nil, nil); ok {
		t.Error("unbound chord resolved")
	}
}

func TestResolve_EnabledPredicate(t *testing.T) {
	store := NewStore(map[string]any{"editing": false})
	r, err := NewResolver([]KeyBinding{
		{
			Chord: MustChord("ctrl+z"),
			Event: "undo",
			Enabled: func(s *Store) bool {
				v, _ := s.Get("editing")
				b, _ := v.(bool)
				return b
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, ok := r.Resolve(MustChord("ctrl+z"), nil, store); ok {
		t.Error("disabled binding resolved")
	}
	store.Set("editing", true)
	if _, _, ok := r.Resolve(MustChord("ctrl+z"), nil, store); !ok {
		t.Error("enabled binding did not resolve")
	}
}

func TestResolve_DisabledScopedFallsThrough(t *testing.T) {
	const scope NodeRef = 5
	never := func(*Store) bool { return false }
	r, err := NewResolver([]KeyBinding{
		{Chord: MustChord("enter"), Scope: scope, Event: "scoped", Enabled: never},
		{Chord: MustChord("enter"), Event: "global"},
	})
	if err != nil {
		t.Fatal(err)
	}

	event, _, ok := r.Resolve(MustChord("enter"), []NodeRef{scope}, nil)
	if !ok || event != "global" {
		t.Errorf("Resolve = %q/%v, want global fallback", event, ok)
	}
}

func TestDefaultNav(t *testing.T) {
	tests := map[string]struct {
		chord string
		want  NavAction
	}{
		"tab":        {chord: "tab", want: NavFocusNext},
		"shift tab":  {chord: "shift+tab", want: NavFocusPrev},
		"arrow":      {chord: "down", want: NavArrow},
		"enter":      {chord: "enter", want: NavActivate},
		"escape":     {chord: "escape", want: NavCancel},
		"plain rune": {chord: "q", want: NavNone},
		"ctrl arrow": {chord: "ctrl+down", want: NavNone},
		"ctrl enter": {chord: "ctrl+enter", want: NavNone},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := DefaultNav(MustChord(tt.chord)); got != tt.want {
				t.Errorf("DefaultNav(%s) = %d, want %d", tt.chord, got, tt.want)
			}
		})
	}
}
