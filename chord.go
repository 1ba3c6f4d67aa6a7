package loom

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chord is a normalized key combination. Two chords written differently
// ("Shift+Ctrl+X", "ctrl+shift+x") normalize to the same value, so Chord
// is directly comparable and usable as a map key.
type Chord struct {
	Key  Key
	Rune rune // set only when Key == KeyRune, always lowercase
	Mod  Modifier
}

// ParseChord parses a chord description of the form
// "[mod+...]key", e.g. "q", "ctrl+c", "shift+tab", "ctrl+alt+delete".
// Modifier order and letter case are insignificant: "Ctrl+S" and
// "ctrl+s" parse to the same chord. Shift is carried only by an
// explicit "shift+" modifier, never inferred from letter case.
func ParseChord(s string) (Chord, error) {
	if strings.TrimSpace(s) == "" {
		return Chord{}, fmt.Errorf("empty key chord")
	}
	parts := strings.Split(s, "+")
	var chord Chord
	for i, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		last := i == len(parts)-1

		if !last {
			mod, ok := modByName(token)
			if !ok {
				return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", part, s)
			}
			chord.Mod |= mod
			continue
		}

		// Final token is the key itself.
		if key, ok := keyByName[token]; ok {
			chord.Key = key
			continue
		}
		r, size := utf8.DecodeRuneInString(strings.TrimSpace(part))
		if size == 0 || size != len(strings.TrimSpace(part)) {
			return Chord{}, fmt.Errorf("unknown key %q in chord %q", part, s)
		}
		chord.Key = KeyRune
		chord.Rune = unicode.ToLower(r)
	}
	if chord.Key == KeyNone {
		return Chord{}, fmt.Errorf("chord %q has no key", s)
	}
	return chord, nil
}

// MustChord parses a chord and panics on error. For statically known
// chords in code and tests.
func MustChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

func modByName(s string) (Modifier, bool) {
	switch s {
	case "ctrl", "control", "c":
		return ModCtrl, true
	case "alt", "meta", "m":
		return ModAlt, true
	case "shift", "s":
		return ModShift, true
	}
	return 0, false
}

// String returns the canonical chord form: modifiers in ctrl-alt-shift
// order, then the key name.
func (c Chord) String() string {
	var parts []string
	if c.Mod.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if c.Mod.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if c.Mod.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if c.Key == KeyRune {
		parts = append(parts, string(c.Rune))
	} else {
		parts = append(parts, c.Key.String())
	}
	return strings.Join(parts, "+")
}
