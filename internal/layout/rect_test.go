package layout

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 10, 5)

	type tc struct {
		x, y int
		want bool
	}

	tests := map[string]tc{
		"top-left corner":         {x: 2, y: 3, want: true},
		"interior":                {x: 7, y: 5, want: true},
		"right edge is exclusive": {x: 12, y: 3, want: false},
		"below":                   {x: 5, y: 8, want: false},
		"left of":                 {x: 1, y: 4, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 10, 6)

	got := r.Inset(EdgeSymmetric(1, 2))
	want := NewRect(2, 1, 6, 4)
	if got != want {
		t.Errorf("Inset = %+v, want %+v", got, want)
	}

	// Insets larger than the rect collapse to empty, never negative.
	collapsed := NewRect(0, 0, 3, 3).Inset(EdgeAll(2))
	if !collapsed.IsEmpty() {
		t.Errorf("over-inset rect = %+v, want empty", collapsed)
	}
}

func TestEdges(t *testing.T) {
	e := EdgeSymmetric(1, 3)
	if e.Horizontal() != 6 || e.Vertical() != 2 {
		t.Errorf("Horizontal/Vertical = %d/%d, want 6/2", e.Horizontal(), e.Vertical())
	}
}
