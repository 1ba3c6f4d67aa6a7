package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDistribute(t *testing.T) {
	type tc struct {
		total   int
		weights []float64
		want    []int
	}

	tests := map[string]tc{
		"proportional split is exact": {
			total:   30,
			weights: []float64{2, 1},
			want:    []int{20, 10},
		},
		"largest remainder preserves the sum": {
			total:   10,
			weights: []float64{1, 1, 1},
			want:    []int{4, 3, 3},
		},
		"equal remainders favor first declared": {
			total:   5,
			weights: []float64{1, 1},
			want:    []int{3, 2},
		},
		"larger remainder wins over declaration order": {
			total:   10,
			weights: []float64{1, 2},
			want:    []int{3, 7},
		},
		"zero weight receives nothing": {
			total:   10,
			weights: []float64{0, 1},
			want:    []int{0, 10},
		},
		"zero total": {
			total:   0,
			weights: []float64{1, 2},
			want:    []int{0, 0},
		},
		"no weights": {
			total:   10,
			weights: nil,
			want:    []int{},
		},
		"all weights zero": {
			total:   10,
			weights: []float64{0, 0},
			want:    []int{0, 0},
		},
		"single child takes everything": {
			total:   7,
			weights: []float64{3},
			want:    []int{7},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Distribute(tt.total, tt.weights)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Distribute(%d, %v) mismatch (-want +got):\n%s", tt.total, tt.weights, diff)
			}
			sum := 0
			for _, s := range got {
				sum += s
			}
			hasWeight := false
			for _, w := range tt.weights {
				if w > 0 {
					hasWeight = true
				}
			}
			if hasWeight && tt.total > 0 && sum != tt.total {
				t.Errorf("shares sum to %d, want %d", sum, tt.total)
			}
		})
	}
}
