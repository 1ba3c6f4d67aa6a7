package layout

import "sort"

// Distribute splits total cells among weights using the largest-remainder
// method. The returned shares always sum to total exactly. Ties between
// equal remainders are broken by declaration order, so the first-declared
// entry receives the extra cell.
func Distribute(total int, weights []float64) []int {
	shares := make([]int, len(weights))
	if total <= 0 || len(weights) == 0 {
		return shares
	}

	totalWeight := 0.0
	for _, w := range weights {
		if w > 0 {
			totalWeight += w
		}
	}
	if totalWeight <= 0 {
		return shares
	}

	// Floor of each proportional share, remember the fractional remainder.
	remainders := make([]float64, len(weights))
	allocated := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		exact := float64(total) * w / totalWeight
		shares[i] = int(exact)
		remainders[i] = exact - float64(shares[i])
		allocated += shares[i]
	}

	// Hand the leftover cells to the largest remainders, first-declared
	// winning ties (stable sort on remainder only).
	leftover := total - allocated
	if leftover <= 0 {
		return shares
	}
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, idx := range order {
		if leftover == 0 {
			break
		}
		if weights[idx] <= 0 {
			continue
		}
		shares[idx]++
		leftover--
	}
	return shares
}
