package diff

import (
	"math"
	"sort"
)

// benjaminiHochberg converts p-values to q-values with the
// Benjamini-Hochberg false discovery rate procedure: rank the p-values
// ascending, scale each by testCount/rank, then sweep from the largest rank
// down so q-values stay monotone in p. NaN entries stay NaN and do not count
// as tests. The correction runs once over the whole slice, never per
// chromosome.
func benjaminiHochberg(pvals []float64) []float64 {
	qvals := make([]float64, len(pvals))
	idx := make([]int, 0, len(pvals))
	for i := range pvals {
		if math.IsNaN(pvals[i]) {
			qvals[i] = math.NaN()
		} else {
			idx = append(idx, i)
		}
	}
	n := len(idx)
	if n == 0 {
		return qvals
	}
	sort.Slice(idx, func(a, b int) bool { return pvals[idx[a]] < pvals[idx[b]] })
	minSoFar := 1.0
	for rank := n; rank >= 1; rank-- {
		i := idx[rank-1]
		scaled := pvals[i] * float64(n) / float64(rank)
		if scaled < minSoFar {
			minSoFar = scaled
		}
		qvals[i] = minSoFar
	}
	return qvals
}
