package annealing

import (
	"github.com/copyleftdev/TUNNL/internal/optimization/random"
)

// perturb returns a copy of tour with numSwaps independent random index-pair
// swaps applied. Indices are drawn uniformly with replacement, so a swap may
// pick the same index twice (a no-op) or undo an earlier swap within the same
// call; that noise is part of the heuristic and must not be "fixed" into
// guaranteed-distinct swaps. The input tour is never mutated.
func perturb(tour []int, numSwaps int, src random.Source) []int {
	result := append([]int(nil), tour...)
	n := len(result)
	for k := 0; k < numSwaps; k++ {
		i := src.Intn(n)
		j := src.Intn(n)
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// tunnelSwaps returns the swap count for a tunneling move: a fraction of the
// instance size proportional to the iterations remaining, floored at one.
// Tunneling jumps start near a full random restart early in the run and decay
// to a single swap as the run approaches its iteration budget.
func tunnelSwaps(pctItersLeft float64, cities int) int {
	swaps := int(pctItersLeft * float64(cities))
	if swaps < 1 {
		swaps = 1
	}
	return swaps
}
