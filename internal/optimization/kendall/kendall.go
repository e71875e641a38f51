// Package kendall computes the Kendall tau ordering distance between two
// permutations: the number of city pairs whose relative order disagrees.
// The annealing solver reports it as a diagnostic for how far a perturbation
// jumped the tour; it takes no part in acceptance decisions.
package kendall

import "fmt"

// Distance returns the raw and normalized Kendall tau distance between two
// permutations of the same length n. Raw is the number of unordered pairs
// (i, j) whose relative order in p1 is inverted in p2, in [0, n(n-1)/2].
// Normalized is raw divided by n(n-1)/2, in [0, 1]: 0 means identical order,
// 1 means fully reversed order.
func Distance(p1, p2 []int) (raw int, normalized float64, err error) {
	n := len(p1)
	if len(p2) != n {
		return 0, 0, fmt.Errorf("length mismatch: %d vs %d", n, len(p2))
	}
	if n < 2 {
		return 0, 0, nil
	}

	indexOf, err := positionTable(p2)
	if err != nil {
		return 0, 0, err
	}
	if _, err := positionTable(p1); err != nil {
		return 0, 0, err
	}

	// For each pair of cities, count a disagreement when the city that comes
	// first in p1 comes later in p2.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if indexOf[p1[i]] > indexOf[p1[j]] {
				raw++
			}
		}
	}

	normer := float64(n*(n-1)) / 2.0
	return raw, float64(raw) / normer, nil
}

// positionTable builds the city -> position lookup for a permutation of
// 0..n-1, rejecting out-of-range or duplicate values.
func positionTable(p []int) ([]int, error) {
	n := len(p)
	index := make([]int, n)
	seen := make([]bool, n)
	for i, v := range p {
		if v < 0 || v >= n {
			return nil, fmt.Errorf("value %d out of range for permutation of length %d", v, n)
		}
		if seen[v] {
			return nil, fmt.Errorf("duplicate value %d in permutation", v)
		}
		seen[v] = true
		index[v] = i
	}
	return index, nil
}
