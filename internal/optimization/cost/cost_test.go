package cost

import (
	"math"
	"testing"
)

func TestStepCost(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		forward  float64
		backward float64
		expected float64
	}{
		{
			name:     "ascending step",
			a:        0,
			b:        3,
			forward:  1.0,
			backward: 1.5,
			expected: 3.0,
		},
		{
			name:     "descending step",
			a:        3,
			b:        1,
			forward:  1.0,
			backward: 1.5,
			expected: 3.0, // 2 * 1.5
		},
		{
			name:     "same city",
			a:        2,
			b:        2,
			forward:  1.0,
			backward: 1.5,
			expected: 0.0,
		},
		{
			name:     "custom weights",
			a:        5,
			b:        0,
			forward:  2.0,
			backward: 3.0,
			expected: 15.0, // 5 * 3.0
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := NewSyntheticAsymmetric(tt.forward, tt.backward)
			result := model.StepCost(tt.a, tt.b)

			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestTourCost(t *testing.T) {
	tests := []struct {
		name     string
		tour     []int
		expected float64
	}{
		{
			name:     "identity tour",
			tour:     []int{0, 1, 2, 3},
			expected: 3.0, // 1+1+1
		},
		{
			name:     "scrambled tour",
			tour:     []int{2, 0, 3, 1},
			expected: 9.0, // 2*1.5 + 3*1.0 + 2*1.5
		},
		{
			name:     "reversed tour",
			tour:     []int{3, 2, 1, 0},
			expected: 4.5, // 3 descending unit steps at 1.5
		},
		{
			name:     "single city",
			tour:     []int{0},
			expected: 0.0,
		},
		{
			name:     "empty tour",
			tour:     nil,
			expected: 0.0,
		},
	}

	model := NewDefault()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := model.TourCost(tt.tour)
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestTourError(t *testing.T) {
	model := NewDefault()

	// Identity is the unique optimum with error exactly zero.
	if err := model.TourError([]int{0, 1, 2, 3, 4}); err != 0 {
		t.Errorf("identity tour should have zero error, got %v", err)
	}

	// The scenario tour from the demo instance.
	if err := model.TourError([]int{2, 0, 3, 1}); math.Abs(err-6.0) > 1e-10 {
		t.Errorf("expected error 6.0, got %v", err)
	}
}

func TestTourErrorNonNegative(t *testing.T) {
	model := NewDefault()

	// Exhaustive check over all permutations of 5 cities: error is
	// non-negative everywhere and zero only at the identity.
	perms := permutations([]int{0, 1, 2, 3, 4})
	for _, p := range perms {
		err := model.TourError(p)
		if err < 0 {
			t.Fatalf("negative error %v for tour %v", err, p)
		}
		if err == 0 && !isIdentity(p) {
			t.Fatalf("zero error for non-identity tour %v", p)
		}
		if err != 0 && isIdentity(p) {
			t.Fatalf("nonzero error %v for identity tour", err)
		}
	}
}

func TestNewSyntheticAsymmetricPanics(t *testing.T) {
	tests := []struct {
		name     string
		forward  float64
		backward float64
	}{
		{"zero forward", 0, 1.5},
		{"negative forward", -1, 1.5},
		{"zero backward", 1.0, 0},
		{"negative backward", 1.0, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic for invalid weights")
				}
			}()
			NewSyntheticAsymmetric(tt.forward, tt.backward)
		})
	}
}

func isIdentity(p []int) bool {
	for i, v := range p {
		if i != v {
			return false
		}
	}
	return true
}

// permutations returns every permutation of s via Heap's algorithm.
func permutations(s []int) [][]int {
	var out [][]int
	var generate func(k int, a []int)
	generate = func(k int, a []int) {
		if k == 1 {
			out = append(out, append([]int(nil), a...))
			return
		}
		for i := 0; i < k; i++ {
			generate(k-1, a)
			if k%2 == 0 {
				a[i], a[k-1] = a[k-1], a[i]
			} else {
				a[0], a[k-1] = a[k-1], a[0]
			}
		}
	}
	generate(len(s), append([]int(nil), s...))
	return out
}
