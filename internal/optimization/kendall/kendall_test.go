package kendall

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2         []int
		expectedRaw    int
		expectedNormed float64
	}{
		{
			name:           "identical permutations",
			p1:             []int{0, 1, 2, 3},
			p2:             []int{0, 1, 2, 3},
			expectedRaw:    0,
			expectedNormed: 0.0,
		},
		{
			name:           "full reversal",
			p1:             []int{0, 1, 2, 3},
			p2:             []int{3, 2, 1, 0},
			expectedRaw:    6,
			expectedNormed: 1.0,
		},
		{
			name:           "single adjacent swap",
			p1:             []int{0, 1, 2, 3},
			p2:             []int{1, 0, 2, 3},
			expectedRaw:    1,
			expectedNormed: 1.0 / 6.0,
		},
		{
			name:           "non-identity pair",
			p1:             []int{2, 0, 3, 1},
			p2:             []int{0, 1, 2, 3},
			expectedRaw:    3, // (2,0), (2,1), (3,1) are inverted
			expectedNormed: 0.5,
		},
		{
			name:           "two elements swapped",
			p1:             []int{0, 1},
			p2:             []int{1, 0},
			expectedRaw:    1,
			expectedNormed: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, normed, err := Distance(tt.p1, tt.p2)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedRaw, raw)
			assert.InDelta(t, tt.expectedNormed, normed, 1e-10)

			// The distance is symmetric in its arguments.
			raw2, normed2, err := Distance(tt.p2, tt.p1)
			require.NoError(t, err)
			assert.Equal(t, raw, raw2)
			assert.InDelta(t, normed, normed2, 1e-10)
		})
	}
}

func TestDistanceInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 []int
	}{
		{"length mismatch", []int{0, 1, 2}, []int{0, 1}},
		{"duplicate value", []int{0, 1, 1, 3}, []int{0, 1, 2, 3}},
		{"out of range value", []int{0, 1, 2, 4}, []int{0, 1, 2, 3}},
		{"negative value", []int{0, 1, 2, 3}, []int{0, -1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Distance(tt.p1, tt.p2)
			assert.Error(t, err)
		})
	}
}

func TestDistanceBounds(t *testing.T) {
	// Random permutation pairs stay within [0, n(n-1)/2] raw and [0, 1]
	// normalized.
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(20)
		p1 := rng.Perm(n)
		p2 := rng.Perm(n)

		raw, normed, err := Distance(p1, p2)
		require.NoError(t, err)

		maxRaw := n * (n - 1) / 2
		assert.GreaterOrEqual(t, raw, 0)
		assert.LessOrEqual(t, raw, maxRaw)
		assert.GreaterOrEqual(t, normed, 0.0)
		assert.LessOrEqual(t, normed, 1.0)
	}
}

func TestDistanceAgainstRankCorrelation(t *testing.T) {
	// For tie-free permutations the classic identity tau = 1 - 2*normalized
	// links the inversion distance to Kendall's rank correlation, so the
	// position tables must agree with gonum's coefficient.
	rng := rand.New(rand.NewSource(13))
	for trial := 0; trial < 20; trial++ {
		n := 3 + rng.Intn(15)
		p1 := rng.Perm(n)
		p2 := rng.Perm(n)

		_, normed, err := Distance(p1, p2)
		require.NoError(t, err)

		pos1 := make([]float64, n)
		pos2 := make([]float64, n)
		for i := 0; i < n; i++ {
			pos1[p1[i]] = float64(i)
			pos2[p2[i]] = float64(i)
		}
		tau := stat.Kendall(pos1, pos2, nil)

		assert.InDelta(t, 1.0-2.0*normed, tau, 1e-10,
			"tau mismatch for p1=%v p2=%v", p1, p2)
	}
}

func TestDistanceReverseIsMaximal(t *testing.T) {
	for n := 2; n <= 12; n++ {
		p := make([]int, n)
		r := make([]int, n)
		for i := 0; i < n; i++ {
			p[i] = i
			r[i] = n - 1 - i
		}

		raw, normed, err := Distance(p, r)
		require.NoError(t, err)
		assert.Equal(t, n*(n-1)/2, raw)
		assert.True(t, math.Abs(normed-1.0) < 1e-10)
	}
}
