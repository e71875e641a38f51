package annealing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/TUNNL/internal/optimization"
	"github.com/copyleftdev/TUNNL/internal/optimization/random"
)

func TestSolveParallel(t *testing.T) {
	cfg := optimization.Config{
		Cities:            12,
		MaxIterations:     2000,
		StartTemperature:  1000.0,
		Alpha:             0.995,
		TunnelProbability: 0.10,
		RandomSeed:        6,
	}

	result, err := SolveParallel(context.Background(), cfg, 4)
	require.NoError(t, err)
	require.NotNil(t, result)

	assertPermutation(t, result.BestSolution.Tour, cfg.Cities)
	assert.GreaterOrEqual(t, result.BestSolution.Error, 0.0)
}

func TestSolveParallelDeterminism(t *testing.T) {
	cfg := optimization.Config{
		Cities:            10,
		MaxIterations:     1000,
		StartTemperature:  500.0,
		Alpha:             0.995,
		TunnelProbability: 0.10,
		RandomSeed:        42,
	}

	first, err := SolveParallel(context.Background(), cfg, 3)
	require.NoError(t, err)
	second, err := SolveParallel(context.Background(), cfg, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second, "derived seeds must make the whole run reproducible")
}

func TestSolveParallelNoWorseThanSingleRun(t *testing.T) {
	cfg := optimization.Config{
		Cities:            10,
		MaxIterations:     1000,
		StartTemperature:  500.0,
		Alpha:             0.995,
		TunnelProbability: 0.10,
		RandomSeed:        9,
	}

	// The first restart reuses the derivation for stream 0, so the parallel
	// result can only match or beat it.
	multi, err := SolveParallel(context.Background(), cfg, 5)
	require.NoError(t, err)

	singleCfg := cfg
	singleCfg.RandomSeed = random.DeriveSeed(cfg.RandomSeed, 0)
	single, err := SolveParallel(context.Background(), singleCfg, 1)
	require.NoError(t, err)

	assert.LessOrEqual(t, multi.BestSolution.Error, single.BestSolution.Error)
}

func TestSolveParallelRejectsBadInput(t *testing.T) {
	valid := optimization.Config{
		Cities:            10,
		MaxIterations:     100,
		StartTemperature:  500.0,
		Alpha:             0.995,
		TunnelProbability: 0.10,
		RandomSeed:        1,
	}

	_, err := SolveParallel(context.Background(), valid, 0)
	require.Error(t, err)
	assert.True(t, optimization.IsInvalidConfiguration(err))

	bad := valid
	bad.Alpha = 2.0
	_, err = SolveParallel(context.Background(), bad, 3)
	require.Error(t, err)
	assert.True(t, optimization.IsInvalidConfiguration(err))
}

func TestSolveParallelCancel(t *testing.T) {
	cfg := optimization.Config{
		Cities:            40,
		MaxIterations:     20000,
		StartTemperature:  100000.0,
		Alpha:             0.9990,
		TunnelProbability: 0.10,
		RandomSeed:        6,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := SolveParallel(ctx, cfg, 3)
	require.Error(t, err)
	assert.Nil(t, result)
}
