package optimization

import (
	"context"
)

// Optimizer defines the interface for tour optimization algorithms
type Optimizer interface {
	// Solve runs the search and returns the best solution found
	Solve(ctx context.Context, config Config) (*Result, error)

	// BestSolution returns the best solution found so far
	BestSolution() *Solution

	// History returns the progress snapshots recorded during the run
	History() []Progress

	// Stop gracefully stops the search
	Stop()
}

// Config contains the immutable schedule parameters for one solve
type Config struct {
	// Number of cities in the synthetic instance; the tour is a
	// permutation of 0..Cities-1
	Cities int

	// Maximum number of annealing iterations
	MaxIterations int

	// Starting temperature for the Metropolis acceptance rule
	StartTemperature float64

	// Multiplicative cooling factor, in (0, 1)
	Alpha float64

	// Probability of a tunneling (multi-swap) move per iteration, in [0, 1]
	TunnelProbability float64

	// Random seed for reproducibility; 0 means seed from the clock
	RandomSeed int64

	// Observer receives progress snapshots; nil means no reporting
	Observer Observer
}

// Validate checks the schedule parameters against the legal input ranges.
func (c Config) Validate() error {
	switch {
	case c.Cities < 2:
		return NewInvalidConfiguration("cities must be at least 2")
	case c.MaxIterations < 1:
		return NewInvalidConfiguration("max iterations must be positive")
	case c.StartTemperature <= 0:
		return NewInvalidConfiguration("start temperature must be positive")
	case c.Alpha <= 0 || c.Alpha >= 1:
		return NewInvalidConfiguration("alpha must be in (0, 1)")
	case c.TunnelProbability < 0 || c.TunnelProbability > 1:
		return NewInvalidConfiguration("tunnel probability must be in [0, 1]")
	}
	return nil
}

// Solution represents a tour and its error under the instance cost model
type Solution struct {
	// Tour is a permutation of 0..n-1 in visiting order
	Tour []int

	// Error is the tour cost minus the known minimum cost
	Error float64
}

// Clone returns a deep copy of the solution.
func (s *Solution) Clone() *Solution {
	if s == nil {
		return nil
	}
	return &Solution{
		Tour:  append([]int(nil), s.Tour...),
		Error: s.Error,
	}
}

// Progress is a periodic snapshot of the search state, recorded every
// MaxIterations/10 iterations
type Progress struct {
	// Iteration at which the snapshot was taken
	Iteration int

	// JumpDistance is the normalized Kendall tau distance between the
	// current tour and the iteration's candidate tour
	JumpDistance float64

	// Temperature at the time of the snapshot
	Temperature float64

	// BestError is the best error observed so far
	BestError float64
}

// Observer receives progress snapshots from a running solver. The solver
// itself stays silent; drivers plug in printing or metrics observers.
type Observer interface {
	Observe(p Progress)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(p Progress)

// Observe calls f(p).
func (f ObserverFunc) Observe(p Progress) { f(p) }

// TerminationReason says why a solve stopped
type TerminationReason string

const (
	// TerminatedOptimal means the current tour reached zero error
	TerminatedOptimal TerminationReason = "optimal"

	// TerminatedMaxIterations means the iteration budget ran out
	TerminatedMaxIterations TerminationReason = "max_iterations"
)

// Result contains the outcome of one solve
type Result struct {
	// BestSolution is the best tour found across the entire run
	BestSolution *Solution

	// Iterations actually performed
	Iterations int

	// Reason the run stopped
	Reason TerminationReason

	// History holds the progress snapshots recorded during the run
	History []Progress

	// CandidateErrorMean and CandidateErrorStdDev summarize the errors of
	// every candidate tour evaluated during the run
	CandidateErrorMean   float64
	CandidateErrorStdDev float64
}

// Optimal reports whether the run terminated by reaching zero error.
func (r *Result) Optimal() bool {
	return r.Reason == TerminatedOptimal
}
