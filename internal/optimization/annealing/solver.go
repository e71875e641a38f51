// Package annealing implements quantum-inspired simulated annealing for the
// synthetic TSP instance: classic simulated annealing whose neighbor policy
// occasionally applies a large multi-swap "tunneling" perturbation to escape
// local minima that single swaps cannot.
package annealing

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/copyleftdev/TUNNL/internal/optimization"
	"github.com/copyleftdev/TUNNL/internal/optimization/cost"
	"github.com/copyleftdev/TUNNL/internal/optimization/kendall"
	"github.com/copyleftdev/TUNNL/internal/optimization/random"
)

// temperatureFloor is the minimum annealing temperature. Cooling clamps here
// so the Metropolis acceptance formula never divides by zero.
const temperatureFloor = 0.00001

// Solver implements quantum-inspired simulated annealing
type Solver struct {
	// Configuration
	config optimization.Config

	// Instance cost model
	model cost.Model

	// Random source for shuffles, swap indices and acceptance draws
	src random.Source

	// Best solution found
	best *optimization.Solution

	// Progress snapshots recorded at the reporting cadence
	history []optimization.Progress

	// For cancellation
	cancel context.CancelFunc
}

// New creates a new annealing solver for the given schedule parameters.
func New(config optimization.Config) (*Solver, error) {
	if err := validateConfig(config, "New"); err != nil {
		return nil, err
	}

	return &Solver{
		config:  config,
		model:   cost.NewDefault(),
		src:     random.New(config.RandomSeed),
		history: make([]optimization.Progress, 0, 10),
	}, nil
}

// Solve runs the annealing search until the current tour reaches zero error
// or the iteration budget is spent, and returns the best solution recorded
// across the entire run.
func (s *Solver) Solve(ctx context.Context, config optimization.Config) (*optimization.Result, error) {
	// Update config if provided
	if config.Cities > 0 {
		s.config = config
	}
	if err := validateConfig(s.config, "Solve"); err != nil {
		return nil, err
	}

	// Create a cancellable context
	ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	// A solver can be reused; each run starts with a fresh history.
	s.history = s.history[:0]

	n := s.config.Cities
	maxIter := s.config.MaxIterations

	// Initial state: a uniformly shuffled tour.
	tour := random.Perm(n, s.src)
	currErr := s.model.TourError(tour)

	s.best = &optimization.Solution{
		Tour:  append([]int(nil), tour...),
		Error: currErr,
	}

	temperature := s.config.StartTemperature

	// Reporting interval; an interval of zero means never log.
	interval := maxIter / 10

	candidateErrs := make([]float64, 0, maxIter)
	reason := optimization.TerminatedMaxIterations

	iteration := 0
	for ; iteration < maxIter; iteration++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Optimality is checked on the current tour before doing any work.
		if currErr == 0 {
			reason = optimization.TerminatedOptimal
			break
		}

		// The fraction of the run remaining drives the tunneling magnitude.
		pctItersLeft := float64(maxIter-iteration) / float64(maxIter)

		numSwaps := 1
		if s.src.Float64() < s.config.TunnelProbability {
			numSwaps = tunnelSwaps(pctItersLeft, n)
		}

		candidate := perturb(tour, numSwaps, s.src)
		candErr := s.model.TourError(candidate)
		candidateErrs = append(candidateErrs, candErr)

		// Best-tracking is unconditional and independent of acceptance.
		if candErr < s.best.Error {
			s.best = &optimization.Solution{
				Tour:  append([]int(nil), candidate...),
				Error: candErr,
			}
		}

		if candErr < currErr {
			tour = candidate
			currErr = candErr
		} else {
			// Metropolis criterion: currErr - candErr is non-positive here,
			// so acceptP is in (0, 1] and shrinks as the candidate worsens
			// or the temperature cools.
			acceptP := math.Exp((currErr - candErr) / temperature)
			if s.src.Float64() < acceptP {
				tour = candidate
				currErr = candErr
			}
		}

		if interval > 0 && iteration%interval == 0 {
			s.observe(iteration, tour, candidate, temperature)
		}

		// Multiplicative cooling, clamped at the floor.
		temperature *= s.config.Alpha
		if temperature < temperatureFloor {
			temperature = temperatureFloor
		}
	}

	// The budget can run out on the same iteration the optimum is reached.
	if currErr == 0 {
		reason = optimization.TerminatedOptimal
	}

	mean, stddev := summarize(candidateErrs)

	return &optimization.Result{
		BestSolution:         s.best.Clone(),
		Iterations:           iteration,
		Reason:               reason,
		History:              append([]optimization.Progress(nil), s.history...),
		CandidateErrorMean:   mean,
		CandidateErrorStdDev: stddev,
	}, nil
}

// BestSolution returns the best solution found so far
func (s *Solver) BestSolution() *optimization.Solution {
	return s.best.Clone()
}

// History returns the progress snapshots recorded during the run
func (s *Solver) History() []optimization.Progress {
	return s.history
}

// Stop stops the search
func (s *Solver) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// observe records a progress snapshot and forwards it to the configured
// observer. Purely observational; it never affects the search.
func (s *Solver) observe(iteration int, tour, candidate []int, temperature float64) {
	_, jump, err := kendall.Distance(tour, candidate)
	if err != nil {
		// Both tours are solver-produced permutations, so this is
		// unreachable on valid state; skip the snapshot rather than abort.
		return
	}

	p := optimization.Progress{
		Iteration:    iteration,
		JumpDistance: jump,
		Temperature:  temperature,
		BestError:    s.best.Error,
	}
	s.history = append(s.history, p)

	if s.config.Observer != nil {
		s.config.Observer.Observe(p)
	}
}

// validateConfig checks the schedule parameters and stamps rejected configs
// with this package's component context.
func validateConfig(config optimization.Config, op string) error {
	err := config.Validate()
	if err == nil {
		return nil
	}
	var oerr *optimization.Error
	if errors.As(err, &oerr) {
		oerr.WithComponent("annealing").WithOperation(op)
	}
	return err
}

// summarize computes the mean and standard deviation of the candidate errors
// evaluated during a run.
func summarize(errs []float64) (mean, stddev float64) {
	if len(errs) == 0 {
		return 0, 0
	}
	mean = stat.Mean(errs, nil)
	if len(errs) > 1 {
		stddev = stat.StdDev(errs, nil)
	}
	return mean, stddev
}
