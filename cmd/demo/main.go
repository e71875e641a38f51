// Command demo runs the fixed quantum-inspired annealing demonstration: 40
// cities, 20000 iterations, seed 6. It prints the initial guess, periodic
// progress lines and the best tour found, then exits.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/copyleftdev/TUNNL/internal/optimization"
	"github.com/copyleftdev/TUNNL/internal/optimization/annealing"
	"github.com/copyleftdev/TUNNL/internal/optimization/cost"
	"github.com/copyleftdev/TUNNL/internal/optimization/random"
)

func main() {
	fmt.Println("\nBegin TSP using quantum inspired annealing")

	const (
		cities            = 40
		maxIterations     = 20000
		startTemperature  = 100000.0
		alpha             = 0.9990
		tunnelProbability = 0.10
		seed              = 6
	)

	fmt.Printf("\nSetting num_cities = %d\n", cities)
	fmt.Printf("\nOptimal solution is 0, 1, 2, .. %d\n", cities-1)
	fmt.Printf("Optimal solution has total distance = %.1f\n", float64(cities-1))

	fmt.Println("\nQuantum inspired annealing settings:")
	fmt.Printf("max_iter = %d\n", maxIterations)
	fmt.Printf("start_temperature = %.1f\n", startTemperature)
	fmt.Printf("alpha = %.4f\n", alpha)
	fmt.Printf("pct_tunnel = %.2f\n", tunnelProbability)

	// The solver draws its initial tour as the first use of its seed, so the
	// same draw from a fresh source reproduces it for display.
	fmt.Println("\nInitial guess:")
	fmt.Println(random.Perm(cities, random.New(seed)))

	cfg := optimization.Config{
		Cities:            cities,
		MaxIterations:     maxIterations,
		StartTemperature:  startTemperature,
		Alpha:             alpha,
		TunnelProbability: tunnelProbability,
		RandomSeed:        seed,
		Observer: optimization.ObserverFunc(func(p optimization.Progress) {
			fmt.Printf("iteration = %6d | dist curr to candidate = %8.4f | curr_temp = %12.4f | error = %6.1f\n",
				p.Iteration, p.JumpDistance, p.Temperature, p.BestError)
		}),
	}

	solver, err := annealing.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create solver: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nStarting solve()")
	result, err := solver.Solve(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Solve failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Finished solve()")

	fmt.Println("\nBest solution found:")
	fmt.Println(result.BestSolution.Tour)

	model := cost.NewDefault()
	fmt.Printf("\nTotal distance = %.1f\n", model.TourCost(result.BestSolution.Tour))

	fmt.Println("\nEnd demo")
}
