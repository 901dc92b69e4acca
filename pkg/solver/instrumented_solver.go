package solver

import (
	"context"
	"time"
)

// Interface is the part of the engine callers drive. Wrappers such as
// InstrumentedSolver implement it around a *Solver.
type Interface interface {
	Solve(ctx context.Context, jobs SolveJobs) (*Transaction, error)
}

type InstrumentedSolver struct {
	solver                Interface
	successMetricsEmitter func(time.Duration)
	failureMetricsEmitter func(time.Duration)
}

var _ Interface = &InstrumentedSolver{}

func NewInstrumentedSolver(solver Interface, successMetricsEmitter, failureMetricsEmitter func(time.Duration)) *InstrumentedSolver {
	return &InstrumentedSolver{
		solver:                solver,
		successMetricsEmitter: successMetricsEmitter,
		failureMetricsEmitter: failureMetricsEmitter,
	}
}

func (is *InstrumentedSolver) Solve(ctx context.Context, jobs SolveJobs) (*Transaction, error) {
	start := time.Now()
	tx, err := is.solver.Solve(ctx, jobs)
	if err != nil {
		is.failureMetricsEmitter(time.Now().Sub(start))
	} else {
		is.successMetricsEmitter(time.Now().Sub(start))
	}
	return tx, err
}
