package analysis

import (
	"fmt"

	"Fatih/internal/calc/burst"
	"Fatih/internal/calc/fatigue"
	"Fatih/internal/calc/pipe"
)

// Input is the flat parameter set of one analysis run.
type Input struct {
	pipe.Geometry
	pipe.Defect
	pipe.Material
	pipe.Pressure
}

type Result struct {
	Burst   burst.Result   `json:"burst"`
	Stress  fatigue.State  `json:"stress"`
	Fatigue fatigue.Result `json:"fatigue"`
}

// Run computes burst pressures, then the cyclic stress state, then the
// fatigue criteria. The first failing stage aborts the run.
func Run(in Input) (Result, error) {
	b, err := burst.Compute(in.Geometry, in.Defect, in.Material)
	if err != nil {
		return Result{}, fmt.Errorf("burst pressure: %w", err)
	}
	st, err := fatigue.ComputeCyclicStress(in.Geometry, in.Pressure, in.Material)
	if err != nil {
		return Result{}, fmt.Errorf("cyclic stress: %w", err)
	}
	f, err := fatigue.Evaluate(st, in.Material)
	if err != nil {
		return Result{}, fmt.Errorf("fatigue criteria: %w", err)
	}
	return Result{Burst: b, Stress: st, Fatigue: f}, nil
}
