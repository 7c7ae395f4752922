package fatigue

import (
	"encoding/json"
	"net/http"

	"Fatih/internal/calc/pipe"
	"Fatih/internal/calc/respond"

	"go.uber.org/zap"
)

type Input struct {
	pipe.Geometry
	pipe.Pressure
	pipe.Material
	// diagram only; zero means DefaultDiagramPoints
	Points int `json:"points,omitempty"`
}

type Output struct {
	Stress  State  `json:"stress"`
	Fatigue Result `json:"fatigue"`
}

func Calculate(in Input) (Output, error) {
	st, err := ComputeCyclicStress(in.Geometry, in.Pressure, in.Material)
	if err != nil {
		return Output{}, err
	}
	res, err := Evaluate(st, in.Material)
	if err != nil {
		return Output{}, err
	}
	return Output{Stress: st, Fatigue: res}, nil
}

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		respond.CalcError(w, h.Log, "fatigue", err)
		return
	}
	respond.CalcOK(w, h.Log, "fatigue", res)
}

func (h *Handler) Diagram(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Points == 0 {
		input.Points = DefaultDiagramPoints
	}
	if input.Points < 2 || input.Points > 1000 {
		respond.CalcError(w, h.Log, "fatigue_diagram",
			&pipe.DomainError{Field: "points", Value: float64(input.Points), Reason: "must be between 2 and 1000"})
		return
	}
	st, err := ComputeCyclicStress(input.Geometry, input.Pressure, input.Material)
	if err != nil {
		respond.CalcError(w, h.Log, "fatigue_diagram", err)
		return
	}
	d, err := BuildDiagram(st, input.Material, input.Points)
	if err != nil {
		respond.CalcError(w, h.Log, "fatigue_diagram", err)
		return
	}
	respond.CalcOK(w, h.Log, "fatigue_diagram", d)
}
