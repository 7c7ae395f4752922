package ffs

import (
	"encoding/json"
	"net/http"

	"Fatih/internal/calc/pipe"
	"Fatih/internal/calc/respond"
	"Fatih/internal/metrics"

	"go.uber.org/zap"
)

type Handler struct {
	Log      *zap.Logger
	MaxYears int
}

// CheckHorizon rejects projections longer than max years. max <= 0 disables the check.
func CheckHorizon(in Input, max int) error {
	if max > 0 && in.Years > max {
		return &pipe.DomainError{Field: "projection_years", Value: float64(in.Years), Reason: "exceeds the allowed horizon"}
	}
	return nil
}

func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := CheckHorizon(input, h.MaxYears); err != nil {
		respond.CalcError(w, h.Log, "ffs", err)
		return
	}
	res, err := Project(input)
	if err != nil {
		respond.CalcError(w, h.Log, "ffs", err)
		return
	}
	metrics.ProjectionYears.Observe(float64(input.Years))
	respond.CalcOK(w, h.Log, "ffs", res)
}
