package batch

import (
	"encoding/json"
	"net/http"

	"Fatih/internal/calc/pipe"
	"Fatih/internal/calc/respond"

	"go.uber.org/zap"
)

type Handler struct {
	Log      *zap.Logger
	Workers  int
	MaxItems int
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var input CompareInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.Items) == 0 || (h.MaxItems > 0 && len(input.Items) > h.MaxItems) {
		respond.CalcError(w, h.Log, "compare",
			&pipe.DomainError{Field: "items", Value: float64(len(input.Items)), Reason: "item count out of range"})
		return
	}
	res, err := Compare(r.Context(), input, h.Workers)
	if err != nil {
		respond.CalcError(w, h.Log, "compare", err)
		return
	}
	respond.CalcOK(w, h.Log, "compare", res)
}
