package analysis

import (
	"encoding/json"
	"net/http"

	"Fatih/internal/calc/respond"

	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Run(input)
	if err != nil {
		respond.CalcError(w, h.Log, "analysis", err)
		return
	}
	respond.CalcOK(w, h.Log, "analysis", res)
}
