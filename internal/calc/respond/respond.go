// Package respond writes calculator responses and records their outcome.
package respond

import (
	"encoding/json"
	"net/http"

	"Fatih/internal/calc/pipe"
	"Fatih/internal/metrics"

	"go.uber.org/zap"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && log != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

func CalcOK(w http.ResponseWriter, log *zap.Logger, tool string, v any) {
	metrics.Calculations.WithLabelValues(tool, "ok").Inc()
	JSON(w, log, http.StatusOK, v)
}

// CalcError answers 400 with the error text for input errors and 500 otherwise.
func CalcError(w http.ResponseWriter, log *zap.Logger, tool string, err error) {
	if pipe.IsInputError(err) {
		metrics.Calculations.WithLabelValues(tool, "rejected").Inc()
		if log != nil {
			log.Debug("calculation rejected", zap.String("tool", tool), zap.Error(err))
		}
		JSON(w, log, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	metrics.Calculations.WithLabelValues(tool, "failed").Inc()
	if log != nil {
		log.Error("calculation failed", zap.String("tool", tool), zap.Error(err))
	}
	http.Error(w, "Calculation error", http.StatusInternalServerError)
}
