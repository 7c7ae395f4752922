package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"Fatih/internal/calc/analysis"
	"Fatih/internal/calc/ffs"
	"Fatih/internal/calc/respond"
	"Fatih/internal/metrics"

	"go.uber.org/zap"
)

type Input struct {
	Meta
	analysis.Input
}

type Handler struct {
	Log      *zap.Logger
	MaxYears int
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := analysis.Run(input.Input)
	if err != nil {
		respond.CalcError(w, h.Log, "report", err)
		return
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, input.Meta, input.Input, res, time.Now()); err != nil {
		h.Log.Error("pdf generation failed", zap.Error(err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	metrics.Calculations.WithLabelValues("report", "ok").Inc()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"assessment.pdf\"")
	if _, err := buf.WriteTo(w); err != nil {
		h.Log.Warn("report write interrupted", zap.Error(err))
	}
}

func (h *Handler) ExportProjection(w http.ResponseWriter, r *http.Request) {
	var input ffs.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := ffs.CheckHorizon(input, h.MaxYears); err != nil {
		respond.CalcError(w, h.Log, "ffs_export", err)
		return
	}
	proj, err := ffs.Project(input)
	if err != nil {
		respond.CalcError(w, h.Log, "ffs_export", err)
		return
	}
	f, err := ProjectionWorkbook(input, proj)
	if err != nil {
		h.Log.Error("workbook generation failed", zap.Error(err))
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.Log.Error("workbook write failed", zap.Error(err))
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	metrics.Calculations.WithLabelValues("ffs_export", "ok").Inc()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"projection-%d.xlsx\"", input.StartYear))
	if _, err := buf.WriteTo(w); err != nil {
		h.Log.Warn("export write interrupted", zap.Error(err))
	}
}
