package importer

import (
	"net/http"

	"Fatih/internal/calc/premium/batch"
	"Fatih/internal/calc/respond"

	"go.uber.org/zap"
)

type Handler struct {
	Log            *zap.Logger
	Workers        int
	MaxItems       int
	MaxUploadBytes int64
}

type ImportResult struct {
	Count   int          `json:"count"`
	Results []batch.Item `json:"results"`
	Failed  int          `json:"failed"`
	Skipped []RowError   `json:"skipped,omitempty"`
}

func (h *Handler) Configurations(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	cfgs, skipped, err := ReadWorkbook(file)
	if err != nil {
		h.Log.Debug("workbook rejected", zap.Error(err))
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	if len(cfgs) == 0 {
		respond.JSON(w, h.Log, http.StatusBadRequest, ImportResult{Skipped: skipped})
		return
	}
	if h.MaxItems > 0 && len(cfgs) > h.MaxItems {
		http.Error(w, "Too many configurations", http.StatusBadRequest)
		return
	}

	res, err := batch.Compare(r.Context(), batch.CompareInput{Items: cfgs}, h.Workers)
	if err != nil {
		respond.CalcError(w, h.Log, "import", err)
		return
	}
	respond.CalcOK(w, h.Log, "import", ImportResult{
		Count:   len(res.Results),
		Results: res.Results,
		Failed:  res.Failed,
		Skipped: skipped,
	})
}
