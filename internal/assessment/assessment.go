// Package assessment stores calculation runs per user. Results are always
// recomputed on the server before they are persisted.
package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"Fatih/internal/auth"
	"Fatih/internal/calc/analysis"
	"Fatih/internal/calc/burst"
	"Fatih/internal/calc/fatigue"
	"Fatih/internal/calc/ffs"
	"Fatih/internal/calc/respond"
	"Fatih/internal/repo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var ErrUnknownTool = errors.New("unknown tool")

type SaveRequest struct {
	Tool  string          `json:"tool"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

type Handler struct {
	Repo     repo.Repository
	Log      *zap.Logger
	MaxYears int
}

// Run decodes raw as the tool's input and returns its result.
func Run(tool string, raw json.RawMessage, maxYears int) (any, error) {
	switch tool {
	case "burst":
		var in burst.Input
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return burst.Calculate(in)
	case "fatigue":
		var in fatigue.Input
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return fatigue.Calculate(in)
	case "analysis":
		var in analysis.Input
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return analysis.Run(in)
	case "ffs":
		var in ffs.Input
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		if err := ffs.CheckHorizon(in, maxYears); err != nil {
			return nil, err
		}
		return ffs.Project(in)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownTool, tool)
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Input) == 0 {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Tool = strings.ToLower(strings.TrimSpace(req.Tool))

	res, err := Run(req.Tool, req.Input, h.MaxYears)
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownTool), errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	default:
		respond.CalcError(w, h.Log, req.Tool, err)
		return
	}

	out, err := json.Marshal(res)
	if err != nil {
		h.Log.Error("result encoding failed", zap.String("tool", req.Tool), zap.Error(err))
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	a := &repo.Assessment{
		UserID: userID,
		Tool:   req.Tool,
		Name:   strings.TrimSpace(req.Name),
		Input:  req.Input,
		Result: out,
	}
	if err := h.Repo.SaveAssessment(r.Context(), a); err != nil {
		h.Log.Error("save assessment failed", zap.Int("user_id", userID), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	h.Log.Info("assessment saved", zap.Int("user_id", userID), zap.String("id", a.ID.String()), zap.String("tool", a.Tool))
	respond.JSON(w, h.Log, http.StatusCreated, a)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Repo.ListAssessments(r.Context(), userID)
	if err != nil {
		h.Log.Error("list assessments failed", zap.Int("user_id", userID), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []repo.Assessment{}
	}
	respond.JSON(w, h.Log, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.GetAssessment(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("get assessment failed", zap.String("id", id.String()), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	respond.JSON(w, h.Log, http.StatusOK, a)
}
