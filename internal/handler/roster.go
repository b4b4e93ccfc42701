// Package handler 提供 HTTP 处理器
package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shiftforge/rosterengine/internal/repository"
	"github.com/shiftforge/rosterengine/pkg/model"
	"github.com/shiftforge/rosterengine/pkg/roster"
	"github.com/shiftforge/rosterengine/pkg/rosterrors"
)

// RosterHandler exposes the scheduling engine over HTTP.
type RosterHandler struct {
	engine *roster.Engine
	runs   *repository.RosterRunRepository // nil when no database is configured
}

// NewRosterHandler creates a roster handler. runs may be nil, in which case
// Generate still works but GetRun always reports not found.
func NewRosterHandler(engine *roster.Engine, runs *repository.RosterRunRepository) *RosterHandler {
	return &RosterHandler{engine: engine, runs: runs}
}

// Generate handles POST /api/v1/roster/generate: it runs the engine against
// the request body and returns the roster, or, for team mode understaffing,
// a failure document with 422. Malformed input yields 400.
func (h *RosterHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, rosterrors.New(rosterrors.CodeInvalidInput, "method not allowed"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, rosterrors.InvalidInput("failed to read request body"))
		return
	}

	runID := uuid.New().String()
	start := time.Now()

	result, err := h.engine.Schedule(runID, body)
	if err != nil {
		h.persistRun(r, runID, "", body, nil, nil, "failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if result.Failure != nil {
		failureJSON, _ := json.Marshal(result.Failure)
		h.persistRun(r, runID, string(result.Mode), body, nil, failureJSON, "failed")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(result.Failure)
		return
	}

	rosterJSON, _ := json.Marshal(result.Roster)
	h.persistRun(r, runID, string(result.Mode), body, rosterJSON, nil, "succeeded")
	_ = time.Since(start)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result.Roster)
}

// GetRun handles GET /api/v1/roster/runs/{id}: it returns the persisted
// roster or failure document for a prior run.
func (h *RosterHandler) GetRun(w http.ResponseWriter, r *http.Request, idStr string) {
	if h.runs == nil {
		writeError(w, rosterrors.New(rosterrors.CodeNotFound, "no persistence configured"))
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, rosterrors.InvalidInput("invalid run id"))
		return
	}

	run, err := h.runs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, rosterrors.New(rosterrors.CodeInternal, "failed to load run").WithCause(err))
		return
	}
	if run == nil {
		writeError(w, rosterrors.New(rosterrors.CodeNotFound, "run not found"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(run.FailureJSON) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write(run.FailureJSON)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(run.RosterJSON)
}

func (h *RosterHandler) persistRun(r *http.Request, runID, mode string, input, rosterJSON, failureJSON []byte, status string) {
	if h.runs == nil {
		return
	}
	id, err := uuid.Parse(runID)
	if err != nil {
		return
	}
	run := &repository.RosterRun{
		BaseModel:   model.BaseModel{ID: id},
		Mode:        mode,
		InputJSON:   input,
		RosterJSON:  rosterJSON,
		FailureJSON: failureJSON,
		Status:      status,
	}
	_ = h.runs.Create(r.Context(), run)
}

func writeError(w http.ResponseWriter, err error) {
	status := rosterrors.GetHTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
