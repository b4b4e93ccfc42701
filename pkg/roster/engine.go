// Package roster is the top-level dispatch layer: a tagged variant
// (individual vs team) behind one Schedule(input) capability. Shared
// preprocessing (C1, C2) lives in pkg/roster/shared; the two mode branches
// are independent packages invoked from here.
package roster

import (
	"encoding/json"
	"time"

	"github.com/shiftforge/rosterengine/internal/metrics"
	"github.com/shiftforge/rosterengine/pkg/logger"
	"github.com/shiftforge/rosterengine/pkg/model"
	"github.com/shiftforge/rosterengine/pkg/roster/individual"
	"github.com/shiftforge/rosterengine/pkg/roster/shared"
	"github.com/shiftforge/rosterengine/pkg/roster/team"
	"github.com/shiftforge/rosterengine/pkg/rosterrors"
)

// Result is what a scheduling run produces: exactly one of Roster or Failure
// is populated.
type Result struct {
	Mode    model.Mode
	Roster  model.Roster               `json:"roster,omitempty"`
	Failure *rosterrors.FailureDocument `json:"failure,omitempty"`
}

// Engine owns the solver parameters and the diagnostic logger; it holds no
// per-run state — each invocation builds its own model/variables/indexes.
type Engine struct {
	solverParams individual.Params
	log          *logger.RosterLogger
}

// NewEngine builds an Engine with the given individual-mode solver parameters.
func NewEngine(solverParams individual.Params) *Engine {
	return &Engine{solverParams: solverParams, log: logger.NewRosterLogger()}
}

// Schedule parses the raw JSON input document, dispatches on schedulingMode,
// and returns the roster or the team-mode failure document. runID is an
// opaque caller-supplied correlation id threaded through the diagnostic log.
func (e *Engine) Schedule(runID string, rawJSON []byte) (*Result, error) {
	var doc shared.RawDocument
	if err := json.Unmarshal(rawJSON, &doc); err != nil {
		return nil, rosterrors.InvalidInput("malformed JSON body: " + err.Error())
	}
	return e.ScheduleDocument(runID, &doc)
}

// ScheduleDocument runs the engine against an already-decoded input document.
func (e *Engine) ScheduleDocument(runID string, doc *shared.RawDocument) (*Result, error) {
	start := time.Now()

	idx, err := shared.BuildFromDocument(doc)
	if err != nil {
		e.log.RunFailed(runID, err)
		return nil, err
	}
	e.log.StartRun(runID, string(idx.Mode), len(idx.Employees), len(idx.Requests))

	switch idx.Mode {
	case model.ModeTeam:
		return e.scheduleTeam(runID, idx, start)
	default:
		return e.scheduleIndividual(runID, idx, start)
	}
}

func (e *Engine) scheduleIndividual(runID string, idx *shared.Index, start time.Time) (*Result, error) {
	r, diag, err := individual.Solve(idx, e.solverParams)
	if err != nil {
		e.log.RunFailed(runID, err)
		metrics.RecordRosterRun(string(model.ModeIndividual), false, time.Since(start))
		return nil, rosterrors.New(rosterrors.CodeInternal, "individual-mode solve failed").WithCause(err)
	}

	e.log.Preprocessed(runID, len(idx.AllDates), len(idx.Slots), diag.EligiblePairCount)
	e.log.SolverFinished(runID, diag.Status, diag.ObjectiveValue, diag.WallTime)
	e.log.ConstraintSlack(runID, int(diag.TotalUnderstaff), int(diag.TotalDeviations))
	e.log.RunComplete(runID, time.Since(start))

	metrics.RecordSolverStatus(diag.Status)
	metrics.SetConstraintSlack(float64(diag.TotalUnderstaff), float64(diag.TotalDeviations))
	metrics.RecordRosterRun(string(model.ModeIndividual), true, time.Since(start))

	return &Result{Mode: model.ModeIndividual, Roster: r}, nil
}

func (e *Engine) scheduleTeam(runID string, idx *shared.Index, start time.Time) (*Result, error) {
	r, err := team.Allocate(idx)
	if err != nil {
		if doc, ok := team.AsFailureDocument(err); ok {
			e.log.RunFailed(runID, err)
			metrics.RecordRosterRun(string(model.ModeTeam), false, time.Since(start))
			return &Result{Mode: model.ModeTeam, Failure: doc}, nil
		}
		e.log.RunFailed(runID, err)
		metrics.RecordRosterRun(string(model.ModeTeam), false, time.Since(start))
		return nil, rosterrors.New(rosterrors.CodeInternal, "team-mode allocation failed").WithCause(err)
	}

	e.log.Preprocessed(runID, len(idx.AllDates), len(idx.Slots), 0)
	e.log.RunComplete(runID, time.Since(start))
	metrics.RecordRosterRun(string(model.ModeTeam), true, time.Since(start))
	return &Result{Mode: model.ModeTeam, Roster: r}, nil
}
