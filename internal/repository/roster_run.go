// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shiftforge/rosterengine/pkg/model"
)

// RosterRun is the audit record for one scheduling invocation: the input
// document, the mode it ran under, and whichever of roster/failure it produced.
type RosterRun struct {
	model.BaseModel
	Mode        string `json:"mode"`
	InputJSON   []byte `json:"-"`
	RosterJSON  []byte `json:"-"`
	FailureJSON []byte `json:"-"`
	Status      string `json:"status"` // succeeded/failed
}

// RosterRunRepository persists roster runs for later retrieval by id.
type RosterRunRepository struct {
	db DB
}

// NewRosterRunRepository creates a roster run repository.
func NewRosterRunRepository(db DB) *RosterRunRepository {
	return &RosterRunRepository{db: db}
}

// Create inserts a new roster run record, assigning an id if absent.
func (r *RosterRunRepository) Create(ctx context.Context, run *RosterRun) error {
	if run.ID == uuid.Nil {
		run.BaseModel = model.NewBaseModel()
	} else {
		now := time.Now()
		run.CreatedAt = now
		run.UpdatedAt = now
	}

	query := `
		INSERT INTO roster_runs (id, mode, input_json, roster_json, failure_json, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.Mode, run.InputJSON, nullableJSON(run.RosterJSON), nullableJSON(run.FailureJSON), run.Status, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert roster run: %w", err)
	}
	return nil
}

// GetByID fetches a roster run by id, returning nil if none exists.
func (r *RosterRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*RosterRun, error) {
	query := `
		SELECT id, mode, input_json, roster_json, failure_json, status, created_at, updated_at
		FROM roster_runs
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	run := &RosterRun{}
	var rosterJSON, failureJSON sql.NullString
	err := row.Scan(&run.ID, &run.Mode, &run.InputJSON, &rosterJSON, &failureJSON, &run.Status, &run.CreatedAt, &run.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan roster run: %w", err)
	}
	if rosterJSON.Valid {
		run.RosterJSON = []byte(rosterJSON.String)
	}
	if failureJSON.Valid {
		run.FailureJSON = []byte(failureJSON.String)
	}
	return run, nil
}

// List returns the most recent roster runs, newest first, bounded by limit.
func (r *RosterRunRepository) List(ctx context.Context, limit int) ([]*RosterRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, mode, status, created_at, updated_at
		FROM roster_runs
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list roster runs: %w", err)
	}
	defer rows.Close()

	var runs []*RosterRun
	for rows.Next() {
		run := &RosterRun{}
		if err := rows.Scan(&run.ID, &run.Mode, &run.Status, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan roster run row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
