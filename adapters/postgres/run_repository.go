// Package postgres persists analysis runs.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"statkit/domain/stats"
)

// RunRepository stores and retrieves analysis runs
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// EnsureSchema creates the analysis_runs table if it does not exist
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	schema := `CREATE TABLE IF NOT EXISTS analysis_runs (
		id TEXT PRIMARY KEY,
		dataset_name TEXT NOT NULL,
		test TEXT NOT NULL,
		label TEXT NOT NULL,
		statistic DOUBLE PRECISION NOT NULL,
		p_value DOUBLE PRECISION NOT NULL,
		alpha DOUBLE PRECISION NOT NULL,
		reject_null BOOLEAN NOT NULL,
		columns JSONB,
		created_at TIMESTAMPTZ NOT NULL
	)`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create analysis_runs table: %w", err)
	}
	return nil
}

// Create inserts a new analysis run
func (r *RunRepository) Create(ctx context.Context, run *stats.AnalysisRun) error {
	columnsJSON, err := json.Marshal(run.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal column results: %w", err)
	}

	query := `INSERT INTO analysis_runs (
		id, dataset_name, test, label, statistic, p_value, alpha, reject_null, columns, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.ExecContext(ctx, query,
		run.ID, run.DatasetName, run.Test, run.Label,
		run.Statistic, run.PValue, run.Alpha, run.RejectNull,
		columnsJSON, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis run: %w", err)
	}
	return nil
}

// GetByID retrieves one analysis run
func (r *RunRepository) GetByID(ctx context.Context, id string) (*stats.AnalysisRun, error) {
	query := `SELECT id, dataset_name, test, label, statistic, p_value, alpha, reject_null, columns, created_at
		FROM analysis_runs WHERE id = $1`

	var run stats.AnalysisRun
	var columnsJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.DatasetName, &run.Test, &run.Label,
		&run.Statistic, &run.PValue, &run.Alpha, &run.RejectNull,
		&columnsJSON, &run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	if len(columnsJSON) > 0 {
		if err := json.Unmarshal(columnsJSON, &run.Columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal column results: %w", err)
		}
	}
	return &run, nil
}

// List returns the most recent runs, newest first
func (r *RunRepository) List(ctx context.Context, limit int) ([]*stats.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, dataset_name, test, label, statistic, p_value, alpha, reject_null, created_at
		FROM analysis_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*stats.AnalysisRun, 0, limit)
	for rows.Next() {
		var run stats.AnalysisRun
		if err := rows.Scan(
			&run.ID, &run.DatasetName, &run.Test, &run.Label,
			&run.Statistic, &run.PValue, &run.Alpha, &run.RejectNull, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
