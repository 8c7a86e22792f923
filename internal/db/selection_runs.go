package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/context-engine/internal/types"
)

// -----------------------------------------------------------------------------
// Selection Run Methods
// -----------------------------------------------------------------------------

// CreateSelectionRun creates a new selection run record and returns it
func (db *DB) CreateSelectionRun(ctx context.Context, catalogID uuid.UUID, req *types.SelectionRequest) (*SelectionRun, error) {
	var run SelectionRun
	err := db.pool.QueryRow(ctx,
		`INSERT INTO selection_runs (catalog_id, bounded_context, user_story_id, budget, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, catalog_id, bounded_context, user_story_id, budget,
		           used_budget, dropped_count, status, created_at, completed_at`,
		catalogID, req.TargetBoundedContext, req.UserStoryID, req.Budget, RunStatusRunning,
	).Scan(&run.ID, &run.CatalogID, &run.BoundedContext, &run.UserStoryID, &run.Budget,
		&run.UsedBudget, &run.DroppedCount, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create selection run: %w", err)
	}
	return &run, nil
}

// CompleteSelectionRun stores the result and bundle of a finished run
func (db *DB) CompleteSelectionRun(ctx context.Context, runID uuid.UUID, result *types.SelectionResult, bundle *types.Bundle) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal selection result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE selection_runs
		 SET status = $1, used_budget = $2, dropped_count = $3,
		     result = $4, bundle_text = $5, completed_at = NOW()
		 WHERE id = $6`,
		RunStatusCompleted, result.UsedBudget, result.DroppedCount,
		resultJSON, bundle.Text, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete selection run: %w", err)
	}
	return nil
}

// FailSelectionRun marks a run as failed with an error message
func (db *DB) FailSelectionRun(ctx context.Context, runID uuid.UUID, message string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE selection_runs SET status = $1, error = $2, completed_at = NOW() WHERE id = $3`,
		RunStatusFailed, message, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark selection run failed: %w", err)
	}
	return nil
}

// GetSelectionRun retrieves a run record by ID, nil if absent
func (db *DB) GetSelectionRun(ctx context.Context, runID uuid.UUID) (*SelectionRun, error) {
	var run SelectionRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, catalog_id, bounded_context, user_story_id, budget,
		        used_budget, dropped_count, status, created_at, completed_at
		 FROM selection_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.CatalogID, &run.BoundedContext, &run.UserStoryID, &run.Budget,
		&run.UsedBudget, &run.DroppedCount, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get selection run: %w", err)
	}
	return &run, nil
}

// GetSelectionResult retrieves the stored result JSON for a run, nil if absent
func (db *DB) GetSelectionResult(ctx context.Context, runID uuid.UUID) (*types.SelectionResult, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT result FROM selection_runs WHERE id = $1 AND result IS NOT NULL`,
		runID,
	).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get selection result: %w", err)
	}

	var result types.SelectionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse stored selection result: %w", err)
	}
	return &result, nil
}

// GetBundleText retrieves the assembled bundle text for a run, empty if absent
func (db *DB) GetBundleText(ctx context.Context, runID uuid.UUID) (string, error) {
	var text string
	err := db.pool.QueryRow(ctx,
		`SELECT bundle_text FROM selection_runs WHERE id = $1 AND bundle_text IS NOT NULL`,
		runID,
	).Scan(&text)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get bundle text: %w", err)
	}
	return text, nil
}

// ListSelectionRuns returns run records, newest first
func (db *DB) ListSelectionRuns(ctx context.Context, limit int) ([]SelectionRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, catalog_id, bounded_context, user_story_id, budget,
		        used_budget, dropped_count, status, created_at, completed_at
		 FROM selection_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list selection runs: %w", err)
	}
	defer rows.Close()

	var runs []SelectionRun
	for rows.Next() {
		var run SelectionRun
		if err := rows.Scan(&run.ID, &run.CatalogID, &run.BoundedContext, &run.UserStoryID,
			&run.Budget, &run.UsedBudget, &run.DroppedCount, &run.Status,
			&run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan selection run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read selection runs: %w", err)
	}
	return runs, nil
}
