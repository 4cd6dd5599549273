package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zain/bacteria-identifier/internal/types"
)

// ErrRunNotFound is returned when no run exists for the requested ID.
var ErrRunNotFound = errors.New("run not found")

// SaveRun stores an identification run and its report, returning the run ID.
func (db *DB) SaveRun(ctx context.Context, observations types.ObservationSet, report *types.Report) (uuid.UUID, error) {
	observationsJSON, err := json.Marshal(observations)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal observations: %w", err)
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	topGenus := ""
	if len(report.Results) > 0 {
		topGenus = report.Results[0].Genus
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO identification_runs (observations, report, result_count, top_genus)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		observationsJSON, reportJSON, len(report.Results), topGenus,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// GetRun fetches one stored run with its full report.
func (db *DB) GetRun(ctx context.Context, id uuid.UUID) (*types.Run, *types.Report, error) {
	var (
		run              types.Run
		observationsJSON []byte
		reportJSON       []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, observations, report, result_count, COALESCE(top_genus, ''), created_at
		 FROM identification_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &observationsJSON, &reportJSON, &run.ResultCount, &run.TopGenus, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrRunNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	if err := json.Unmarshal(observationsJSON, &run.Observations); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal observations for run %s: %w", id, err)
	}
	var report types.Report
	if err := json.Unmarshal(reportJSON, &report); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal report for run %s: %w", id, err)
	}

	return &run, &report, nil
}

// ListRuns returns the most recent runs, newest first, without report bodies.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, observations, result_count, COALESCE(top_genus, ''), created_at
		 FROM identification_runs
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var (
			run              types.Run
			observationsJSON []byte
		)
		if err := rows.Scan(&run.ID, &observationsJSON, &run.ResultCount, &run.TopGenus, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if err := json.Unmarshal(observationsJSON, &run.Observations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal observations for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}
