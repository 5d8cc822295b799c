package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, user_id, object_key, mime, status, error, created_at, updated_at`

func scanJob(row pgx.Row) (*AnalysisJob, error) {
	var j AnalysisJob
	if err := row.Scan(&j.ID, &j.UserID, &j.ObjectKey, &j.MIME, &j.Status, &j.Error, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateAnalysisJob records a queued analysis for an uploaded resume.
func (db *DB) CreateAnalysisJob(ctx context.Context, userID uuid.UUID, objectKey, mime string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO analysis_jobs (user_id, object_key, mime, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, objectKey, mime, JobQueued,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create analysis job: %w", err)
	}
	return id, nil
}

// UpdateAnalysisJobStatus moves a job to status. errMsg is stored for failed
// jobs and cleared otherwise.
func (db *DB) UpdateAnalysisJobStatus(ctx context.Context, id uuid.UUID, status JobStatus, errMsg string) error {
	if !status.Valid() {
		return fmt.Errorf("invalid job status %q", status)
	}
	if status != JobFailed {
		errMsg = ""
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE analysis_jobs SET status = $1, error = $2, updated_at = NOW() WHERE id = $3`,
		status, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update analysis job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("analysis job not found: %s", id)
	}
	return nil
}

// GetAnalysisJob returns the job with id, or nil when none exists.
func (db *DB) GetAnalysisJob(ctx context.Context, id uuid.UUID) (*AnalysisJob, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM analysis_jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis job: %w", err)
	}
	return j, nil
}

// ListAnalysisJobs returns a user's most recent jobs, newest first.
func (db *DB) ListAnalysisJobs(ctx context.Context, userID uuid.UUID, limit int) ([]AnalysisJob, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM analysis_jobs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis jobs: %w", err)
	}
	defer rows.Close()

	var jobs []AnalysisJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}
