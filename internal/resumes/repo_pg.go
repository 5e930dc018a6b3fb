package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Recommendations and analysis are
// stored as JSONB documents.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume record.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	recsJSON, err := json.Marshal(resume.JobRecommendations)
	if err != nil {
		return fmt.Errorf("marshal job recommendations: %w", err)
	}
	var analysisJSON []byte
	if resume.Analysis != nil {
		analysisJSON, err = json.Marshal(resume.Analysis)
		if err != nil {
			return fmt.Errorf("marshal analysis: %w", err)
		}
	}

	const query = `
INSERT INTO resumes (id, user_id, original_file_name, storage_key, job_recommendations, analysis, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.OriginalFileName,
		resume.StorageKey,
		recsJSON,
		analysisJSON,
		resume.CreatedAt,
	)
	return err
}

// GetByID fetches one resume scoped to its owner. Records owned by another
// user come back as ErrNotFound.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT id, user_id, original_file_name, storage_key, job_recommendations, analysis, created_at
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, resumeID, userID))
}

// GetLatestByUser fetches the user's most recent resume.
func (r *PGRepo) GetLatestByUser(ctx context.Context, userID string) (Resume, error) {
	const query = `
SELECT id, user_id, original_file_name, storage_key, job_recommendations, analysis, created_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// ListByUser returns the user's resumes newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	const query = `
SELECT id, user_id, original_file_name, storage_key, job_recommendations, analysis, created_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Delete removes one resume scoped to its owner. Records owned by another
// user come back as ErrNotFound.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `
DELETE FROM resumes
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Resume, error) {
	resume, err := scanResume(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func scanResume(scan func(dest ...any) error) (Resume, error) {
	var (
		resume       Resume
		recsJSON     []byte
		analysisJSON []byte
	)
	if err := scan(
		&resume.ID,
		&resume.UserID,
		&resume.OriginalFileName,
		&resume.StorageKey,
		&recsJSON,
		&analysisJSON,
		&resume.CreatedAt,
	); err != nil {
		return Resume{}, err
	}

	if len(recsJSON) > 0 {
		if err := json.Unmarshal(recsJSON, &resume.JobRecommendations); err != nil {
			return Resume{}, fmt.Errorf("unmarshal job recommendations: %w", err)
		}
	}
	if len(analysisJSON) > 0 {
		var a Analysis
		if err := json.Unmarshal(analysisJSON, &a); err != nil {
			return Resume{}, fmt.Errorf("unmarshal analysis: %w", err)
		}
		resume.Analysis = &a
	}
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
