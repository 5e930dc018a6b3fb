package resumes

import "context"

// Repo defines persistence operations for resume records. Reads are scoped to
// the owning user; a record owned by someone else behaves as absent.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	GetLatestByUser(ctx context.Context, userID string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	Delete(ctx context.Context, userID, resumeID string) error
}
