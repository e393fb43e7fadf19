package repository

import (
	"context"
	"time"

	"caterapi/internal/model"
)

// ApplicationFilter narrows job application listing queries.
type ApplicationFilter struct {
	Status   model.ApplicationStatus
	Position string
	Search   string // matched against name and email
	Since    time.Time
}

// CleanupStats summarizes soft-deleted rows eligible for permanent removal.
type CleanupStats struct {
	Eligible int
	Oldest   *time.Time
	Newest   *time.Time
}

// ApplicationRepository defines data access for job applications.
type ApplicationRepository interface {
	// Create inserts a new application and returns the stored row.
	Create(ctx context.Context, a *model.JobApplication) (*model.JobApplication, error)

	// FindByID returns a non-deleted application by ID.
	FindByID(ctx context.Context, id string) (*model.JobApplication, error)

	// List returns a paginated list of non-deleted applications matching the filter.
	List(ctx context.Context, f ApplicationFilter, pq PageQuery) (*PageResult[model.JobApplication], error)

	// UpdateStatus sets the review status and returns the updated row.
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.JobApplication, error)

	// SoftDelete stamps deleted_at on a non-deleted application.
	// Missing or already-deleted rows surface as sql.ErrNoRows.
	SoftDelete(ctx context.Context, id string, at time.Time) error

	// Restore clears deleted_at on a soft-deleted application.
	Restore(ctx context.Context, id string) error

	// CountByStatus returns application counts grouped by status since the given time.
	CountByStatus(ctx context.Context, since time.Time) (map[model.ApplicationStatus]int, error)

	// CountSoftDeleted returns the number of soft-deleted rows, total and
	// those deleted before the cutoff (overdue for cleanup).
	CountSoftDeleted(ctx context.Context, cutoff time.Time) (total, overdue int, err error)

	// CountSoftDeletedSince returns soft-deletions stamped within the window.
	CountSoftDeletedSince(ctx context.Context, since time.Time) (int, error)

	// CleanupStats reports rows soft-deleted before the cutoff.
	CleanupStats(ctx context.Context, cutoff time.Time) (*CleanupStats, error)

	// DeleteSoftDeletedBefore permanently removes up to limit rows soft-deleted
	// before the cutoff, returning the number removed.
	DeleteSoftDeletedBefore(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

// ApplicationFileRepository defines data access for uploaded file metadata.
type ApplicationFileRepository interface {
	// Create inserts a file metadata row and returns the stored record.
	Create(ctx context.Context, f *model.ApplicationFile) (*model.ApplicationFile, error)

	// LinkToApplication attaches all files uploaded under the session token
	// to the given application, returning the number linked.
	LinkToApplication(ctx context.Context, sessionToken, applicationID string) (int, error)

	// ListByApplication returns file metadata for an application.
	ListByApplication(ctx context.Context, applicationID string) ([]model.ApplicationFile, error)
}
