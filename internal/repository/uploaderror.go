package repository

import (
	"context"
	"time"

	"caterapi/internal/model"
)

// UploadErrorFilter narrows upload error listing queries.
// Retryable/Resolved are tri-state: nil means "no filter".
type UploadErrorFilter struct {
	ErrorType model.UploadErrorType
	Retryable *bool
	Resolved  *bool
	Search    string // matched against file_name and message
}

// UploadErrorStats summarizes the error log for the admin dashboard.
type UploadErrorStats struct {
	Total      int                           `json:"total"`
	Unresolved int                           `json:"unresolved"`
	ByType     map[model.UploadErrorType]int `json:"by_type"`
}

// UploadErrorRepository defines data access for the upload error log.
type UploadErrorRepository interface {
	// Create inserts an error record and returns the stored row.
	Create(ctx context.Context, e *model.UploadError) (*model.UploadError, error)

	// List returns a paginated list of error records matching the filter.
	List(ctx context.Context, f UploadErrorFilter, pq PageQuery) (*PageResult[model.UploadError], error)

	// Stats returns grouped counts over the whole log.
	Stats(ctx context.Context) (*UploadErrorStats, error)

	// SetResolved updates the resolved flag on a single record.
	SetResolved(ctx context.Context, id string, resolved bool) error

	// ResolveAll marks every unresolved record resolved, returning the count.
	ResolveAll(ctx context.Context) (int, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error

	// DeleteResolved removes all resolved records, returning the count.
	DeleteResolved(ctx context.Context) (int, error)

	// CountUnresolved counts unresolved records.
	CountUnresolved(ctx context.Context) (int, error)

	// CleanupStats reports resolved rows created before the cutoff.
	CleanupStats(ctx context.Context, cutoff time.Time) (*CleanupStats, error)

	// DeleteResolvedBefore permanently removes up to limit resolved rows
	// created before the cutoff, returning the number removed.
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time, limit int) (int, error)
}
