package repository

import (
	"context"
	"time"

	"caterapi/internal/model"
)

// SessionRepository defines data access for application upload sessions.
type SessionRepository interface {
	// Create inserts a new session and returns the stored row.
	Create(ctx context.Context, s *model.ApplicationSession) (*model.ApplicationSession, error)

	// FindByToken returns a session by its token.
	FindByToken(ctx context.Context, token string) (*model.ApplicationSession, error)

	// CountByIPSince counts sessions created from the IP after the given time.
	CountByIPSince(ctx context.Context, ip string, since time.Time) (int, error)

	// IncrementUploadCount bumps upload_count by one.
	IncrementUploadCount(ctx context.Context, token string) error

	// MarkCompleted flags the session as completed.
	MarkCompleted(ctx context.Context, token string) error

	// CountExpiredIncomplete counts sessions that expired after the given time
	// without being completed.
	CountExpiredIncomplete(ctx context.Context, since time.Time) (int, error)
}
