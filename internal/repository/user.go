package repository

import (
	"context"

	"caterapi/internal/model"
)

// UserRepository defines data access for local user profiles.
type UserRepository interface {
	// FindByAuthID returns the non-deleted profile joined to the external
	// identity subject.
	FindByAuthID(ctx context.Context, authID string) (*model.User, error)
}
