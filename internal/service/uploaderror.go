package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

// UploadErrorListResult is the service-level DTO for paginated upload errors.
type UploadErrorListResult struct {
	Items []model.UploadError `json:"data"`
	Total int                 `json:"total"`
}

// UploadErrorService defines the admin triage use cases for the upload error log.
type UploadErrorService interface {
	// List returns error records matching the filter.
	List(ctx context.Context, f repository.UploadErrorFilter, page, limit int) (*UploadErrorListResult, error)

	// Stats returns grouped counts over the whole log.
	Stats(ctx context.Context) (*repository.UploadErrorStats, error)

	// SetResolved flips the resolved flag on one record.
	SetResolved(ctx context.Context, id string, resolved bool) error

	// ResolveAll marks every unresolved record resolved.
	ResolveAll(ctx context.Context, actor *model.User) (int, error)

	// Delete removes one record.
	Delete(ctx context.Context, actor *model.User, id string) error

	// DeleteResolved removes all resolved records.
	DeleteResolved(ctx context.Context, actor *model.User) (int, error)
}

type uploadErrorService struct {
	uploads repository.UploadErrorRepository
	audit   repository.AuditRepository
}

// NewUploadErrorService constructs a new UploadErrorService.
func NewUploadErrorService(uploads repository.UploadErrorRepository, audit repository.AuditRepository) UploadErrorService {
	return &uploadErrorService{uploads: uploads, audit: audit}
}

func (s *uploadErrorService) List(ctx context.Context, f repository.UploadErrorFilter, page, limit int) (*UploadErrorListResult, error) {
	res, err := s.uploads.List(ctx, f, repository.FromPage(page, limit))
	if err != nil {
		return nil, err
	}
	return &UploadErrorListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *uploadErrorService) Stats(ctx context.Context) (*repository.UploadErrorStats, error) {
	return s.uploads.Stats(ctx)
}

func (s *uploadErrorService) SetResolved(ctx context.Context, id string, resolved bool) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if err := s.uploads.SetResolved(ctx, id, resolved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *uploadErrorService) ResolveAll(ctx context.Context, actor *model.User) (int, error) {
	n, err := s.uploads.ResolveAll(ctx)
	if err != nil {
		return 0, err
	}
	recordAudit(ctx, s.audit, actor, "upload_errors.resolve_all", map[string]int{"resolved": n})
	return n, nil
}

func (s *uploadErrorService) Delete(ctx context.Context, actor *model.User, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if err := s.uploads.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	recordAudit(ctx, s.audit, actor, "upload_errors.delete", map[string]string{"upload_error_id": id})
	return nil
}

func (s *uploadErrorService) DeleteResolved(ctx context.Context, actor *model.User) (int, error) {
	n, err := s.uploads.DeleteResolved(ctx)
	if err != nil {
		return 0, err
	}
	recordAudit(ctx, s.audit, actor, "upload_errors.delete_resolved", map[string]int{"deleted": n})
	return n, nil
}
