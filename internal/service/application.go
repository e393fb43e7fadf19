package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"caterapi/internal/model"
	"caterapi/internal/repository"
	"caterapi/internal/storage"
)

// fileDownloadTTL bounds how long a presigned file URL stays valid.
const fileDownloadTTL = 15 * time.Minute

// CreateApplicationInput carries an applicant submission.
type CreateApplicationInput struct {
	SessionToken   string `json:"session_token"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Position       string `json:"position"`
	Address        string `json:"address"`
	Education      string `json:"education"`
	WorkExperience string `json:"work_experience"`
	Skills         string `json:"skills"`
}

// ApplicationListResult is the service-level DTO for paginated applications.
type ApplicationListResult struct {
	Items []model.JobApplication `json:"data"`
	Total int                    `json:"total"`
}

// ApplicationFileView is stored file metadata plus a time-limited download
// URL. The URL is best effort; metadata is still served when presigning fails.
type ApplicationFileView struct {
	model.ApplicationFile
	DownloadURL string `json:"download_url,omitempty"`
}

// ApplicationService defines the use cases for job applications.
type ApplicationService interface {
	// Create stores a pending application. When a session token is supplied,
	// the session's uploaded files are linked and the session is completed.
	Create(ctx context.Context, in CreateApplicationInput) (*model.JobApplication, error)

	// List returns non-deleted applications matching the filter.
	List(ctx context.Context, f repository.ApplicationFilter, page, limit int) (*ApplicationListResult, error)

	// Get returns a single non-deleted application by ID.
	Get(ctx context.Context, id string) (*model.JobApplication, error)

	// Files returns stored upload metadata for an application, each entry
	// carrying a presigned download URL.
	Files(ctx context.Context, id string) ([]ApplicationFileView, error)

	// UpdateStatus moves an application to a new review status.
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.JobApplication, error)

	// SoftDelete stamps deleted_at; the row stays recoverable until cleanup.
	SoftDelete(ctx context.Context, actor *model.User, id string) error

	// Restore clears deleted_at on a soft-deleted application.
	Restore(ctx context.Context, actor *model.User, id string) error

	// Stats returns application counts grouped by status since the given time.
	Stats(ctx context.Context, since time.Time) (map[model.ApplicationStatus]int, error)
}

type applicationService struct {
	apps     repository.ApplicationRepository
	files    repository.ApplicationFileRepository
	sessions repository.SessionRepository
	audit    repository.AuditRepository
	store    storage.Storage
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(
	apps repository.ApplicationRepository,
	files repository.ApplicationFileRepository,
	sessions repository.SessionRepository,
	audit repository.AuditRepository,
	store storage.Storage,
) ApplicationService {
	return &applicationService{apps: apps, files: files, sessions: sessions, audit: audit, store: store}
}

func (s *applicationService) Create(ctx context.Context, in CreateApplicationInput) (*model.JobApplication, error) {
	for field, val := range map[string]string{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"phone":      in.Phone,
		"position":   in.Position,
	} {
		if val == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}

	if in.SessionToken != "" {
		if _, err := s.sessions.FindByToken(ctx, in.SessionToken); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: unknown session token", ErrValidation)
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	app := &model.JobApplication{
		ID:             uuid.New().String(),
		SessionToken:   in.SessionToken,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		Position:       in.Position,
		Address:        in.Address,
		Education:      in.Education,
		WorkExperience: in.WorkExperience,
		Skills:         in.Skills,
		Status:         model.ApplicationStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	stored, err := s.apps.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	if in.SessionToken != "" {
		if _, err := s.files.LinkToApplication(ctx, in.SessionToken, stored.ID); err != nil {
			return nil, fmt.Errorf("link session files: %w", err)
		}
		if err := s.sessions.MarkCompleted(ctx, in.SessionToken); err != nil {
			return nil, fmt.Errorf("complete session: %w", err)
		}
	}
	return stored, nil
}

func (s *applicationService) List(ctx context.Context, f repository.ApplicationFilter, page, limit int) (*ApplicationListResult, error) {
	res, err := s.apps.List(ctx, f, repository.FromPage(page, limit))
	if err != nil {
		return nil, err
	}
	return &ApplicationListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *applicationService) Get(ctx context.Context, id string) (*model.JobApplication, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Files(ctx context.Context, id string) ([]ApplicationFileView, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	files, err := s.files.ListByApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	views := make([]ApplicationFileView, 0, len(files))
	for _, f := range files {
		view := ApplicationFileView{ApplicationFile: f}
		if url, err := s.store.PresignGet(ctx, f.StoragePath, fileDownloadTTL); err == nil {
			view.DownloadURL = url
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.JobApplication, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	app, err := s.apps.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (s *applicationService) SoftDelete(ctx context.Context, actor *model.User, id string) error {
	if err := s.apps.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	recordAudit(ctx, s.audit, actor, "application.delete", map[string]string{"application_id": id})
	return nil
}

func (s *applicationService) Restore(ctx context.Context, actor *model.User, id string) error {
	if err := s.apps.Restore(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	recordAudit(ctx, s.audit, actor, "application.restore", map[string]string{"application_id": id})
	return nil
}

func (s *applicationService) Stats(ctx context.Context, since time.Time) (map[model.ApplicationStatus]int, error) {
	return s.apps.CountByStatus(ctx, since)
}
