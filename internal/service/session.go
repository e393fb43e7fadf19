package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"caterapi/internal/config"
	"caterapi/internal/model"
	"caterapi/internal/repository"
	"caterapi/internal/storage"
)

// IssueSessionInput carries applicant contact details for a new upload session.
type IssueSessionInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IP        string `json:"-"`
}

// UploadInput carries one multipart file destined for object storage.
type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	Category    model.FileCategory
	IP          string
	UserAgent   string
}

// SessionService defines the use cases for anonymous upload sessions.
type SessionService interface {
	// Issue creates a rate-limited upload session for the caller IP.
	Issue(ctx context.Context, in IssueSessionInput) (*model.ApplicationSession, error)

	// Upload streams one file to object storage under the session token and
	// records its metadata. Failures are logged to the upload error log.
	Upload(ctx context.Context, token string, in UploadInput) (*model.ApplicationFile, error)

	// Complete marks the session finished; no further uploads are accepted.
	Complete(ctx context.Context, token string) error
}

type sessionService struct {
	sessions repository.SessionRepository
	files    repository.ApplicationFileRepository
	uploads  repository.UploadErrorRepository
	store    storage.Storage
	cfg      config.SessionConfig
}

// NewSessionService constructs a new SessionService.
func NewSessionService(
	sessions repository.SessionRepository,
	files repository.ApplicationFileRepository,
	uploads repository.UploadErrorRepository,
	store storage.Storage,
	cfg config.SessionConfig,
) SessionService {
	return &sessionService{sessions: sessions, files: files, uploads: uploads, store: store, cfg: cfg}
}

func (s *sessionService) Issue(ctx context.Context, in IssueSessionInput) (*model.ApplicationSession, error) {
	if in.FirstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", ErrValidation)
	}
	if in.LastName == "" {
		return nil, fmt.Errorf("%w: last_name is required", ErrValidation)
	}
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	now := time.Now().UTC()

	// Count-then-insert: two concurrent requests can both pass the check and
	// briefly exceed the quota. Accepted; the limit is abuse protection, not
	// an exact quota.
	count, err := s.sessions.CountByIPSince(ctx, in.IP, now.Add(-s.cfg.RateLimitWindow))
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if count >= s.cfg.RateLimitCount {
		return nil, ErrRateLimited
	}

	session := &model.ApplicationSession{
		ID:         uuid.New().String(),
		Token:      uuid.New().String(),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		IP:         in.IP,
		MaxUploads: s.cfg.MaxUploads,
		ExpiresAt:  now.Add(s.cfg.TTL),
		CreatedAt:  now,
	}
	return s.sessions.Create(ctx, session)
}

func (s *sessionService) Upload(ctx context.Context, token string, in UploadInput) (*model.ApplicationFile, error) {
	if in.Reader == nil {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if session.Completed {
		s.logUploadError(ctx, token, in, model.UploadErrorValidation, "session already completed", false)
		return nil, ErrSessionCompleted
	}
	if session.Expired(now) {
		s.logUploadError(ctx, token, in, model.UploadErrorValidation, "session expired", false)
		return nil, ErrSessionExpired
	}
	if session.UploadCount >= session.MaxUploads {
		s.logUploadError(ctx, token, in, model.UploadErrorValidation, "upload limit reached", false)
		return nil, ErrUploadLimit
	}
	if !in.Category.Valid() {
		s.logUploadError(ctx, token, in, model.UploadErrorValidation, "unknown file category", false)
		return nil, fmt.Errorf("%w: unknown file category", ErrValidation)
	}

	ext := filepath.Ext(in.Filename)
	key := filepath.ToSlash(filepath.Join("applications", token, uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		s.logUploadError(ctx, token, in, model.UploadErrorStorage, err.Error(), true)
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	file := &model.ApplicationFile{
		ID:           uuid.New().String(),
		SessionToken: token,
		Category:     in.Category,
		StoragePath:  objInfo.Key,
		Filename:     in.Filename,
		Size:         objInfo.Size,
		ContentType:  objInfo.ContentType,
		CreatedAt:    now,
	}
	stored, err := s.files.Create(ctx, file)
	if err != nil {
		// Rollback the object so storage and metadata stay consistent.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logUploadError(ctx, token, in, model.UploadErrorDatabase,
				fmt.Sprintf("db save failed: %v; rollback delete failed: %v", err, delErr), true)
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		s.logUploadError(ctx, token, in, model.UploadErrorDatabase, err.Error(), true)
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if err := s.sessions.IncrementUploadCount(ctx, token); err != nil {
		return nil, fmt.Errorf("increment upload count: %w", err)
	}
	return stored, nil
}

func (s *sessionService) Complete(ctx context.Context, token string) error {
	if _, err := s.sessions.FindByToken(ctx, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.sessions.MarkCompleted(ctx, token)
}

// logUploadError records a failed upload attempt for admin triage. Best
// effort; the original failure is what the caller sees.
func (s *sessionService) logUploadError(ctx context.Context, token string, in UploadInput, errType model.UploadErrorType, msg string, retryable bool) {
	_, _ = s.uploads.Create(ctx, &model.UploadError{
		ID:           uuid.New().String(),
		SessionToken: token,
		FileName:     in.Filename,
		ErrorType:    errType,
		Message:      msg,
		Retryable:    retryable,
		IP:           in.IP,
		UserAgent:    in.UserAgent,
		CreatedAt:    time.Now().UTC(),
	})
}
