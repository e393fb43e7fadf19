package service

import (
	"context"
	"fmt"
	"time"

	"caterapi/internal/config"
	"caterapi/internal/model"
	"caterapi/internal/repository"
)

// CleanupTarget selects which soft-deleted data a cleanup run touches.
type CleanupTarget string

const (
	CleanupApplications CleanupTarget = "applications"
	CleanupUploadErrors CleanupTarget = "upload_errors"
	CleanupAll          CleanupTarget = "all"
)

// Valid reports whether t is a known cleanup target.
func (t CleanupTarget) Valid() bool {
	return t == CleanupApplications || t == CleanupUploadErrors || t == CleanupAll
}

// CleanupRequest is the body of a cleanup run. DryRun defaults to true when
// omitted; destructive runs additionally require Force.
type CleanupRequest struct {
	RetentionDays int           `json:"retention_days"`
	BatchSize     int           `json:"batch_size"`
	Target        CleanupTarget `json:"type"`
	DryRun        *bool         `json:"dry_run"`
	Force         bool          `json:"force"`
}

// CleanupTypeResult reports eligibility and deletions for one data type.
type CleanupTypeResult struct {
	Eligible int        `json:"eligible"`
	Deleted  int        `json:"deleted"`
	Oldest   *time.Time `json:"oldest,omitempty"`
	Newest   *time.Time `json:"newest,omitempty"`
}

// CleanupReport is the outcome of a cleanup preview or run.
type CleanupReport struct {
	DryRun        bool               `json:"dry_run"`
	RetentionDays int                `json:"retention_days"`
	BatchSize     int                `json:"batch_size"`
	Cutoff        time.Time          `json:"cutoff"`
	Applications  *CleanupTypeResult `json:"applications,omitempty"`
	UploadErrors  *CleanupTypeResult `json:"upload_errors,omitempty"`
}

// CleanupService defines the soft-delete retention use cases.
type CleanupService interface {
	// Preview reports rows eligible for permanent removal without deleting.
	// includeReport adds oldest/newest timestamps per data type.
	Preview(ctx context.Context, actor *model.User, retentionDays int, includeReport bool) (*CleanupReport, error)

	// Run executes (or dry-runs) a cleanup. Destructive runs require the
	// force flag and a SUPER_ADMIN actor.
	Run(ctx context.Context, actor *model.User, req CleanupRequest) (*CleanupReport, error)
}

type cleanupService struct {
	apps    repository.ApplicationRepository
	uploads repository.UploadErrorRepository
	audit   repository.AuditRepository
	cfg     config.CleanupConfig
}

// NewCleanupService constructs a new CleanupService.
func NewCleanupService(
	apps repository.ApplicationRepository,
	uploads repository.UploadErrorRepository,
	audit repository.AuditRepository,
	cfg config.CleanupConfig,
) CleanupService {
	return &cleanupService{apps: apps, uploads: uploads, audit: audit, cfg: cfg}
}

func (s *cleanupService) Preview(ctx context.Context, actor *model.User, retentionDays int, includeReport bool) (*CleanupReport, error) {
	retentionDays, err := s.retention(retentionDays)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	report := &CleanupReport{
		DryRun:        true,
		RetentionDays: retentionDays,
		BatchSize:     0,
		Cutoff:        cutoff,
	}
	if report.Applications, err = s.typeStats(ctx, CleanupApplications, cutoff, includeReport); err != nil {
		return nil, err
	}
	if report.UploadErrors, err = s.typeStats(ctx, CleanupUploadErrors, cutoff, includeReport); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, actor, "cleanup.preview", report)
	return report, nil
}

func (s *cleanupService) Run(ctx context.Context, actor *model.User, req CleanupRequest) (*CleanupReport, error) {
	retentionDays, err := s.retention(req.RetentionDays)
	if err != nil {
		return nil, err
	}
	batch := req.BatchSize
	if batch <= 0 {
		batch = s.cfg.DefaultBatchSize
	}
	if batch > s.cfg.MaxBatchSize {
		batch = s.cfg.MaxBatchSize
	}
	target := req.Target
	if target == "" {
		target = CleanupAll
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown cleanup type %q", ErrValidation, req.Target)
	}

	dryRun := req.DryRun == nil || *req.DryRun
	if !dryRun {
		if !req.Force {
			return nil, ErrForceRequired
		}
		if actor == nil || actor.Type != model.UserTypeSuperAdmin {
			return nil, ErrForbidden
		}
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	report := &CleanupReport{
		DryRun:        dryRun,
		RetentionDays: retentionDays,
		BatchSize:     batch,
		Cutoff:        cutoff,
	}

	recordAudit(ctx, s.audit, actor, "cleanup.start", map[string]any{
		"dry_run":        dryRun,
		"retention_days": retentionDays,
		"batch_size":     batch,
		"type":           target,
	})

	if target == CleanupApplications || target == CleanupAll {
		if report.Applications, err = s.runType(ctx, CleanupApplications, cutoff, batch, dryRun); err != nil {
			return nil, err
		}
	}
	if target == CleanupUploadErrors || target == CleanupAll {
		if report.UploadErrors, err = s.runType(ctx, CleanupUploadErrors, cutoff, batch, dryRun); err != nil {
			return nil, err
		}
	}

	recordAudit(ctx, s.audit, actor, "cleanup.finish", report)
	return report, nil
}

func (s *cleanupService) retention(days int) (int, error) {
	if days == 0 {
		return s.cfg.DefaultRetentionDays, nil
	}
	if days < s.cfg.MinRetentionDays {
		return 0, fmt.Errorf("%w: retention_days below minimum of %d", ErrValidation, s.cfg.MinRetentionDays)
	}
	return days, nil
}

func (s *cleanupService) typeStats(ctx context.Context, target CleanupTarget, cutoff time.Time, includeTimestamps bool) (*CleanupTypeResult, error) {
	var (
		stats *repository.CleanupStats
		err   error
	)
	switch target {
	case CleanupApplications:
		stats, err = s.apps.CleanupStats(ctx, cutoff)
	case CleanupUploadErrors:
		stats, err = s.uploads.CleanupStats(ctx, cutoff)
	}
	if err != nil {
		return nil, fmt.Errorf("cleanup stats for %s: %w", target, err)
	}
	res := &CleanupTypeResult{Eligible: stats.Eligible}
	if includeTimestamps {
		res.Oldest = stats.Oldest
		res.Newest = stats.Newest
	}
	return res, nil
}

func (s *cleanupService) runType(ctx context.Context, target CleanupTarget, cutoff time.Time, batch int, dryRun bool) (*CleanupTypeResult, error) {
	res, err := s.typeStats(ctx, target, cutoff, true)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return res, nil
	}

	switch target {
	case CleanupApplications:
		res.Deleted, err = s.apps.DeleteSoftDeletedBefore(ctx, cutoff, batch)
	case CleanupUploadErrors:
		res.Deleted, err = s.uploads.DeleteResolvedBefore(ctx, cutoff, batch)
	}
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", target, err)
	}
	return res, nil
}
