package postgres

import (
	"context"
	"database/sql"
	"time"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

// WebhookLogPostgres is a PostgreSQL implementation of repository.WebhookLogRepository.
type WebhookLogPostgres struct {
	db *sql.DB
}

// NewWebhookLogPostgres creates a new WebhookLogPostgres repository.
func NewWebhookLogPostgres(db *sql.DB) *WebhookLogPostgres {
	return &WebhookLogPostgres{db: db}
}

var _ repository.WebhookLogRepository = (*WebhookLogPostgres)(nil)

// Create inserts a webhook log row and returns the stored record.
func (r *WebhookLogPostgres) Create(ctx context.Context, w *model.WebhookLog) (*model.WebhookLog, error) {
	const q = `
		INSERT INTO webhook_logs (id, source, event, order_number, success, status_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, source, event, order_number, success, status_code, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		w.ID,
		w.Source,
		w.Event,
		nullString(w.OrderNumber),
		w.Success,
		w.StatusCode,
		w.CreatedAt,
	)
	var out model.WebhookLog
	var orderNumber sql.NullString
	if err := row.Scan(
		&out.ID,
		&out.Source,
		&out.Event,
		&orderNumber,
		&out.Success,
		&out.StatusCode,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	out.OrderNumber = orderNumber.String
	return &out, nil
}

// Counts returns total and successful deliveries since the given time.
func (r *WebhookLogPostgres) Counts(ctx context.Context, since time.Time) (int, int, error) {
	const q = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE success = TRUE)
		FROM webhook_logs
		WHERE created_at >= $1
	`
	var total, successful int
	if err := r.db.QueryRowContext(ctx, q, since).Scan(&total, &successful); err != nil {
		return 0, 0, err
	}
	return total, successful, nil
}
