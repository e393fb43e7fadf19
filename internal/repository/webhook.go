package repository

import (
	"context"
	"time"

	"caterapi/internal/model"
)

// WebhookLogRepository defines data access for inbound webhook logs.
type WebhookLogRepository interface {
	// Create inserts a webhook log row and returns the stored record.
	Create(ctx context.Context, w *model.WebhookLog) (*model.WebhookLog, error)

	// Counts returns total and successful deliveries since the given time.
	Counts(ctx context.Context, since time.Time) (total, successful int, err error)
}
