package model

import "time"

// WebhookLog records one inbound delivery-partner webhook attempt.
type WebhookLog struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Event       string    `json:"event"`
	OrderNumber string    `json:"order_number,omitempty"`
	Success     bool      `json:"success"`
	StatusCode  int       `json:"status_code"`
	CreatedAt   time.Time `json:"created_at"`
}
