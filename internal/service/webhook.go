package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

// DeliveryWebhook is a partner status callback payload.
type DeliveryWebhook struct {
	OrderNumber string `json:"order_number"`
	Event       string `json:"event"`
	Status      string `json:"status"`
	Source      string `json:"-"`
}

// WebhookService defines the inbound delivery-partner webhook use cases.
type WebhookService interface {
	// HandleDelivery records the callback and applies the order status update
	// when the payload maps to an allowed transition. The returned log carries
	// the success flag and the status code the processing resolved to.
	HandleDelivery(ctx context.Context, in DeliveryWebhook) (*model.WebhookLog, error)

	// RecordRejected logs a callback that failed secret verification.
	RecordRejected(ctx context.Context, in DeliveryWebhook) error
}

type webhookService struct {
	orders repository.OrderRepository
	logs   repository.WebhookLogRepository
}

// NewWebhookService constructs a new WebhookService.
func NewWebhookService(orders repository.OrderRepository, logs repository.WebhookLogRepository) WebhookService {
	return &webhookService{orders: orders, logs: logs}
}

func (s *webhookService) HandleDelivery(ctx context.Context, in DeliveryWebhook) (*model.WebhookLog, error) {
	code := s.apply(ctx, in)
	entry := &model.WebhookLog{
		ID:          uuid.New().String(),
		Source:      in.Source,
		Event:       in.Event,
		OrderNumber: in.OrderNumber,
		Success:     code == http.StatusOK,
		StatusCode:  code,
		CreatedAt:   time.Now().UTC(),
	}
	return s.logs.Create(ctx, entry)
}

func (s *webhookService) RecordRejected(ctx context.Context, in DeliveryWebhook) error {
	_, err := s.logs.Create(ctx, &model.WebhookLog{
		ID:          uuid.New().String(),
		Source:      in.Source,
		Event:       in.Event,
		OrderNumber: in.OrderNumber,
		Success:     false,
		StatusCode:  http.StatusUnauthorized,
		CreatedAt:   time.Now().UTC(),
	})
	return err
}

// apply resolves the payload to an order transition and returns the status
// code recorded on the log entry.
func (s *webhookService) apply(ctx context.Context, in DeliveryWebhook) int {
	if in.OrderNumber == "" {
		return http.StatusBadRequest
	}
	next := statusFromPayload(in)
	if next == "" {
		return http.StatusBadRequest
	}

	current, err := s.orders.FindByNumber(ctx, in.OrderNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return http.StatusNotFound
		}
		return http.StatusInternalServerError
	}
	if !current.Status.CanTransitionTo(next) {
		return http.StatusConflict
	}
	if _, err := s.orders.UpdateStatus(ctx, in.OrderNumber, next); err != nil {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// statusFromPayload maps a callback to a target order status. The explicit
// status field wins; otherwise well-known event names are recognized.
func statusFromPayload(in DeliveryWebhook) model.OrderStatus {
	if st := model.OrderStatus(in.Status); st.Valid() {
		return st
	}
	switch in.Event {
	case "driver.assigned", "delivery.assigned":
		return model.OrderStatusAssigned
	case "delivery.completed", "delivery.delivered":
		return model.OrderStatusCompleted
	case "delivery.cancelled", "delivery.canceled":
		return model.OrderStatusCancelled
	}
	return ""
}
