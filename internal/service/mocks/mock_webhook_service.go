package mocks

import (
	"context"

	"caterapi/internal/model"
	"caterapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) HandleDelivery(ctx context.Context, in service.DeliveryWebhook) (*model.WebhookLog, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WebhookLog), args.Error(1)
}

func (m *MockWebhookService) RecordRejected(ctx context.Context, in service.DeliveryWebhook) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}
