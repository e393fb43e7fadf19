package mocks

import (
	"context"
	"time"

	"caterapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockWebhookLogRepository struct {
	mock.Mock
}

func (m *MockWebhookLogRepository) Create(ctx context.Context, w *model.WebhookLog) (*model.WebhookLog, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WebhookLog), args.Error(1)
}

func (m *MockWebhookLogRepository) Counts(ctx context.Context, since time.Time) (int, int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, a *model.AuditLog) (*model.AuditLog, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) CountByAction(ctx context.Context, action string, since time.Time) (int, error) {
	args := m.Called(ctx, action, since)
	return args.Int(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByAuthID(ctx context.Context, authID string) (*model.User, error) {
	args := m.Called(ctx, authID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
