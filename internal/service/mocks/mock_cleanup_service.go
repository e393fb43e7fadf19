package mocks

import (
	"context"

	"caterapi/internal/model"
	"caterapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCleanupService struct {
	mock.Mock
}

func (m *MockCleanupService) Preview(ctx context.Context, actor *model.User, retentionDays int, includeReport bool) (*service.CleanupReport, error) {
	args := m.Called(ctx, actor, retentionDays, includeReport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CleanupReport), args.Error(1)
}

func (m *MockCleanupService) Run(ctx context.Context, actor *model.User, req service.CleanupRequest) (*service.CleanupReport, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CleanupReport), args.Error(1)
}
