package mocks

import (
	"context"
	"time"

	"caterapi/internal/model"
	"caterapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockMonitoringService struct {
	mock.Mock
}

func (m *MockMonitoringService) Dashboard(ctx context.Context, actor *model.User, since time.Time) (*service.DashboardReport, error) {
	args := m.Called(ctx, actor, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardReport), args.Error(1)
}

func (m *MockMonitoringService) Metrics(ctx context.Context, actor *model.User, since time.Time) (*service.MetricsReport, error) {
	args := m.Called(ctx, actor, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MetricsReport), args.Error(1)
}

func (m *MockMonitoringService) Alerts(ctx context.Context, actor *model.User) (*service.AlertsReport, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AlertsReport), args.Error(1)
}

func (m *MockMonitoringService) Health(ctx context.Context, actor *model.User) (*service.HealthReport, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HealthReport), args.Error(1)
}
