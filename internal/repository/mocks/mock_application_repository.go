package mocks

import (
	"context"
	"time"

	"caterapi/internal/model"
	"caterapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *model.JobApplication) (*model.JobApplication, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobApplication), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id string) (*model.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobApplication), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, f repository.ApplicationFilter, pq repository.PageQuery) (*repository.PageResult[model.JobApplication], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.JobApplication]), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.JobApplication, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobApplication), args.Error(1)
}

func (m *MockApplicationRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockApplicationRepository) Restore(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context, since time.Time) (map[model.ApplicationStatus]int, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ApplicationStatus]int), args.Error(1)
}

func (m *MockApplicationRepository) CountSoftDeleted(ctx context.Context, cutoff time.Time) (int, int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockApplicationRepository) CountSoftDeletedSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *MockApplicationRepository) CleanupStats(ctx context.Context, cutoff time.Time) (*repository.CleanupStats, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CleanupStats), args.Error(1)
}

func (m *MockApplicationRepository) DeleteSoftDeletedBefore(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Int(0), args.Error(1)
}

type MockApplicationFileRepository struct {
	mock.Mock
}

func (m *MockApplicationFileRepository) Create(ctx context.Context, f *model.ApplicationFile) (*model.ApplicationFile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplicationFile), args.Error(1)
}

func (m *MockApplicationFileRepository) LinkToApplication(ctx context.Context, sessionToken, applicationID string) (int, error) {
	args := m.Called(ctx, sessionToken, applicationID)
	return args.Int(0), args.Error(1)
}

func (m *MockApplicationFileRepository) ListByApplication(ctx context.Context, applicationID string) ([]model.ApplicationFile, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ApplicationFile), args.Error(1)
}
