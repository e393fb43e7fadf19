package mocks

import (
	"context"
	"time"

	"caterapi/internal/model"
	"caterapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockUploadErrorRepository struct {
	mock.Mock
}

func (m *MockUploadErrorRepository) Create(ctx context.Context, e *model.UploadError) (*model.UploadError, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadError), args.Error(1)
}

func (m *MockUploadErrorRepository) List(ctx context.Context, f repository.UploadErrorFilter, pq repository.PageQuery) (*repository.PageResult[model.UploadError], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.UploadError]), args.Error(1)
}

func (m *MockUploadErrorRepository) Stats(ctx context.Context) (*repository.UploadErrorStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UploadErrorStats), args.Error(1)
}

func (m *MockUploadErrorRepository) SetResolved(ctx context.Context, id string, resolved bool) error {
	args := m.Called(ctx, id, resolved)
	return args.Error(0)
}

func (m *MockUploadErrorRepository) ResolveAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUploadErrorRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUploadErrorRepository) DeleteResolved(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUploadErrorRepository) CountUnresolved(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUploadErrorRepository) CleanupStats(ctx context.Context, cutoff time.Time) (*repository.CleanupStats, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CleanupStats), args.Error(1)
}

func (m *MockUploadErrorRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Int(0), args.Error(1)
}
