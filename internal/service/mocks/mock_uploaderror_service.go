package mocks

import (
	"context"

	"caterapi/internal/model"
	"caterapi/internal/repository"
	"caterapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockUploadErrorService struct {
	mock.Mock
}

func (m *MockUploadErrorService) List(ctx context.Context, f repository.UploadErrorFilter, page, limit int) (*service.UploadErrorListResult, error) {
	args := m.Called(ctx, f, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadErrorListResult), args.Error(1)
}

func (m *MockUploadErrorService) Stats(ctx context.Context) (*repository.UploadErrorStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UploadErrorStats), args.Error(1)
}

func (m *MockUploadErrorService) SetResolved(ctx context.Context, id string, resolved bool) error {
	args := m.Called(ctx, id, resolved)
	return args.Error(0)
}

func (m *MockUploadErrorService) ResolveAll(ctx context.Context, actor *model.User) (int, error) {
	args := m.Called(ctx, actor)
	return args.Int(0), args.Error(1)
}

func (m *MockUploadErrorService) Delete(ctx context.Context, actor *model.User, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockUploadErrorService) DeleteResolved(ctx context.Context, actor *model.User) (int, error) {
	args := m.Called(ctx, actor)
	return args.Int(0), args.Error(1)
}
