package mocks

import (
	"context"

	"caterapi/internal/model"
	"caterapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Issue(ctx context.Context, in service.IssueSessionInput) (*model.ApplicationSession, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplicationSession), args.Error(1)
}

func (m *MockSessionService) Upload(ctx context.Context, token string, in service.UploadInput) (*model.ApplicationFile, error) {
	args := m.Called(ctx, token, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplicationFile), args.Error(1)
}

func (m *MockSessionService) Complete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
