package mocks

import (
	"context"

	"caterapi/internal/model"
	"caterapi/internal/repository"
	"caterapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, actor *model.User, in service.CreateOrderInput) (*model.Order, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, actor *model.User, orderNumber string) (*model.Order, error) {
	args := m.Called(ctx, actor, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, actor *model.User, f repository.OrderFilter, page, limit int) (*service.OrderListResult, error) {
	args := m.Called(ctx, actor, f, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OrderListResult), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderNumber string, next model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, orderNumber, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}
