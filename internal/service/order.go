package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

// CreateOrderInput carries a new catering or on-demand delivery order.
type CreateOrderInput struct {
	OrderNumber     string          `json:"order_number"`
	OrderType       model.OrderType `json:"order_type"`
	Brokerage       string          `json:"brokerage"`
	ClientID        string          `json:"client_id"`
	PickupAddress   string          `json:"pickup_address"`
	DeliveryAddress string          `json:"delivery_address"`
	EventDate       time.Time       `json:"event_date"`
	Headcount       int             `json:"headcount"`
	NeedHost        bool            `json:"need_host"`
	HoursNeeded     float64         `json:"hours_needed"`
	NumberOfHosts   int             `json:"number_of_hosts"`
	OrderTotal      float64         `json:"order_total"`
	Tip             float64         `json:"tip"`
	ClientAttention string          `json:"client_attention"`
	PickupNotes     string          `json:"pickup_notes"`
	SpecialNotes    string          `json:"special_notes"`
}

// OrderListResult is the service-level DTO for paginated orders.
type OrderListResult struct {
	Items []model.Order `json:"data"`
	Total int           `json:"total"`
}

// OrderService defines the use cases for orders.
type OrderService interface {
	// Create validates and stores a new order scoped to the actor.
	Create(ctx context.Context, actor *model.User, in CreateOrderInput) (*model.Order, error)

	// Get returns an order by number; non-staff actors only see their own.
	Get(ctx context.Context, actor *model.User, orderNumber string) (*model.Order, error)

	// List returns orders matching the filter; non-staff actors are scoped to
	// their own orders regardless of the filter.
	List(ctx context.Context, actor *model.User, f repository.OrderFilter, page, limit int) (*OrderListResult, error)

	// UpdateStatus moves an order through its lifecycle.
	UpdateStatus(ctx context.Context, orderNumber string, next model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orders repository.OrderRepository
}

// NewOrderService constructs a new OrderService.
func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) Create(ctx context.Context, actor *model.User, in CreateOrderInput) (*model.Order, error) {
	if in.OrderNumber == "" {
		return nil, fmt.Errorf("%w: order_number is required", ErrValidation)
	}
	if !in.OrderType.Valid() {
		return nil, fmt.Errorf("%w: unknown order_type %q", ErrValidation, in.OrderType)
	}
	if in.DeliveryAddress == "" {
		return nil, fmt.Errorf("%w: delivery_address is required", ErrValidation)
	}
	if in.EventDate.IsZero() {
		return nil, fmt.Errorf("%w: event_date is required", ErrValidation)
	}

	// Admins may file orders on behalf of a client; everyone else owns what
	// they create.
	clientID := actor.ID
	if in.ClientID != "" && actor.Type.IsAdmin() {
		clientID = in.ClientID
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:              uuid.New().String(),
		OrderNumber:     in.OrderNumber,
		OrderType:       in.OrderType,
		Status:          model.OrderStatusActive,
		Brokerage:       in.Brokerage,
		ClientID:        clientID,
		PickupAddress:   in.PickupAddress,
		DeliveryAddress: in.DeliveryAddress,
		EventDate:       in.EventDate,
		Headcount:       in.Headcount,
		NeedHost:        in.NeedHost,
		HoursNeeded:     in.HoursNeeded,
		NumberOfHosts:   in.NumberOfHosts,
		OrderTotal:      in.OrderTotal,
		Tip:             in.Tip,
		ClientAttention: in.ClientAttention,
		PickupNotes:     in.PickupNotes,
		SpecialNotes:    in.SpecialNotes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	stored, err := s.orders.Create(ctx, order)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateOrder
		}
		return nil, err
	}
	return stored, nil
}

func (s *orderService) Get(ctx context.Context, actor *model.User, orderNumber string) (*model.Order, error) {
	if orderNumber == "" {
		return nil, fmt.Errorf("%w: order_number is required", ErrValidation)
	}
	order, err := s.orders.FindByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.Type.IsStaff() && order.ClientID != actor.ID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, actor *model.User, f repository.OrderFilter, page, limit int) (*OrderListResult, error) {
	if !actor.Type.IsStaff() {
		f.ClientID = actor.ID
	}
	res, err := s.orders.List(ctx, f, repository.FromPage(page, limit))
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderNumber string, next model.OrderStatus) (*model.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}
	current, err := s.orders.FindByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, next)
	}
	updated, err := s.orders.UpdateStatus(ctx, orderNumber, next)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}
