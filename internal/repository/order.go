package repository

import (
	"context"
	"time"

	"caterapi/internal/model"
)

// OrderFilter narrows order listing queries. Zero values mean "no filter".
type OrderFilter struct {
	ClientID  string
	Status    model.OrderStatus
	OrderType model.OrderType
	Search    string // matched against order_number
	Since     time.Time
}

// OrderRepository defines data access for orders using SQL queries only.
// No business logic here, strictly persistence operations.
type OrderRepository interface {
	// Create inserts a new order record and returns the stored row.
	// A unique violation on order_number surfaces as ErrDuplicate.
	Create(ctx context.Context, o *model.Order) (*model.Order, error)

	// FindByNumber returns a non-deleted order by its order number.
	FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error)

	// List returns a paginated list of non-deleted orders matching the filter.
	List(ctx context.Context, f OrderFilter, pq PageQuery) (*PageResult[model.Order], error)

	// UpdateStatus sets the order status and returns the updated row.
	UpdateStatus(ctx context.Context, orderNumber string, status model.OrderStatus) (*model.Order, error)

	// CountByStatus returns order counts grouped by status since the given time.
	CountByStatus(ctx context.Context, since time.Time) (map[model.OrderStatus]int, error)
}
