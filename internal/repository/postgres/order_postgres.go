package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

const orderColumns = `id, order_number, order_type, status, brokerage, client_id,
		pickup_address, delivery_address, event_date, headcount, need_host,
		hours_needed, number_of_hosts, order_total, tip, client_attention,
		pickup_notes, special_notes, deleted_at, created_at, updated_at`

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type OrderPostgres struct {
	db *sql.DB
}

// NewOrderPostgres creates a new OrderPostgres repository.
func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	var deletedAt sql.NullTime
	if err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.OrderType,
		&o.Status,
		&o.Brokerage,
		&o.ClientID,
		&o.PickupAddress,
		&o.DeliveryAddress,
		&o.EventDate,
		&o.Headcount,
		&o.NeedHost,
		&o.HoursNeeded,
		&o.NumberOfHosts,
		&o.OrderTotal,
		&o.Tip,
		&o.ClientAttention,
		&o.PickupNotes,
		&o.SpecialNotes,
		&deletedAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		o.DeletedAt = &deletedAt.Time
	}
	return &o, nil
}

// Create inserts a new order row and returns the stored record.
func (r *OrderPostgres) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	q := `
		INSERT INTO orders (id, order_number, order_type, status, brokerage, client_id,
			pickup_address, delivery_address, event_date, headcount, need_host,
			hours_needed, number_of_hosts, order_total, tip, client_attention,
			pickup_notes, special_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + orderColumns
	row := r.db.QueryRowContext(ctx, q,
		o.ID,
		o.OrderNumber,
		o.OrderType,
		o.Status,
		o.Brokerage,
		o.ClientID,
		o.PickupAddress,
		o.DeliveryAddress,
		o.EventDate,
		o.Headcount,
		o.NeedHost,
		o.HoursNeeded,
		o.NumberOfHosts,
		o.OrderTotal,
		o.Tip,
		o.ClientAttention,
		o.PickupNotes,
		o.SpecialNotes,
		o.CreatedAt,
		o.UpdatedAt,
	)
	out, err := scanOrder(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// FindByNumber fetches a single non-deleted order by its order number.
func (r *OrderPostgres) FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1 AND deleted_at IS NULL`
	return scanOrder(r.db.QueryRowContext(ctx, q, orderNumber))
}

// List returns orders using LIMIT/OFFSET pagination and a total count.
func (r *OrderPostgres) List(ctx context.Context, f repository.OrderFilter, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	where := []string{"deleted_at IS NULL"}
	args := []any{}
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if f.ClientID != "" {
		where = append(where, "client_id = "+next())
		args = append(args, f.ClientID)
	}
	if f.Status != "" {
		where = append(where, "status = "+next())
		args = append(args, f.Status)
	}
	if f.OrderType != "" {
		where = append(where, "order_type = "+next())
		args = append(args, f.OrderType)
	}
	if f.Search != "" {
		where = append(where, "order_number ILIKE "+next())
		args = append(args, "%"+f.Search+"%")
	}
	if !f.Since.IsZero() {
		where = append(where, "created_at >= "+next())
		args = append(args, f.Since)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + orderColumns + ` FROM orders WHERE ` + cond +
		` ORDER BY created_at DESC, id DESC LIMIT ` + next() + ` OFFSET ` + next()
	args = append(args, pq.Limit, pq.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Order]{Items: items, Total: total}, nil
}

// UpdateStatus sets the status of a non-deleted order and returns the updated row.
func (r *OrderPostgres) UpdateStatus(ctx context.Context, orderNumber string, status model.OrderStatus) (*model.Order, error) {
	q := `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE order_number = $2 AND deleted_at IS NULL
		RETURNING ` + orderColumns
	return scanOrder(r.db.QueryRowContext(ctx, q, status, orderNumber))
}

// CountByStatus returns order counts grouped by status since the given time.
func (r *OrderPostgres) CountByStatus(ctx context.Context, since time.Time) (map[model.OrderStatus]int, error) {
	const q = `
		SELECT status, COUNT(*) FROM orders
		WHERE deleted_at IS NULL AND created_at >= $1
		GROUP BY status
	`
	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.OrderStatus]int)
	for rows.Next() {
		var status model.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
