package model

import "time"

// OrderType distinguishes catering orders from on-demand deliveries.
type OrderType string

const (
	OrderTypeCatering OrderType = "catering"
	OrderTypeOnDemand OrderType = "on_demand"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == OrderTypeCatering || t == OrderTypeOnDemand
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusAssigned  OrderStatus = "assigned"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusActive, OrderStatusAssigned, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Allowed: active→assigned, assigned→completed, any non-terminal→cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusActive:
		return next == OrderStatusAssigned || next == OrderStatusCancelled
	case OrderStatusAssigned:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		return false
	}
}

// Order represents a catering or on-demand delivery order.
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"order_number"`
	OrderType       OrderType   `json:"order_type"`
	Status          OrderStatus `json:"status"`
	Brokerage       string      `json:"brokerage"`
	ClientID        string      `json:"client_id"`
	PickupAddress   string      `json:"pickup_address"`
	DeliveryAddress string      `json:"delivery_address"`
	EventDate       time.Time   `json:"event_date"`
	Headcount       int         `json:"headcount"`
	NeedHost        bool        `json:"need_host"`
	HoursNeeded     float64     `json:"hours_needed"`
	NumberOfHosts   int         `json:"number_of_hosts"`
	OrderTotal      float64     `json:"order_total"`
	Tip             float64     `json:"tip"`
	ClientAttention string      `json:"client_attention"`
	PickupNotes     string      `json:"pickup_notes"`
	SpecialNotes    string      `json:"special_notes"`
	DeletedAt       *time.Time  `json:"deleted_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
