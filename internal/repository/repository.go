package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// ErrDuplicate is returned when an insert violates a uniqueness constraint
// (e.g., order_number). Implementations translate driver errors to this.
var ErrDuplicate = errors.New("duplicate record")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// FromPage converts 1-based page/limit parameters into a PageQuery.
// page=3&limit=20 yields Offset=40, Limit=20.
func FromPage(page, limit int) PageQuery {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return PageQuery{Limit: limit, Offset: (page - 1) * limit}
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
