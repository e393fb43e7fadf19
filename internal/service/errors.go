package service

// Package service contains the business logic use cases. Services validate
// input, enforce authorization scoping, and orchestrate repositories and
// object storage; handlers translate the sentinel errors below to HTTP.

import "errors"

var (
	// ErrValidation wraps input validation failures; the wrapped message
	// names the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when the requested record does not exist or is
	// soft-deleted.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when the actor's role does not permit the
	// operation or the record belongs to someone else.
	ErrForbidden = errors.New("operation not allowed")

	// ErrRateLimited is returned when an IP exceeds the session issuance quota.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrSessionExpired is returned when an upload session passed its expiry.
	ErrSessionExpired = errors.New("session expired")

	// ErrSessionCompleted is returned when an upload session was already completed.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrUploadLimit is returned when a session hit its max upload count.
	ErrUploadLimit = errors.New("upload limit reached")

	// ErrDuplicateOrder is returned when an order number is already taken.
	ErrDuplicateOrder = errors.New("duplicate order number")

	// ErrInvalidTransition is returned when an order status change is not
	// allowed by the lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForceRequired is returned when a destructive cleanup is requested
	// without the force flag.
	ErrForceRequired = errors.New("force flag required for destructive cleanup")
)
