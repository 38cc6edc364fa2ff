package chat

import "errors"

var (
	// ErrInvalidInput marks a malformed request. Nothing is persisted when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCatalogUnavailable is produced by catalog adapters. The query builder
	// swallows it and continues the turn with zero results.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrStorage wraps any session persistence failure.
	ErrStorage = errors.New("storage failure")
)
