package domain

import "errors"

var (
	// ErrEmptyMessage is returned when a chat request carries no usable text
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrCatalogUnavailable is returned when the catalog provider cannot be reached
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
