package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingInputs marks a prediction request that carries neither an
	// entry id nor a query embedding.
	ErrMissingInputs = errors.New("missing inputs")
	// ErrDimensionMismatch marks a query embedding whose length differs from
	// the configured index dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
