package store

import "errors"

var (
	ErrNotFound    = errors.New("catch not found")
	ErrUnavailable = errors.New("database unavailable")
)
