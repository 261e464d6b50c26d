package service

import "errors"

var (
	// ErrInvalidInput is returned when a request cannot be applied at all.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat is returned for an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
