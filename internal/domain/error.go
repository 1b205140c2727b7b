package domain

import "errors"

var (
	// Common domain errors
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrTokenNotConfigured = errors.New("no shortener token configured for chat")
	ErrShortenFailed      = errors.New("shortening failed")
)
