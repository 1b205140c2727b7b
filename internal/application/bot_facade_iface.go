package application

import "context"

// ---- small interfaces to decouple the facade from concrete usecase structs ----
// These describe the minimal surface that the facade needs. Using interfaces
// enables tests to pass in light-weight mocks.
type TokenUseCaseIface interface {
	SetToken(ctx context.Context, chatID int64, token string) error
}

type ShortenUseCaseIface interface {
	Shorten(ctx context.Context, chatID int64, rawURL string) (string, error)
}

// Translator resolves reply texts by key.
type Translator interface {
	T(key string, args ...interface{}) string
}
