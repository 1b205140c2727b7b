package adapter

import "context"

// ShortenerAdapter is the port for the external link-shortening API.
type ShortenerAdapter interface {
	Name() string
	// Shorten returns the short alias for rawURL, authorized by token.
	Shorten(ctx context.Context, token, rawURL string) (string, error)
}
