package usecase

import (
	"context"
	"fmt"

	"telegram-link-shortener/internal/domain"
	"telegram-link-shortener/internal/domain/ports/adapter"
	"telegram-link-shortener/internal/infra/logging"
	"telegram-link-shortener/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ ShortenUseCase = (*shortenUC)(nil)

// ShortenUseCase turns a long URL into a short one using the chat's own token.
type ShortenUseCase interface {
	Shorten(ctx context.Context, chatID int64, rawURL string) (string, error)
}

type shortenUC struct {
	tokens    TokenUseCase
	shortener adapter.ShortenerAdapter
	log       *zerolog.Logger
}

func NewShortenUseCase(tokens TokenUseCase, shortener adapter.ShortenerAdapter, logger *zerolog.Logger) *shortenUC {
	return &shortenUC{tokens: tokens, shortener: shortener, log: logger}
}

// Shorten returns domain.ErrTokenNotConfigured without calling the API when the
// chat has no token, and an error wrapping domain.ErrShortenFailed for any
// upstream problem. Nothing is retried or cached.
func (u *shortenUC) Shorten(ctx context.Context, chatID int64, rawURL string) (string, error) {
	defer logging.TraceDuration(u.log, "ShortenUC.Shorten")()

	token, ok := u.tokens.GetToken(ctx, chatID)
	if !ok {
		metrics.IncShorten("no_token")
		return "", domain.ErrTokenNotConfigured
	}

	short, err := u.shortener.Shorten(ctx, token, rawURL)
	if err != nil {
		metrics.IncShorten("failed")
		logging.With(ctx, u.log).Error().Err(err).
			Str("provider", u.shortener.Name()).
			Str("url", rawURL).
			Msg("shorten url failed")
		return "", fmt.Errorf("%w: %w", domain.ErrShortenFailed, err)
	}

	metrics.IncShorten("ok")
	return short, nil
}
