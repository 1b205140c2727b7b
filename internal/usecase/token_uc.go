package usecase

import (
	"context"
	"fmt"
	"strings"

	"telegram-link-shortener/internal/domain"
	"telegram-link-shortener/internal/domain/ports/repository"
	"telegram-link-shortener/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ TokenUseCase = (*tokenUC)(nil)

// TokenUseCase manages the per-chat shortener API token.
type TokenUseCase interface {
	SetToken(ctx context.Context, chatID int64, token string) error
	GetToken(ctx context.Context, chatID int64) (string, bool)
}

type tokenUC struct {
	tokens repository.TokenRepository
	log    *zerolog.Logger
	dev    bool
}

func NewTokenUseCase(tokens repository.TokenRepository, logger *zerolog.Logger, dev bool) *tokenUC {
	return &tokenUC{tokens: tokens, log: logger, dev: dev}
}

// SetToken stores token for chatID after trimming surrounding whitespace.
func (u *tokenUC) SetToken(ctx context.Context, chatID int64, token string) error {
	defer logging.TraceDuration(u.log, "TokenUC.SetToken")()

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("empty token: %w", domain.ErrInvalidArgument)
	}
	if err := u.tokens.Set(ctx, chatID, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	logging.With(ctx, u.log).Info().
		Str("token", logging.Redact(token, u.dev)).
		Msg("shortener token saved")
	return nil
}

func (u *tokenUC) GetToken(ctx context.Context, chatID int64) (string, bool) {
	tok, ok := u.tokens.Get(ctx, chatID)
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}
