package application

import (
	"context"
	"errors"
	"strings"

	"telegram-link-shortener/internal/domain"
	"telegram-link-shortener/internal/domain/model"
	"telegram-link-shortener/internal/infra/logging"

	"github.com/rs/zerolog"
)

// BotFacade composes usecases into high-level bot commands.
// Facade methods return the reply text so the Telegram adapter just forwards it
// to the chat. An empty reply means "send nothing".
type BotFacade struct {
	TokenUC   TokenUseCaseIface
	ShortenUC ShortenUseCaseIface

	tr  Translator
	log *zerolog.Logger
}

func NewBotFacade(tokenUC TokenUseCaseIface, shortenUC ShortenUseCaseIface, tr Translator, logger *zerolog.Logger) *BotFacade {
	if logger == nil {
		logger = logging.Nop()
	}
	return &BotFacade{
		TokenUC:   tokenUC,
		ShortenUC: shortenUC,
		tr:        tr,
		log:       logger,
	}
}

// IsShortenable reports whether text should go to the shortener: a plain
// case-sensitive http:// or https:// prefix, nothing more.
func IsShortenable(text string) bool {
	return strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")
}

// HandleStart returns the welcome text for the chat's display name.
func (b *BotFacade) HandleStart(ctx context.Context, session model.ChatSession) string {
	logging.With(ctx, b.log).Debug().Int64("chat_id", session.ChatID).Msg("start")
	return b.tr.T("welcome_message", session.DisplayName)
}

func (b *BotFacade) HandleHelp(_ context.Context) string {
	return b.tr.T("help_message")
}

// HandleSetToken stores the command argument as the chat's token.
func (b *BotFacade) HandleSetToken(ctx context.Context, chatID int64, args string) string {
	token := strings.TrimSpace(args)
	if token == "" {
		return b.tr.T("usage_set_token")
	}
	if err := b.TokenUC.SetToken(ctx, chatID, token); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return b.tr.T("usage_set_token")
		}
		logging.With(ctx, b.log).Error().Err(err).Msg("failed to save shortener token")
		return b.tr.T("error_generic")
	}
	return b.tr.T("token_saved")
}

// HandleText handles free text. Anything that is not a link gets no reply.
func (b *BotFacade) HandleText(ctx context.Context, chatID int64, text string) string {
	if !IsShortenable(text) {
		return ""
	}
	short, err := b.ShortenUC.Shorten(ctx, chatID, text)
	switch {
	case err == nil:
		return b.tr.T("shortened_url", short)
	case errors.Is(err, domain.ErrTokenNotConfigured):
		return b.tr.T("error_token_missing")
	default:
		// cause is logged by the use case; the user only sees the generic text
		return b.tr.T("error_shorten_failed")
	}
}

func (b *BotFacade) RateLimited(_ context.Context) string {
	return b.tr.T("error_rate_limited")
}
