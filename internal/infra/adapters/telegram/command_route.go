package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-link-shortener/internal/domain/model"
	red "telegram-link-shortener/internal/infra/redis"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
// Commands not listed here are ignored without a reply.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start":       r.handleStartCommand,
		"help":        r.handleHelpCommand,
		"setarklinks": r.handleSetTokenCommand,
		"setapi":      r.handleSetTokenCommand,
	}
}

// handleStartCommand greets the sender by username, or first name.
func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	session := model.ChatSession{ChatID: message.Chat.ID, DisplayName: displayName(message.From)}
	return r.SendMessage(ctx, session.ChatID, r.facade.HandleStart(ctx, session))
}

func (r *RealTelegramBotAdapter) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.SendMessage(ctx, message.Chat.ID, r.facade.HandleHelp(ctx))
}

// handleSetTokenCommand stores everything after the command as the chat's token.
func (r *RealTelegramBotAdapter) handleSetTokenCommand(ctx context.Context, message *tgbotapi.Message) error {
	reply := r.facade.HandleSetToken(ctx, message.Chat.ID, message.CommandArguments())
	return r.SendMessage(ctx, message.Chat.ID, reply)
}

func chatCommandKey(chatID int64, command string) string {
	return red.ChatCommandKey(chatID, command)
}
