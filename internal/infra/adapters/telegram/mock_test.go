//go:build !integration

package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sentMessage struct {
	ChatID int64
	Text   string
}

// fakeBotAPI records outgoing messages and feeds updates from a channel.
type fakeBotAPI struct {
	mu      sync.Mutex
	sent    []sentMessage
	sendErr error
	updates chan tgbotapi.Update
	stopped bool
}

func newFakeBotAPI() *fakeBotAPI {
	return &fakeBotAPI{updates: make(chan tgbotapi.Update, 16)}
}

func (f *fakeBotAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{ChatID: msg.ChatID, Text: msg.Text})
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeBotAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeBotAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeBotAPI) Sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *fakeLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

// textUpdate builds a plain text message update.
func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: int(chatID),
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: chatID},
			From: &tgbotapi.User{ID: chatID, UserName: "alice", FirstName: "Alice"},
		},
	}
}

// commandUpdate builds an update whose text starts with a bot_command entity,
// the way the Bot API delivers "/cmd args".
func commandUpdate(chatID int64, text string, from *tgbotapi.User) tgbotapi.Update {
	up := textUpdate(chatID, text)
	cmdLen := len(text)
	for i, r := range text {
		if r == ' ' || r == '\n' {
			cmdLen = i
			break
		}
	}
	up.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}}
	up.Message.From = from
	return up
}
