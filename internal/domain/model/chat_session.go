package model

import "strconv"

// ChatSession is a Telegram conversation the bot has seen. It carries no state of
// its own; a chat "exists" once a token has been stored for it.
type ChatSession struct {
	ChatID      int64
	DisplayName string
}

// TokenRecord binds one shortener API token to one chat.
type TokenRecord struct {
	ChatID int64
	Token  string
}

// Key is the store key for a chat: its decimal ID.
func (r TokenRecord) Key() string {
	return ChatKey(r.ChatID)
}

func ChatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
