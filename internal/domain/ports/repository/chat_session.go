package repository

import "context"

// -----------------------------
// Shortener tokens
// -----------------------------

// TokenRepository maps a chat to its shortener API token.
//
// Get never fails: an unreadable backing store is reported as "no token".
// Set is a plain read-modify-write with no mutual exclusion; concurrent Set calls
// for different chats may lose one of the updates (last writer wins).
type TokenRepository interface {
	Get(ctx context.Context, chatID int64) (string, bool)
	Set(ctx context.Context, chatID int64, token string) error
}
