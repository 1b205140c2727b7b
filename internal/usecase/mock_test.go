//go:build !integration

package usecase

import (
	"context"
	"errors"
	"sync"
)

// ---- Fakes ----

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[int64]string
	setErr error
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[int64]string{}}
}

func (m *memTokenRepo) Get(ctx context.Context, chatID int64) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, ok := m.tokens[chatID]
	return tok, ok
}

func (m *memTokenRepo) Set(ctx context.Context, chatID int64, token string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[chatID] = token
	return nil
}

type fakeShortener struct {
	mu    sync.Mutex
	calls int
	token string
	url   string
	short string
	err   error
}

func (f *fakeShortener) Name() string { return "fake" }

func (f *fakeShortener) Shorten(ctx context.Context, token, rawURL string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.token, f.url = token, rawURL
	if f.err != nil {
		return "", f.err
	}
	return f.short, nil
}

var errUpstream = errors.New("upstream exploded")
