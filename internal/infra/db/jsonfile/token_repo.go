package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"telegram-link-shortener/internal/domain/model"
	"telegram-link-shortener/internal/domain/ports/repository"
	"telegram-link-shortener/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo keeps the chat -> token mapping in a single pretty-printed JSON
// object on disk. Every call re-reads the file; nothing is cached in memory.
type TokenRepo struct {
	path string
	log  *zerolog.Logger
}

func NewTokenRepo(path string, logger *zerolog.Logger) *TokenRepo {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &TokenRepo{path: path, log: logger}
}

func (r *TokenRepo) Path() string { return r.path }

// Get returns the token stored for chatID. A missing or corrupt file reads as an
// empty store, so the answer is simply "not found".
func (r *TokenRepo) Get(_ context.Context, chatID int64) (string, bool) {
	tokens := r.load()
	tok, ok := tokens[model.ChatKey(chatID)]
	if ok {
		metrics.IncStoreOp("get", "hit")
	} else {
		metrics.IncStoreOp("get", "miss")
	}
	return tok, ok
}

// Set overwrites the token for chatID and rewrites the whole file.
func (r *TokenRepo) Set(_ context.Context, chatID int64, token string) error {
	tokens := r.load()
	rec := model.TokenRecord{ChatID: chatID, Token: token}
	tokens[rec.Key()] = rec.Token
	if err := r.save(tokens); err != nil {
		metrics.IncStoreOp("set", "error")
		return err
	}
	metrics.IncStoreOp("set", "ok")
	return nil
}

// load reads the whole mapping, degrading to empty on any error.
func (r *TokenRepo) load() map[string]string {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warn().Err(err).Str("path", r.path).Msg("token store unreadable; treating as empty")
			metrics.IncStoreOp("load", "error")
		}
		return map[string]string{}
	}
	tokens := map[string]string{}
	if err := json.Unmarshal(b, &tokens); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("token store corrupt; treating as empty")
		metrics.IncStoreOp("load", "corrupt")
		return map[string]string{}
	}
	if tokens == nil {
		// a bare null document decodes to a nil map
		return map[string]string{}
	}
	return tokens
}

// save replaces the file by writing a sibling temp file and renaming it over
// the existing one, so readers see either the old or the new document.
func (r *TokenRepo) save(tokens map[string]string) error {
	b, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token store: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write token store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close token store: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod token store: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace token store: %w", err)
	}
	return nil
}
