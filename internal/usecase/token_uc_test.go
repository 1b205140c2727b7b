//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"

	"telegram-link-shortener/internal/domain"
	"telegram-link-shortener/internal/infra/logging"
)

func TestTokenUC_SetTrimsAndStores(t *testing.T) {
	repo := newMemTokenRepo()
	uc := NewTokenUseCase(repo, logging.Nop(), false)

	if err := uc.SetToken(context.Background(), 42, "  T1 \n"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if got, ok := uc.GetToken(context.Background(), 42); !ok || got != "T1" {
		t.Fatalf("GetToken = %q, %v", got, ok)
	}
}

func TestTokenUC_RejectsEmptyToken(t *testing.T) {
	uc := NewTokenUseCase(newMemTokenRepo(), logging.Nop(), false)
	err := uc.SetToken(context.Background(), 42, "   ")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestTokenUC_PropagatesStoreError(t *testing.T) {
	repo := newMemTokenRepo()
	repo.setErr = errors.New("disk full")
	uc := NewTokenUseCase(repo, logging.Nop(), false)

	if err := uc.SetToken(context.Background(), 1, "T"); err == nil {
		t.Fatal("expected store error")
	}
}

func TestTokenUC_EmptyStoredTokenCountsAsAbsent(t *testing.T) {
	repo := newMemTokenRepo()
	repo.tokens[3] = ""
	uc := NewTokenUseCase(repo, logging.Nop(), false)
	if _, ok := uc.GetToken(context.Background(), 3); ok {
		t.Fatal("empty token must be reported as absent")
	}
}
