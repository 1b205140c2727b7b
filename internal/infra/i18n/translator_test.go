//go:build !integration

package i18n

import (
	"strings"
	"testing"
)

func TestTranslator(t *testing.T) {
	contentBytes := []byte("greeting: hello\nwelcome_user: hello %s")

	translator, err := newTranslatorFromBytes(contentBytes)
	if err != nil {
		t.Fatalf("newTranslatorFromBytes failed: %v", err)
	}

	t.Run("should translate a simple key", func(t *testing.T) {
		if got, want := translator.T("greeting"), "hello"; got != want {
			t.Errorf("wanted '%s', got '%s'", want, got)
		}
	})

	t.Run("should return key if not found", func(t *testing.T) {
		if got, want := translator.T("nonexistent_key"), "nonexistent_key"; got != want {
			t.Errorf("wanted '%s', got '%s'", want, got)
		}
	})

	t.Run("should format arguments correctly", func(t *testing.T) {
		if got, want := translator.T("welcome_user", "Ali"), "hello Ali"; got != want {
			t.Errorf("wanted '%s', got '%s'", want, got)
		}
	})
}

func TestEmbeddedEnglishLocale(t *testing.T) {
	tr, err := NewTranslator(LocalesFS, "en")
	if err != nil {
		t.Fatalf("NewTranslator(en): %v", err)
	}
	if got := tr.T("shortened_url", "https://short.ly/abc"); got != "Shortened URL: https://short.ly/abc" {
		t.Errorf("shortened_url: got %q", got)
	}
	if got := tr.T("welcome_message", "alice"); !strings.HasPrefix(got, "Hello, alice!") {
		t.Errorf("welcome_message: got %q", got)
	}
	for _, key := range []string{"token_saved", "usage_set_token", "error_token_missing", "error_shorten_failed", "help_message"} {
		if tr.T(key) == key {
			t.Errorf("key %s missing from en locale", key)
		}
	}
}

func TestNewTranslator_UnknownLanguage(t *testing.T) {
	if _, err := NewTranslator(LocalesFS, "xx"); err == nil {
		t.Fatal("expected error for missing locale")
	}
}
