// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"telegram-link-shortener/internal/application"
	"telegram-link-shortener/internal/config"
	"telegram-link-shortener/internal/infra/adapters/shortener"
	tele "telegram-link-shortener/internal/infra/adapters/telegram"
	"telegram-link-shortener/internal/infra/db/jsonfile"
	httpapi "telegram-link-shortener/internal/infra/http"
	"telegram-link-shortener/internal/infra/i18n"
	"telegram-link-shortener/internal/infra/logging"
	"telegram-link-shortener/internal/infra/metrics"
	red "telegram-link-shortener/internal/infra/redis"
	"telegram-link-shortener/internal/usecase"

	"github.com/rs/zerolog/log"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Token store ----
	store := jsonfile.NewTokenRepo(cfg.Store.Path, logger)

	// ---- Shortening API ----
	sh, err := shortener.NewAdLinkFlyAdapter(cfg.Shortener, &http.Client{})
	if err != nil {
		logger.Fatal().Err(err).Msg("shortener adapter")
	}
	logger.Info().
		Str("base_url", cfg.Shortener.BaseURL).
		Str("result_field", cfg.Shortener.ResultField).
		Bool("raw_query", cfg.Shortener.RawQuery).
		Msg("shortener configured")

	// ---- Redis (optional, rate limiting only) ----
	var limiter tele.Limiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
		logger.Info().Int("limit", cfg.Bot.RateLimit).Dur("window", cfg.Redis.Window).Msg("rate limiting enabled")
	}

	// ---- Use cases ----
	tokenUC := usecase.NewTokenUseCase(store, logger, cfg.Runtime.Dev)
	shortenUC := usecase.NewShortenUseCase(tokenUC, sh, logger)

	// ---- Facade ----
	tr, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Bot.Language)
	if err != nil {
		logger.Fatal().Err(err).Msg("translator")
	}
	facade := application.NewBotFacade(tokenUC, shortenUC, tr, logger)

	// ---- HTTP liveness server ----
	srv := httpapi.NewServer(&cfg.HTTP, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, limiter, cfg.Redis.Window, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	if cfg.Bot.Mode != "polling" {
		logger.Warn().Str("mode", cfg.Bot.Mode).Msg("bot mode not implemented; falling back to polling")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Graceful shutdown ----
	<-ctx.Done()
	logger.Info().Msg("shutdown requested")
	botAdapter.StopPolling()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
