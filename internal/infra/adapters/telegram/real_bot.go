package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-link-shortener/internal/application"
	"telegram-link-shortener/internal/config"
	"telegram-link-shortener/internal/infra/logging"
	"telegram-link-shortener/internal/infra/metrics"
	"telegram-link-shortener/internal/infra/worker"
)

// Limiter throttles inbound traffic per chat. Optional.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RealTelegramBotAdapter long-polls the Bot API and delegates to BotFacade.
type RealTelegramBotAdapter struct {
	api         BotAPI
	cfg         *config.BotConfig
	facade      *application.BotFacade
	rateLimiter Limiter
	window      time.Duration
	log         *zerolog.Logger

	mu            sync.Mutex
	cancelPolling context.CancelFunc
}

// NewRealTelegramBotAdapter authenticates against the Bot API with cfg.Token.
// rateLimiter may be nil.
func NewRealTelegramBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, rateLimiter Limiter, window time.Duration, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	_ = tgbotapi.SetLogger(botLogger{log: logger})

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("username", bot.Self.UserName).Msg("authorized on telegram")
	return newAdapter(bot, cfg, facade, rateLimiter, window, logger)
}

func newAdapter(api BotAPI, cfg *config.BotConfig, facade *application.BotFacade, rateLimiter Limiter, window time.Duration, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RealTelegramBotAdapter{
		api:         api,
		cfg:         cfg,
		facade:      facade,
		rateLimiter: rateLimiter,
		window:      window,
		log:         logger,
	}, nil
}

// StartPolling blocks until ctx is cancelled or the update channel closes.
// Each update runs as its own task on a worker pool.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.api.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancelPolling = cancel
	r.mu.Unlock()
	defer cancel()

	pool := worker.NewPool(r.cfg.Workers, r.log)
	pool.Start(ctx)
	defer pool.Stop()

	for {
		select {
		case <-ctx.Done():
			r.api.StopReceivingUpdates()
			return ctx.Err()
		case up, ok := <-updates:
			if !ok {
				return nil
			}
			if err := pool.SubmitWait(ctx, updateChatID(up), func(ctx context.Context) error {
				return r.handleUpdate(ctx, up)
			}); err != nil && !errors.Is(err, context.Canceled) {
				r.log.Warn().Err(err).Int("update_id", up.UpdateID).Msg("update dropped")
			}
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// SendMessage sends plain text to a chat.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.api.Send(msg); err != nil {
		metrics.IncSendError()
		return err
	}
	return nil
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	message := update.Message
	if message == nil || message.Chat == nil || message.Text == "" {
		return nil
	}
	chatID := message.Chat.ID
	ctx = logging.WithChatID(logging.WithTraceID(ctx, uuid.NewString()), chatID)

	if message.IsCommand() {
		handler, ok := r.commandRoutes()[strings.ToLower(message.Command())]
		if !ok {
			return nil
		}
		command := "/" + strings.ToLower(message.Command())
		metrics.IncTelegramCommand(command)
		if !r.allow(ctx, chatID, command) {
			return r.SendMessage(ctx, chatID, r.facade.RateLimited(ctx))
		}
		return handler(ctx, message)
	}

	if !application.IsShortenable(message.Text) {
		return nil
	}
	metrics.IncTelegramCommand("url")
	if !r.allow(ctx, chatID, "url") {
		return r.SendMessage(ctx, chatID, r.facade.RateLimited(ctx))
	}
	reply := r.facade.HandleText(ctx, chatID, message.Text)
	if strings.TrimSpace(reply) == "" {
		return nil
	}
	return r.SendMessage(ctx, chatID, reply)
}

// allow fails open: a broken limiter never blocks users.
func (r *RealTelegramBotAdapter) allow(ctx context.Context, chatID int64, command string) bool {
	if r.rateLimiter == nil {
		return true
	}
	allowed, err := r.rateLimiter.Allow(ctx, chatCommandKey(chatID, command), r.cfg.RateLimit, r.window)
	if err != nil {
		logging.With(ctx, r.log).Warn().Err(err).Msg("rate limit check failed")
		return true
	}
	if !allowed {
		metrics.IncRateLimitTriggered()
	}
	return allowed
}

// updateChatID keys an update for the worker pool so one chat's updates
// are handled in arrival order.
func updateChatID(up tgbotapi.Update) int64 {
	if up.Message != nil && up.Message.Chat != nil {
		return up.Message.Chat.ID
	}
	return int64(up.UpdateID)
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return "there"
	}
	if u.UserName != "" {
		return u.UserName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return "there"
}
