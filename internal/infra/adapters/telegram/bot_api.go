package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// BotAPI is the slice of *tgbotapi.BotAPI the adapter uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

var _ BotAPI = (*tgbotapi.BotAPI)(nil)

// botLogger routes tgbotapi's internal logging (poll errors, retries) to zerolog.
type botLogger struct {
	log *zerolog.Logger
}

func (l botLogger) Println(v ...interface{}) {
	l.log.Warn().Str("component", "tgbotapi").Msg(fmt.Sprint(v...))
}

func (l botLogger) Printf(format string, v ...interface{}) {
	l.log.Warn().Str("component", "tgbotapi").Msgf(format, v...)
}
