package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramCommandsReceivedTotal,
		telegramRateLimitTriggeredTotal,
		telegramSendErrorsTotal,
	)
}

var (
	telegramCommandsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Counts incoming messages and commands from users.",
		},
		[]string{"command"},
	)

	telegramRateLimitTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_rate_limit_triggered_total",
			Help: "Total number of times chats have been rate-limited.",
		},
	)

	telegramSendErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_send_errors_total",
			Help: "Outgoing messages the Bot API rejected.",
		},
	)
)

func IncTelegramCommand(command string) {
	telegramCommandsReceivedTotal.WithLabelValues(norm(command)).Inc()
}

func IncRateLimitTriggered() {
	telegramRateLimitTriggeredTotal.Inc()
}

func IncSendError() {
	telegramSendErrorsTotal.Inc()
}
