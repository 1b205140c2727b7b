package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(tokenStoreOpsTotal) }

var tokenStoreOpsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "token_store_ops_total",
		Help: "Token store operations by kind and result.",
	},
	[]string{"op", "result"}, // e.g., op="get", result="hit"
)

func IncStoreOp(op, result string) {
	tokenStoreOpsTotal.WithLabelValues(norm(op), norm(result)).Inc()
}
