package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once
	pending      []prometheus.Collector
)

// register queues collectors from each file's init(): shortener, token store,
// telegram and build info.
func register(cs ...prometheus.Collector) {
	pending = append(pending, cs...)
}

// MustRegister adds the bot's collectors to the default registry. Calling it
// again is a no-op, so tests and main can both call it.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(pending...)
	})
}
