// Package metrics holds the Prometheus registry and the instrument sets
// for the server. Constructors return nil when metrics are disabled
// (InitRegistry not called) and every method is nil-safe, so call sites
// never branch on whether metrics are on.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mu       sync.Mutex
	registry *prometheus.Registry
	enabled  bool
)

// InitRegistry creates the process-wide registry with the standard Go and
// process collectors. Must be called before any instrument constructor,
// typically once at server startup when metrics are enabled in config.
func InitRegistry() {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return
	}

	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	enabled = true
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// GetRegistry returns the registry. Nil until InitRegistry is called.
func GetRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}

// Handler returns the /metrics HTTP handler for the registry.
func Handler() http.Handler {
	reg := GetRegistry()
	if reg == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
