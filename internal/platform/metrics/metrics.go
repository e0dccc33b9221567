// Package metrics exposes Prometheus collectors for upstream calls, board builds and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Registry owns a private Prometheus registry. A nil *Registry is a valid no-op.
type Registry struct {
	registry *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	CircuitState     *prometheus.GaugeVec
	BoardBuilds      *prometheus.CounterVec
	BoardGames       prometheus.Gauge
	CacheLookups     *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPLatency      *prometheus.HistogramVec
}

func New(namespace string) *Registry {
	registry := prometheus.NewRegistry()

	r := &Registry{
		registry: registry,

		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Requests sent to the odds provider",
			},
			[]string{"endpoint", "outcome"},
		),
		UpstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Odds provider request latency",
				Buckets:   prometheus.ExponentialBuckets(0.025, 2, 10), // 25ms to ~12.8s
			},
			[]string{"endpoint"},
		),
		CircuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "upstream_circuit_state",
				Help:      "Odds provider circuit breaker state: 0 closed, 1 half open, 2 open",
			},
			[]string{"name"},
		),
		BoardBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "board_builds_total",
				Help:      "Board refreshes against the provider",
			},
			[]string{"outcome"},
		),
		BoardGames: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "board_games",
				Help:      "Games on the most recently built board",
			},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "board_cache_lookups_total",
				Help:      "Board snapshot cache lookups",
			},
			[]string{"result"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.UpstreamRequests,
		r.UpstreamLatency,
		r.CircuitState,
		r.BoardBuilds,
		r.BoardGames,
		r.CacheLookups,
		r.HTTPRequests,
		r.HTTPLatency,
	)

	return r
}

func (r *Registry) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Registry) ObserveUpstream(endpoint string, err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.UpstreamRequests.WithLabelValues(endpoint, outcome(err)).Inc()
	r.UpstreamLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveCircuit records a breaker state given as "closed", "half_open" or "open".
func (r *Registry) ObserveCircuit(name, state string) {
	if r == nil {
		return
	}
	value := 0.0
	switch state {
	case "half_open":
		value = 1
	case "open":
		value = 2
	}
	r.CircuitState.WithLabelValues(name).Set(value)
}

func (r *Registry) ObserveBoardBuild(err error, games int) {
	if r == nil {
		return
	}
	r.BoardBuilds.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		r.BoardGames.Set(float64(games))
	}
}

func (r *Registry) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CacheLookups.WithLabelValues(result).Inc()
}

func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
