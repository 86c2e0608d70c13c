package telemetry

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mohammad-safakhou/webchat/config"
)

// Telemetry provides structured logging plus prometheus counters for the
// question-answering pipeline. When disabled, nothing is registered and all
// record methods are no-ops, which also keeps tests away from the default
// registry.
type Telemetry struct {
	enabled bool
	logger  *log.Logger

	turnsTotal         *prometheus.CounterVec
	turnDuration       prometheus.Histogram
	searchRequests     prometheus.Counter
	searchFailures     prometheus.Counter
	fetchAttempts      prometheus.Counter
	fetchFailures      prometheus.Counter
	synthesisFallbacks prometheus.Counter
}

// NewTelemetry creates a new telemetry instance
func NewTelemetry(cfg config.TelemetryConfig) *Telemetry {
	t := &Telemetry{
		enabled: cfg.Enabled,
		logger:  log.New(log.Writer(), "[TELEMETRY] ", log.LstdFlags),
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webchat_turns_total",
			Help: "Completed conversation turns by classified intent.",
		}, []string{"intent"}),
		turnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "webchat_turn_duration_seconds",
			Help:    "Wall time spent processing one turn.",
			Buckets: prometheus.DefBuckets,
		}),
		searchRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webchat_search_requests_total",
			Help: "Web search API calls issued.",
		}),
		searchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webchat_search_failures_total",
			Help: "Web search API calls that errored and degraded to zero results.",
		}),
		fetchAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webchat_fetch_attempts_total",
			Help: "Candidate page fetches attempted.",
		}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webchat_fetch_failures_total",
			Help: "Candidate page fetches skipped after an error.",
		}),
		synthesisFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webchat_synthesis_fallbacks_total",
			Help: "Turns answered with the apology string after a model failure.",
		}),
	}
	if cfg.Enabled {
		prometheus.MustRegister(
			t.turnsTotal, t.turnDuration,
			t.searchRequests, t.searchFailures,
			t.fetchAttempts, t.fetchFailures,
			t.synthesisFallbacks,
		)
	}
	return t
}

func (t *Telemetry) RecordTurn(intent string, d time.Duration) {
	if !t.enabled {
		return
	}
	t.turnsTotal.WithLabelValues(intent).Inc()
	t.turnDuration.Observe(d.Seconds())
	t.logger.Printf("turn intent=%s duration=%s", intent, d)
}

func (t *Telemetry) RecordSearch(err error, results int) {
	if !t.enabled {
		return
	}
	t.searchRequests.Inc()
	if err != nil {
		t.searchFailures.Inc()
		t.logger.Printf("search failed: %v", err)
		return
	}
	t.logger.Printf("search returned %d results", results)
}

func (t *Telemetry) RecordFetch(err error) {
	if !t.enabled {
		return
	}
	t.fetchAttempts.Inc()
	if err != nil {
		t.fetchFailures.Inc()
	}
}

func (t *Telemetry) RecordSynthesisFallback() {
	if !t.enabled {
		return
	}
	t.synthesisFallbacks.Inc()
}
