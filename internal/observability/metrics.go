package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	completionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "task_manager",
		Subsystem: "progress",
		Name:      "completions_recorded_total",
		Help:      "Number of progress records written.",
	})
	duplicateCompletionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "task_manager",
		Subsystem: "progress",
		Name:      "duplicate_completions_total",
		Help:      "Completions rejected because the activity was already completed that day.",
	})
	lastCompletionGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "task_manager",
		Subsystem: "progress",
		Name:      "last_completion_timestamp_seconds",
		Help:      "Unix timestamp of the most recent progress record written.",
	})
	registrationsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "task_manager",
		Subsystem: "users",
		Name:      "registrations_total",
		Help:      "Number of users registered.",
	})
	statsCacheCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "task_manager",
		Subsystem: "stats",
		Name:      "cache_lookups_total",
		Help:      "Completion statistics cache lookups by result.",
	}, []string{"result"})
	sideEffectErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "task_manager",
		Subsystem: "integrations",
		Name:      "errors_total",
		Help:      "Failed best-effort calls to redis, elasticsearch or rabbitmq.",
	}, []string{"integration"})
	rateLimitedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "task_manager",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter by route.",
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(completionsCounter, duplicateCompletionsCounter, lastCompletionGauge,
		registrationsCounter, statsCacheCounter, sideEffectErrorCounter, rateLimitedCounter)
}

func RecordCompletion(ts time.Time) {
	completionsCounter.Inc()
	if !ts.IsZero() {
		lastCompletionGauge.Set(float64(ts.Unix()))
	}
}

func RecordDuplicateCompletion() { duplicateCompletionsCounter.Inc() }

func RecordRegistration() { registrationsCounter.Inc() }

// RecordStatsCache counts a lookup; hit=false covers misses and cache errors.
func RecordStatsCache(hit bool) {
	if hit {
		statsCacheCounter.WithLabelValues("hit").Inc()
		return
	}
	statsCacheCounter.WithLabelValues("miss").Inc()
}

// RecordIntegrationError counts a failed best-effort call, e.g. "elasticsearch".
func RecordIntegrationError(integration string) {
	sideEffectErrorCounter.WithLabelValues(integration).Inc()
}

func RecordRateLimited(route string) { rateLimitedCounter.WithLabelValues(route).Inc() }
