package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	entryCreations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_entry_creations_total",
		Help: "Number of entry creation attempts grouped by status.",
	}, []string{"status"})

	txRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "daybook_tx_retries_total",
		Help: "Number of transaction retries after retryable MySQL errors.",
	})

	uploadFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_upload_files_total",
		Help: "Number of processed upload files grouped by outcome.",
	}, []string{"outcome"})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncEntryCreation increments the entry creation counter.
func IncEntryCreation(status string) {
	entryCreations.WithLabelValues(status).Inc()
}

// IncTxRetry increments the transaction retry counter.
func IncTxRetry() {
	txRetries.Inc()
}

// IncUpload increments the upload outcome counter.
func IncUpload(outcome string) {
	uploadFiles.WithLabelValues(outcome).Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
