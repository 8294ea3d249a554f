package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// loadTimestamp is the Unix time of the last successful configuration load.
	loadTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "textdigest_config_load_timestamp_seconds",
		Help: "Unix timestamp of the last successful configuration load",
	})

	// validationErrorsTotal counts settings rejected by validation.
	validationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "textdigest_config_validation_errors_total",
		Help: "Total number of configuration validation errors by field",
	}, []string{"field"})

	// fallbacksTotal counts settings replaced by their default.
	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "textdigest_config_fallbacks_total",
		Help: "Total number of configuration values replaced by defaults, by key",
	}, []string{"key"})
)

// RecordLoad marks a successful configuration load.
func RecordLoad() {
	loadTimestamp.SetToCurrentTime()
}

// RecordValidationError counts a rejected setting.
func RecordValidationError(field string) {
	validationErrorsTotal.WithLabelValues(field).Inc()
}

// recordFallback counts a value replaced by its default.
func recordFallback(key string) {
	fallbacksTotal.WithLabelValues(key).Inc()
}
