package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	SigningRecordsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emargement_signing_records_created_total",
			Help: "Signing opportunities created, by mode and origin",
		},
		[]string{"mode", "origin"},
	)

	SignaturesSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emargement_signatures_submitted_total",
			Help: "Signature submissions, by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	NotificationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "emargement_notification_failures_total",
			Help: "Signing links that could not be handed to the notification sender",
		},
	)

	TokenVerificationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "emargement_token_verification_failures_total",
			Help: "Rejected signing tokens",
		},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "emargement_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	registerOnce sync.Once
)

// Register registers all Prometheus metrics once
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SigningRecordsCreatedTotal)
		prometheus.MustRegister(SignaturesSubmittedTotal)
		prometheus.MustRegister(NotificationFailuresTotal)
		prometheus.MustRegister(TokenVerificationFailuresTotal)
		prometheus.MustRegister(HTTPRequestDuration)
	})
}
