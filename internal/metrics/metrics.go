// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"

	StatusSuccess  = "success"
	StatusFailure  = "failure"
	StatusRejected = "rejected"
)

var (
	Validations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_validations_total",
			Help: "Total number of full record validations by outcome",
		},
		[]string{"outcome"},
	)

	PDFRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_pdf_renders_total",
			Help: "Total number of PDF renders by status",
		},
		[]string{"status"},
	)

	PDFRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_pdf_render_duration_seconds",
			Help:    "Duration of PDF renders in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
)

// ObserveValidation counts one full validation.
func ObserveValidation(valid bool) {
	if valid {
		Validations.WithLabelValues(OutcomeValid).Inc()
		return
	}
	Validations.WithLabelValues(OutcomeInvalid).Inc()
}
