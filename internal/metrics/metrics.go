// Package metrics exposes Prometheus metrics for notification rendering and
// foreground mode transitions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultDenied  = "denied"
)

// Foreground state labels
const (
	StateForeground = "foreground"
	StateBackground = "background"
)

var (
	// rendersTotal tracks artifact renders by result
	rendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keepalive_notification_renders_total",
			Help: "Total number of notification artifact renders",
		},
		[]string{"result"}, // result: success|failure
	)

	// iconFallbackTotal tracks renders that fell back to the default icon
	iconFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keepalive_notification_icon_fallback_total",
			Help: "Total number of renders that used the default icon",
		},
	)

	// categoryFailuresTotal tracks failed category upserts
	categoryFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keepalive_notification_category_failures_total",
			Help: "Total number of failed notification category registrations",
		},
	)

	// presentsTotal tracks pushes to the live display surface
	presentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keepalive_notification_presents_total",
			Help: "Total number of notifications pushed to the display surface",
		},
		[]string{"result"}, // result: success|denied|failure
	)

	// transitionsTotal tracks foreground mode transitions
	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keepalive_foreground_transitions_total",
			Help: "Total number of foreground mode transitions",
		},
		[]string{"to", "result"},
	)

	// foregroundState is 1 while the task runs in foreground mode
	foregroundState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "keepalive_foreground_state",
			Help: "1 while the task holds foreground execution, 0 otherwise",
		},
	)
)

// RecordRender records the outcome of an artifact render
func RecordRender(success bool) {
	rendersTotal.WithLabelValues(resultLabel(success)).Inc()
}

// RecordIconFallback records a render that fell back to the default icon
func RecordIconFallback() {
	iconFallbackTotal.Inc()
}

// RecordCategoryFailure records a failed category registration
func RecordCategoryFailure() {
	categoryFailuresTotal.Inc()
}

// RecordPresent records a push to the display surface.
// result is one of ResultSuccess, ResultDenied or ResultFailure.
func RecordPresent(result string) {
	presentsTotal.WithLabelValues(result).Inc()
}

// RecordTransition records an attempted transition into state to
func RecordTransition(to string, success bool) {
	transitionsTotal.WithLabelValues(to, resultLabel(success)).Inc()
}

// SetForeground updates the foreground state gauge
func SetForeground(foreground bool) {
	if foreground {
		foregroundState.Set(1)
		return
	}
	foregroundState.Set(0)
}

// Handler returns the HTTP handler serving the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

func resultLabel(success bool) string {
	if success {
		return ResultSuccess
	}
	return ResultFailure
}
