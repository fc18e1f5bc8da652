// Package metrics defines and registers all custom Prometheus metrics for the
// feedback API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feedback"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Feedback metrics ──────────────────────────────────────────────────────────

// FeedbackCreatedTotal counts feedback records written.
// Labels:
//   - sentiment: "positive", "neutral" or "constructive"
//   - author_role: role of the author ("manager" or "employee" for peer feedback)
var FeedbackCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of feedback records created.",
	},
	[]string{"sentiment", "author_role"},
)

// FeedbackAcknowledgedTotal counts successful acknowledgments, repeats included.
var FeedbackAcknowledgedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "acknowledged_total",
		Help:      "Total number of feedback acknowledgments.",
	},
)

// FeedbackRequestsTotal counts employee requests for manager feedback.
// Label:
//   - result: "sent", "throttled" or "failed"
var FeedbackRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of feedback request emails, labelled by outcome.",
	},
	[]string{"result"},
)

// Result returns the conventional result label for err.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
