package newsletter

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts workflow outcomes. A nil *Metrics records nothing.
type Metrics struct {
	signups       *prometheus.CounterVec
	confirmations *prometheus.CounterVec
	deliveries    *prometheus.CounterVec
	skipped       prometheus.Counter
}

// NewMetrics creates the newsletter collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsletter_signups_total",
			Help: "Signup attempts by outcome",
		}, []string{"outcome"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsletter_confirmations_total",
			Help: "Confirmation attempts by outcome",
		}, []string{"outcome"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsletter_issue_deliveries_total",
			Help: "Newsletter issue sends by outcome",
		}, []string{"outcome"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_skipped_records_total",
			Help: "Confirmed subscriber records skipped because they failed validation",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.signups, m.confirmations, m.deliveries, m.skipped)
	}
	return m
}

func (m *Metrics) signup(outcome string) {
	if m != nil {
		m.signups.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) confirmation(outcome string) {
	if m != nil {
		m.confirmations.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) delivery(outcome string) {
	if m != nil {
		m.deliveries.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) skip() {
	if m != nil {
		m.skipped.Inc()
	}
}

// outcome turns a workflow error into a metric label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrMailFailure):
		return "mail_failure"
	default:
		return "store_failure"
	}
}
