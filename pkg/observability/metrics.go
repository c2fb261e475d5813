package observability

import (
	"context"
	"errors"

	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors of the waitlist.
type Metrics struct {
	submissions   *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	registered    prometheus.Gauge
	serverResults *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_submissions_total",
				Help: "Registration submissions by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waitlist_submission_duration_seconds",
				Help:    "Duration of registration submissions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "waitlist_registered",
			Help: "Registrations currently held",
		}),
		serverResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_server_registrations_total",
				Help: "Registration requests handled by the waitlist API by outcome",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.submissions, m.duration, m.registered, m.serverResults} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Outcome classifies a submission error for metric labels.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	var regErr *domain.RegistrationError
	if errors.As(err, &regErr) {
		return string(regErr.Kind)
	}
	return "other"
}

// Hooks records flow events.
func (m *Metrics) Hooks() domain.FlowHooks {
	return domain.FlowHooks{
		OnResult: func(ctx context.Context, e *domain.SubmitEvent) {
			outcome := Outcome(e.Err)
			m.submissions.WithLabelValues(outcome).Inc()
			m.duration.WithLabelValues(outcome).Observe(e.Duration.Seconds())
		},
	}
}

// SetRegistered reports how many registrations are held.
func (m *Metrics) SetRegistered(n int) {
	m.registered.Set(float64(n))
}

// ObserveServerRegistration counts one request handled by the waitlist API.
func (m *Metrics) ObserveServerRegistration(outcome string) {
	m.serverResults.WithLabelValues(outcome).Inc()
}
