package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	ActiveSessions prometheus.Gauge

	InboundEvents   *prometheus.CounterVec // kind label: text|location|media|list|button|timeout|unrecognized
	Transitions     *prometheus.CounterVec // step label
	SessionsExpired prometheus.Counter

	Submissions *prometheus.CounterVec // kind, outcome labels
	OutboundErrs prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "setrae_active_sessions",
			Help: "Number of conversations currently holding session state.",
		}),
		InboundEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "setrae_inbound_events_total",
			Help: "Total classified inbound events.",
		}, []string{"kind"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "setrae_step_transitions_total",
			Help: "Total step handler executions.",
		}, []string{"step"}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "setrae_sessions_expired_total",
			Help: "Sessions destroyed by the inactivity timer.",
		}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "setrae_submissions_total",
			Help: "Form submissions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		OutboundErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "setrae_outbound_errors_total",
			Help: "Failed outbound WhatsApp sends.",
		}),
	}

	reg.MustRegister(
		c.ActiveSessions,
		c.InboundEvents, c.Transitions, c.SessionsExpired,
		c.Submissions, c.OutboundErrs,
	)
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
