package obs

import (
	"context"
	"strconv"

	"github.com/NordCoder/webping/internal/ping"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// LogObserver writes one log line per finished or rejected probe and a debug
// line per step. Lines carry the trace ids of the probe span.
type LogObserver struct {
	Log *zap.Logger
}

func (o LogObserver) Observe(ctx context.Context, e ping.Event) {
	if o.Log == nil {
		return
	}
	l := WithTrace(ctx, o.Log).With(zap.String("url", e.URL))

	switch e.Kind {
	case ping.EventStarted:
		l.Debug("ping started")
	case ping.EventResponse:
		l.Debug("ping response", zap.Int("status", e.StatusCode))
	case ping.EventRejected:
		l.Warn("ping rejected", zap.Error(e.Err))
	case ping.EventFinished:
		if e.Result == nil {
			return
		}
		fields := resultFields(*e.Result)
		if e.Result.Err != nil {
			l.Warn("ping failed", append(fields, zap.Error(e.Result.Err))...)
			return
		}
		l.Info("ping finished", fields...)
	}
}

func resultFields(r ping.Result) []zap.Field {
	fields := []zap.Field{
		zap.String("outcome", r.Outcome.String()),
		zap.Bool("timed_out", r.TimedOut),
	}
	if r.ResponseCode != nil {
		fields = append(fields, zap.Int("status", *r.ResponseCode))
	}
	if r.RequestTime != nil {
		fields = append(fields, zap.Duration("elapsed", *r.RequestTime))
	}
	if r.ResponseSize != nil {
		fields = append(fields, zap.Int64("size", *r.ResponseSize))
	}
	if r.HasExpectedString != nil {
		fields = append(fields, zap.Bool("has_expected_string", *r.HasExpectedString))
	}
	return fields
}

// PingMetrics exports probe counters and latency.
type PingMetrics struct {
	pings    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	codes    *prometheus.CounterVec
	rejected prometheus.Counter
	inFlight prometheus.Gauge
}

func NewPingMetrics(reg prometheus.Registerer) *PingMetrics {
	f := promauto.With(reg)
	return &PingMetrics{
		pings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "webping_pings_total",
			Help: "Probes finished, by outcome.",
		}, []string{"outcome"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "webping_latency_seconds",
			Help:    "Elapsed time of dispatched probes.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
		codes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "webping_response_codes_total",
			Help: "Responses received, by status class.",
		}, []string{"class"}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Name: "webping_rejected_total",
			Help: "Probe requests rejected before any network I/O.",
		}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "webping_in_flight",
			Help: "Probes currently running.",
		}),
	}
}

func (m *PingMetrics) Observe(_ context.Context, e ping.Event) {
	switch e.Kind {
	case ping.EventStarted:
		m.inFlight.Inc()
	case ping.EventRejected:
		m.rejected.Inc()
	case ping.EventFinished:
		m.inFlight.Dec()
		if e.Result == nil {
			return
		}
		r := e.Result
		outcome := r.Outcome.String()
		m.pings.WithLabelValues(outcome).Inc()
		if r.RequestTime != nil {
			m.latency.WithLabelValues(outcome).Observe(r.RequestTime.Seconds())
		}
		if r.ResponseCode != nil {
			m.codes.WithLabelValues(StatusClass(*r.ResponseCode)).Inc()
		}
	}
}

// StatusClass returns the label of code's class, e.g. "2xx" for 204.
func StatusClass(code int) string {
	if code < 100 || code > 999 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}
