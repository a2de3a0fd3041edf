package apisvc

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// outcome labels
const (
	outcomeJSON      = "json"
	outcomeHTML      = "html"
	outcomeEmpty     = "empty"
	outcomeAuth      = "auth_error"
	outcomeTransport = "transport_error"
	outcomeHTTP      = "http_error"
	outcomeDecode    = "decode_error"
	outcomeOther     = "error"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "examcell",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "examcell",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Time from sending an API request to decoding its response.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering client metrics")
		}
	}
	return m, nil
}

func (m *metrics) observe(method string, start time.Time, resp *Response, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcomeOf(resp, err)).Inc()
	if !start.IsZero() {
		m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}
}

func outcomeOf(resp *Response, err error) string {
	if err != nil {
		var (
			authErr      *AuthError
			transportErr *TransportError
			httpErr      *HTTPError
			decodeErr    *DecodeError
		)
		switch {
		case errors.As(err, &authErr):
			return outcomeAuth
		case errors.As(err, &transportErr):
			return outcomeTransport
		case errors.As(err, &httpErr):
			return outcomeHTTP
		case errors.As(err, &decodeErr):
			return outcomeDecode
		default:
			return outcomeOther
		}
	}
	switch resp.Kind {
	case KindHTML:
		return outcomeHTML
	case KindEmpty:
		return outcomeEmpty
	default:
		return outcomeJSON
	}
}
