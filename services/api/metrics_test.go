package apisvc

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sky-walkerX/Examcell/tests"
)

func TestClient_metrics(t *testing.T) {
	srv := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			jsonHandler(404, `{"message":"Student not found with id: X"}`)(w, r)
		case "/gone":
			w.WriteHeader(http.StatusNoContent)
		default:
			jsonHandler(200, `{}`)(w, r)
		}
	})

	reg := prometheus.NewRegistry()
	c, err := NewClient(&Options{
		BaseURL:    srv.URL,
		Tokens:     StaticToken("secret"),
		Logger:     testutil.NewLogger(),
		Timeout:    5 * time.Second,
		Registerer: reg,
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = c.Do(ctx, Request{Endpoint: "/ok"})
	_, _ = c.Do(ctx, Request{Endpoint: "/ok"})
	_, _ = c.Do(ctx, Request{Endpoint: "/missing"})
	_, _ = c.Do(ctx, Request{Method: http.MethodDelete, Endpoint: "/gone"})

	assert.Equal(t, 2.0, promtest.ToFloat64(c.metrics.requests.WithLabelValues("GET", outcomeJSON)))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.metrics.requests.WithLabelValues("GET", outcomeHTTP)))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.metrics.requests.WithLabelValues("DELETE", outcomeEmpty)))
	assert.Equal(t, 2, promtest.CollectAndCount(c.metrics.duration))

	t.Run("registering twice fails", func(t *testing.T) {
		_, err := NewClient(&Options{
			BaseURL:    srv.URL,
			Tokens:     StaticToken("secret"),
			Logger:     testutil.NewLogger(),
			Registerer: reg,
		})
		assert.Error(t, err)
	})
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		err  error
		want string
	}{
		{name: "json", resp: &Response{Kind: KindJSON}, want: outcomeJSON},
		{name: "html", resp: &Response{Kind: KindHTML}, want: outcomeHTML},
		{name: "empty", resp: &Response{Kind: KindEmpty}, want: outcomeEmpty},
		{name: "auth", err: &AuthError{Err: ErrNotAuthenticated}, want: outcomeAuth},
		{name: "transport", err: &TransportError{Err: context.Canceled}, want: outcomeTransport},
		{name: "http", err: &HTTPError{Status: 500}, want: outcomeHTTP},
		{name: "decode", err: &DecodeError{Err: ErrInvalidResponse}, want: outcomeDecode},
		{name: "other", err: ErrInvalidBody, want: outcomeOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outcomeOf(tt.resp, tt.err))
		})
	}
}

func TestMetrics_nilIsSafe(t *testing.T) {
	var m *metrics
	assert.NotPanics(t, func() {
		m.observe("GET", time.Now(), &Response{Kind: KindJSON}, nil)
	})
}
