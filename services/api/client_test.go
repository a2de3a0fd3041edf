package apisvc

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sky-walkerX/Examcell/tests"
)

type tokenFunc func(ctx context.Context) (string, error)

func (f tokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// recordingServer answers every request with handler and keeps the last request seen.
type recordingServer struct {
	*httptest.Server
	hits int64

	mu      sync.Mutex
	last    *http.Request
	lastRaw []byte
}

func newRecordingServer(t *testing.T, handler http.HandlerFunc) *recordingServer {
	srv := new(recordingServer)
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&srv.hits, 1)
		body, _ := ioutil.ReadAll(r.Body)
		srv.mu.Lock()
		srv.last, srv.lastRaw = r, body
		srv.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (srv *recordingServer) Hits() int {
	return int(atomic.LoadInt64(&srv.hits))
}

func (srv *recordingServer) request() *http.Request {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.last
}

func (srv *recordingServer) body() []byte {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.lastRaw
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", mimeJSON)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newTestClient(t *testing.T, baseURL string, tokens TokenProvider) (*Client, *testutil.Logger) {
	logger := testutil.NewLogger()
	c, err := NewClient(&Options{BaseURL: baseURL, Tokens: tokens, Logger: logger, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return c, logger
}

func TestNewClient(t *testing.T) {
	logger := testutil.NewLogger()
	tests := []struct {
		name    string
		opts    *Options
		wantErr string
	}{
		{name: "nil options", wantErr: "apisvc: base URL is required"},
		{name: "no base URL", opts: &Options{Tokens: StaticToken("t"), Logger: logger}, wantErr: "apisvc: base URL is required"},
		{name: "no tokens", opts: &Options{BaseURL: "http://x", Logger: logger}, wantErr: "apisvc: token provider is required"},
		{name: "no logger", opts: &Options{BaseURL: "http://x", Tokens: StaticToken("t")}, wantErr: "apisvc: logger is required"},
		{name: "ok", opts: &Options{BaseURL: "http://x/api/", Tokens: StaticToken("t"), Logger: logger}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.opts)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://x/api", c.BaseURL())
		})
	}
}

func TestClient_Do_headers(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(200, `{"ok":true}`))
	c, _ := newTestClient(t, srv.URL+"/api", StaticToken("secret"))

	tests := []struct {
		name            string
		req             Request
		wantMethod      string
		wantPath        string
		wantContentType string
		wantAccept      string
	}{
		{
			name:            "defaults",
			req:             Request{Endpoint: "/students"},
			wantMethod:      http.MethodGet,
			wantPath:        "/api/students",
			wantContentType: mimeJSON,
			wantAccept:      mimeJSON,
		},
		{
			name:            "endpoint without slash",
			req:             Request{Method: "delete", Endpoint: "students/1"},
			wantMethod:      http.MethodDelete,
			wantPath:        "/api/students/1",
			wantContentType: mimeJSON,
			wantAccept:      mimeJSON,
		},
		{
			name:            "json body",
			req:             Request{Method: http.MethodPost, Endpoint: "/subjects", Body: JSONBody{Value: map[string]int{"credits": 3}}},
			wantMethod:      http.MethodPost,
			wantPath:        "/api/subjects",
			wantContentType: mimeJSON,
			wantAccept:      mimeJSON,
		},
		{
			name: "caller overrides",
			req: Request{
				Method:   http.MethodPut,
				Endpoint: "/subjects/CS101",
				Body:     JSONBody{Value: 1},
				Header:   http.Header{"Content-Type": {"application/merge-patch+json"}, "Accept": {"*/*"}},
			},
			wantMethod:      http.MethodPut,
			wantPath:        "/api/subjects/CS101",
			wantContentType: "application/merge-patch+json",
			wantAccept:      "*/*",
		},
		{
			name:            "html",
			req:             Request{Endpoint: "/reports/semester/Fall", AcceptHTML: true},
			wantMethod:      http.MethodGet,
			wantPath:        "/api/reports/semester/Fall",
			wantContentType: mimeJSON,
			wantAccept:      mimeHTML,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.Do(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, KindJSON, resp.Kind)

			got := srv.request()
			assert.Equal(t, tt.wantMethod, got.Method)
			assert.Equal(t, tt.wantPath, got.URL.Path)
			assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
			assert.Equal(t, tt.wantContentType, got.Header.Get("Content-Type"))
			assert.Equal(t, tt.wantAccept, got.Header.Get("Accept"))
			_, err = uuid.Parse(got.Header.Get(headerRequestID))
			assert.NoError(t, err, "request id must be a uuid")
		})
	}

	t.Run("json body is encoded", func(t *testing.T) {
		_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Endpoint: "/x", Body: JSONBody{Value: map[string]int{"credits": 3}}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"credits":3}`, string(srv.body()))
	})

	t.Run("request id is kept when provided", func(t *testing.T) {
		_, err := c.Do(context.Background(), Request{Endpoint: "/x", Header: http.Header{headerRequestID: {"abc"}}})
		require.NoError(t, err)
		assert.Equal(t, "abc", srv.request().Header.Get(headerRequestID))
	})
}

func TestClient_Do_multipart(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(200, `{"success":true}`))
	c, _ := newTestClient(t, srv.URL, StaticToken("secret"))

	for _, hdr := range []http.Header{nil, {"Content-Type": {mimeJSON}}} {
		body := MultipartBody{
			Fields: []FormField{{Name: "semester", Value: "Fall 2024"}},
			Files:  []FilePart{{Field: "file", Filename: "results.csv", Content: strings.NewReader("studentId\nSTU001\n")}},
		}
		_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Endpoint: "/uploads/results/csv", Body: body, Header: hdr})
		require.NoError(t, err)

		ct := srv.request().Header.Get("Content-Type")
		assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="), "got %q", ct)
		assert.NotContains(t, ct, mimeJSON)
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(srv.body())))
	req.Header.Set("Content-Type", srv.request().Header.Get("Content-Type"))
	require.NoError(t, req.ParseMultipartForm(1<<20))
	assert.Equal(t, "Fall 2024", req.FormValue("semester"))
	f, fh, err := req.FormFile("file")
	require.NoError(t, err)
	data, _ := ioutil.ReadAll(f)
	assert.Equal(t, "results.csv", fh.Filename)
	assert.Equal(t, "studentId\nSTU001\n", string(data))
}

func TestClient_Do_auth(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(200, `{}`))
	errStore := errors.New("session file is corrupted")

	tests := []struct {
		name      string
		tokens    TokenProvider
		endpoint  string
		wantCause error
		wantSent  bool
		wantAuthz string
	}{
		{name: "no token on protected endpoint", tokens: StaticToken(""), endpoint: "/students", wantCause: ErrNotAuthenticated},
		{name: "provider failure", tokens: tokenFunc(func(context.Context) (string, error) { return "", errStore }), endpoint: "/students", wantCause: errStore},
		{name: "provider failure on login", tokens: tokenFunc(func(context.Context) (string, error) { return "", errStore }), endpoint: "/auth/login", wantSent: true},
		{name: "login lookalike is protected", tokens: StaticToken(""), endpoint: "/auth/loginx", wantCause: ErrNotAuthenticated},
		{name: "no token on login", tokens: StaticToken(""), endpoint: "/auth/login", wantSent: true},
		{name: "token on login", tokens: StaticToken("t"), endpoint: "/auth/login", wantSent: true, wantAuthz: "Bearer t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, srv.URL, tt.tokens)
			hits := srv.Hits()

			_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Endpoint: tt.endpoint, Body: JSONBody{Value: 1}})
			if !tt.wantSent {
				var authErr *AuthError
				require.True(t, errors.As(err, &authErr), "got %v", err)
				assert.Equal(t, tt.wantCause, errors.Cause(err))
				assert.Contains(t, err.Error(), "failed to retrieve authentication session")
				assert.Equal(t, hits, srv.Hits(), "nothing must be sent")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, hits+1, srv.Hits())
			assert.Equal(t, tt.wantAuthz, srv.request().Header.Get("Authorization"))
		})
	}
}

func TestIsLoginEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		want     bool
	}{
		{endpoint: "/auth/login", want: true},
		{endpoint: "/auth/login?role=admin", want: true},
		{endpoint: "/auth/login/", want: true},
		{endpoint: "/auth/loginx"},
		{endpoint: "/auth/log"},
		{endpoint: "/students"},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, isLoginEndpoint(tt.endpoint))
		})
	}
}

func TestClient_Do_transport(t *testing.T) {
	t.Run("closed server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c, logger := newTestClient(t, url, StaticToken("t"))
		_, err := c.Do(context.Background(), Request{Endpoint: "/students"})

		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr), "got %v", err)
		assert.Equal(t, http.MethodGet, transportErr.Method)
		assert.Equal(t, "/students", transportErr.Endpoint)
		assert.True(t, strings.HasPrefix(err.Error(), "API call GET /students failed: "))
		assert.Len(t, logger.Entries("warn"), 1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := newRecordingServer(t, jsonHandler(200, `{}`))
		c, _ := newTestClient(t, srv.URL, StaticToken("t"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Do(ctx, Request{Endpoint: "/students"})
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr), "got %v", err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("invalid body", func(t *testing.T) {
		srv := newRecordingServer(t, jsonHandler(200, `{}`))
		c, _ := newTestClient(t, srv.URL, StaticToken("t"))

		_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Endpoint: "/x", Body: JSONBody{Value: make(chan int)}})
		assert.Equal(t, ErrInvalidBody, errors.Cause(err))
		assert.Equal(t, 0, srv.Hits())
	})
}

func TestClient_Do_outcomes(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind Kind
		wantErr  string
	}{
		{name: "json", handler: jsonHandler(200, `[]`), wantKind: KindJSON},
		{name: "no content", handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(204) }, wantKind: KindEmpty},
		{name: "not found", handler: jsonHandler(404, `{"message":"Not found"}`), wantErr: "Not found"},
		{name: "server error", handler: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(500)
			_, _ = w.Write([]byte("database is down"))
		}, wantErr: "API Error: 500 Internal Server Error - Response: database is down"},
		{name: "invalid json", handler: jsonHandler(200, `{"oops"`), wantErr: "received invalid JSON response from server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newRecordingServer(t, tt.handler)
			c, logger := newTestClient(t, srv.URL, StaticToken("t"))

			resp, err := c.Do(context.Background(), Request{Endpoint: "/x"})
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Len(t, logger.Entries("warn"), 1)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, resp.Kind)
			assert.Len(t, logger.Entries("debug"), 1)
		})
	}
}

func TestClient_FetchHTML(t *testing.T) {
	page := "<html><body><h1>Report</h1></body></html>"
	srv := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page))
			return
		}
		jsonHandler(200, `{"not":"html"}`)(w, r)
	})
	c, _ := newTestClient(t, srv.URL, StaticToken("t"))

	got, err := c.FetchHTML(context.Background(), "/html")
	require.NoError(t, err)
	assert.Equal(t, page, got)
	assert.Equal(t, mimeHTML, srv.request().Header.Get("Accept"))

	_, err = c.FetchHTML(context.Background(), "/json")
	assert.Equal(t, ErrNotHTML, err)
}

func TestClient_QueryRecentUploads_limit(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(200, `[]`))
	c, _ := newTestClient(t, srv.URL, StaticToken("t"))

	tests := []struct {
		limit int
		want  string
	}{
		{limit: 0, want: "5"},
		{limit: -3, want: "5"},
		{limit: 12, want: "12"},
	}
	for _, tt := range tests {
		uploads, err := c.QueryRecentUploads(context.Background(), tt.limit)
		require.NoError(t, err)
		assert.NotNil(t, uploads)
		assert.Equal(t, tt.want, srv.request().URL.Query().Get("limit"))
	}
}

func TestClient_pathEscaping(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(200, `[]`))
	c, _ := newTestClient(t, srv.URL, StaticToken("t"))

	_, err := c.QueryResultsBySemester(context.Background(), "Fall 2024/Q1")
	require.NoError(t, err)
	assert.Equal(t, "/results/semester/Fall%202024%2FQ1", srv.request().URL.EscapedPath())
}
