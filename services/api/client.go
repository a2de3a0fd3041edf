// Package apisvc is the client of the Examcell results API.
//
// Every call reads the bearer token from the injected TokenProvider, negotiates JSON or HTML,
// and normalizes failures into *AuthError, *TransportError, *HTTPError or *DecodeError.
// Calls are single attempt: there is no retry and no backoff.
package apisvc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Sky-walkerX/Examcell/core"
)

const (
	loginEndpoint   = "/auth/login"
	mimeHTML        = "text/html"
	headerRequestID = "X-Request-ID"
)

type (
	// TokenProvider returns the bearer token of the current session, or "" when there is none.
	TokenProvider interface {
		Token(ctx context.Context) (string, error)
	}

	// StaticToken is a TokenProvider that always returns itself.
	StaticToken string

	Options struct {
		BaseURL    string
		Tokens     TokenProvider
		Logger     core.Logger
		HTTPClient *http.Client          // optional
		Timeout    time.Duration         // used when HTTPClient is nil
		Registerer prometheus.Registerer // optional; enables request metrics
	}

	Client struct {
		baseURL string
		tokens  TokenProvider
		logger  core.Logger
		http    *http.Client
		metrics *metrics
	}

	// Request describes a single API call.
	Request struct {
		Method     string // defaults to GET
		Endpoint   string // relative to the base URL, e.g. "/students"
		Body       Body   // nil, JSONBody or MultipartBody
		Header     http.Header
		AcceptHTML bool
	}
)

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

func NewClient(opts *Options) (*Client, error) {
	if opts == nil || opts.BaseURL == "" {
		return nil, errors.New("apisvc: base URL is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("apisvc: token provider is required")
	}
	if opts.Logger == nil {
		return nil, errors.New("apisvc: logger is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		tokens:  opts.Tokens,
		logger:  opts.Logger,
		http:    opts.HTTPClient,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Registerer != nil {
		m, err := newMetrics(opts.Registerer)
		if err != nil {
			return nil, err
		}
		c.metrics = m
	}
	return c, nil
}

// BaseURL returns the URL every endpoint is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req and decodes the response.
func (c *Client) Do(ctx context.Context, req Request) (resp *Response, err error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	endpoint := req.Endpoint
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	var start time.Time
	defer func() { c.metrics.observe(method, start, resp, err) }()

	login := isLoginEndpoint(endpoint)
	token, err := c.tokens.Token(ctx)
	switch {
	case err != nil && login:
		// an expired or unreadable session must not prevent logging in again
		c.logger.Debug("[api] logging in without the current session", err)
		token = ""
	case err != nil:
		c.logger.Error("[api] error getting session", err)
		return nil, &AuthError{Err: err}
	case token == "" && !login:
		c.logger.Warn(fmt.Sprintf("[api] no access token for request to %s", endpoint))
		return nil, &AuthError{Err: ErrNotAuthenticated}
	}

	httpReq, err := c.newRequest(ctx, method, endpoint, token, req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug(fmt.Sprintf("[api] requesting %s %s", method, endpoint))
	start = time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("[api] %s %s failed", method, endpoint), err)
		return nil, &TransportError{Method: method, Endpoint: endpoint, Err: err}
	}
	defer httpResp.Body.Close()

	resp, err = Decode(httpResp)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("[api] %s %s returned an error", method, endpoint), err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint, token string, req Request) (*http.Request, error) {
	header := make(http.Header, len(req.Header)+4)
	for key, vals := range req.Header {
		for _, val := range vals {
			header.Add(key, val)
		}
	}

	var body io.Reader
	if req.Body != nil {
		encoded, contentType, err := req.Body.encode()
		if err != nil {
			return nil, err
		}
		body = encoded
		if req.Body.ownsContentType() || header.Get("Content-Type") == "" {
			header.Set("Content-Type", contentType)
		}
	} else if header.Get("Content-Type") == "" {
		header.Set("Content-Type", mimeJSON)
	}

	if header.Get("Accept") == "" {
		if req.AcceptHTML {
			header.Set("Accept", mimeHTML)
		} else {
			header.Set("Accept", mimeJSON)
		}
	}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	if header.Get(headerRequestID) == "" {
		header.Set(headerRequestID, uuid.New().String())
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, errors.Wrapf(err, "building request %s %s", method, endpoint)
	}
	httpReq.Header = header
	return httpReq, nil
}

// FetchHTML GETs an endpoint that answers with HTML and returns the body untouched.
func (c *Client) FetchHTML(ctx context.Context, endpoint string) (string, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Endpoint: endpoint, AcceptHTML: true})
	if err != nil {
		return "", err
	}
	if resp.Kind != KindHTML {
		c.logger.Error(fmt.Sprintf("[api] expected HTML from %s, got %s", endpoint, resp.Kind))
		return "", ErrNotHTML
	}
	return resp.Text(), nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body Body, out interface{}) error {
	resp, err := c.Do(ctx, Request{Method: method, Endpoint: endpoint, Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.JSON(out)
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body Body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) put(ctx context.Context, endpoint string, body Body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) delete(ctx context.Context, endpoint string) error {
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}

// isLoginEndpoint matches the login path, optionally followed by a query or a sub path.
func isLoginEndpoint(endpoint string) bool {
	if !strings.HasPrefix(endpoint, loginEndpoint) {
		return false
	}
	rest := endpoint[len(loginEndpoint):]
	return rest == "" || rest[0] == '?' || rest[0] == '/'
}
