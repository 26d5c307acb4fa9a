// Package api is the uniform dispatch point for every call the dashboard
// makes to its backing REST API. It attaches the bearer credential, tags each
// request with an ID, normalizes errors into the three kinds the controllers
// understand, and tells the session layer when the credential is rejected.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"finboard/internal/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TokenSource provides the current bearer token, empty when logged out. The
// session store satisfies this.
type TokenSource interface {
	Token() string
}

// Client wraps outbound HTTP calls. Requests are stateless apart from the
// credential; the client performs no retries and applies no timeout (callers
// cancel through the context).
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	logger  *log.Logger

	onAuthExpired func(context.Context)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithRateLimit throttles outbound requests to r per second with the given
// burst. Zero r disables the limiter.
func WithRateLimit(r float64, burst int) Option {
	return func(c *Client) {
		if r > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(r), burst)
		}
	}
}

// WithAuthExpiredHandler sets the hook invoked when the server rejects the
// credential. The session store's AuthExpired method goes here; it must run
// before the error reaches the caller so the route guard already sees a
// cleared session on its next evaluation.
func WithAuthExpiredHandler(fn func(context.Context)) Option {
	return func(c *Client) { c.onAuthExpired = fn }
}

// WithLogger sets the client logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger.WithComponent(log.ComponentAPI) }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		tokens:  tokens,
		logger:  log.New(log.DefaultConfig()).WithComponent(log.ComponentAPI),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the JSON envelope the server uses for failures. Both shapes
// are seen in the wild, so both are tried.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// do issues one request. The bearer token is read exactly once, before
// dispatch, so a login or logout mid-flight cannot split a request across two
// credentials. out may be nil for calls whose response body is ignored.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Err: err}
		}
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Status: 0, Message: "encode request body: " + err.Error()}
		}
		reqBody = bytes.NewReader(encoded)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return &RequestError{Status: 0, Message: "build request: " + err.Error()}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("Request failed before a response arrived",
			log.FieldMethod, method, log.FieldPath, path,
			log.FieldRequestID, requestID, log.FieldError, err.Error())
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		msg := readErrorMessage(resp.Body)
		c.logger.Warn("Credential rejected",
			log.FieldMethod, method, log.FieldPath, path,
			log.FieldStatusCode, resp.StatusCode, log.FieldRequestID, requestID)
		if c.onAuthExpired != nil {
			c.onAuthExpired(ctx)
		}
		return &AuthError{Status: resp.StatusCode, Message: msg}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp.Body)
		c.logger.Debug("Request failed",
			log.FieldMethod, method, log.FieldPath, path,
			log.FieldStatusCode, resp.StatusCode, log.FieldRequestID, requestID)
		return &RequestError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Status: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}
	return body.text()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodPatch, path, query, nil, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
