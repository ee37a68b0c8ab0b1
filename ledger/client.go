package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

// TokenSource yields the credential to stamp on outgoing requests.
// An empty token means the request goes out without Authorization.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type anonymousKey struct{}

// anonymous marks a request as a credential exchange: it goes out without a
// bearer token and its 401/403 is the caller's answer, not a revoked session.
func anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey{}, true)
}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}

// DefaultHeadersTransport stamps JSON headers and the current bearer token on
// every request, and reports 401/403 responses to OnAuthFailure together with
// the token that request carried.
type DefaultHeadersTransport struct {
	Tokens        TokenSource
	OnAuthFailure func(token string, status int)
	T             http.RoundTripper
}

func (dht *DefaultHeadersTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	anon := isAnonymous(req.Context())
	token := ""
	if dht.Tokens != nil && !anon {
		token = dht.Tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	resp, err := dht.T.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if !anon && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		slog.Warn("authorization rejected", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		if dht.OnAuthFailure != nil {
			dht.OnAuthFailure(token, resp.StatusCode)
		}
	}
	return resp, nil
}

type Client struct {
	baseURL    string
	transport  *DefaultHeadersTransport
	httpClient *http.Client
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.transport.Tokens = tokens }
}

// WithAuthFailureHandler registers the callback run for any 401/403 response,
// whichever endpoint produced it. token is the credential the rejected request
// was sent with, empty if none.
func WithAuthFailureHandler(fn func(token string, status int)) Option {
	return func(c *Client) { c.transport.OnAuthFailure = fn }
}

// WithRoundTripper swaps the underlying transport, mostly for tests.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport.T = rt }
}

func NewClient(baseURL string, opts ...Option) *Client {
	transport := &DefaultHeadersTransport{T: http.DefaultTransport}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: transport,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// DoReq sends payload as JSON (when non-nil) and decodes a 2xx body into out
// (when non-nil). Non-2xx responses come back as *APIError.
func (c *Client) DoReq(ctx context.Context, method string, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		jsonStr, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonStr)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("api request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		slog.Error("api error", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}
