// Package api implements the HTTP client for the CareLink backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HamdySalah/carelink/internal/errs"
)

// maxBodyBytes caps how much of a response body is buffered.
const maxBodyBytes = 4 << 20

// TokenSource supplies the bearer token for authenticated calls.
// An empty token with nil error means "call anonymously".
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() (string, error)

func (f TokenFunc) Token() (string, error) { return f() }

// Client wraps the REST backend: it attaches auth headers, unwraps the
// backend's inconsistent success envelopes and classifies every failure
// into the errs taxonomy before returning it.
type Client struct {
	baseURL    string
	http       *http.Client
	token      TokenSource
	classifier errs.Classifier
	dispatcher *errs.Dispatcher
	onUnauth   func()
	log        *zap.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithTokenSource installs the bearer token provider.
func WithTokenSource(ts TokenSource) Option { return func(c *Client) { c.token = ts } }

// WithDispatcher injects the error dispatcher (default: errs.Default()).
func WithDispatcher(d *errs.Dispatcher) Option { return func(c *Client) { c.dispatcher = d } }

// WithLogger sets the structured logger used for request and
// classification logging.
func WithLogger(log *zap.Logger) Option { return func(c *Client) { c.log = log } }

// WithUnauthorizedHook installs the session collaborator invoked on any
// HTTP 401 (clears stored credentials, prompts re-login).
func WithUnauthorizedHook(fn func()) Option { return func(c *Client) { c.onUnauth = fn } }

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.http.Timeout = d } }

// New constructs a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       newHTTPClient(),
		dispatcher: errs.Default(),
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.classifier = errs.NewHTTPClassifier(c.log)
	return c
}

// newHTTPClient builds the default tuned transport.
func newHTTPClient() *http.Client {
	d := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           d.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: tr, Timeout: 30 * time.Second}
}

// do performs one request/response cycle. A non-nil in is sent as JSON;
// a non-nil out receives the normalized payload. Failures come back as
// *errs.ClassifiedError, already dispatched.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		tok, err := c.token.Token()
		if err != nil {
			return err
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.dispatcher.Dispatch(c.classifier.ClassifyTransport(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.dispatcher.Dispatch(c.classifier.ClassifyTransport(err))
	}

	c.log.Debug("http",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauth != nil {
			c.onUnauth()
		}
		ce := c.classifier.Classify(resp.StatusCode, raw, statusText(resp))
		return c.dispatcher.Dispatch(ce)
	}

	if out == nil {
		return nil
	}
	payload := normalize(raw, resp.Header.Get("Content-Type"))
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, in, out)
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	s := resp.Status
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[i+1:]
	}
	return s
}

// query renders values as a query-string suffix, empty when no values set.
func query(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
