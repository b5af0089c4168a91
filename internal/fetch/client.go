package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Defaults used when an Options field is zero.
const (
	defaultConnectTimeout = 5 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultBaseDelay      = 2 * time.Second
	defaultMaxAttempts    = 3
	defaultRatePerSec     = 4.0
)

// Options configures a Client.
type Options struct {
	// ConnectTimeout bounds connection establishment for each attempt.
	ConnectTimeout time.Duration

	// RequestTimeout bounds the whole request for each attempt. Enforced
	// independently of ConnectTimeout; exceeding either counts as a
	// transport failure for retry purposes.
	RequestTimeout time.Duration

	// BaseDelay is the wait before the second attempt. Doubles per attempt.
	BaseDelay time.Duration

	// MaxAttempts is the total number of attempts per request.
	MaxAttempts int

	// RatePerSec caps the outbound request rate, counting retries.
	RatePerSec float64
}

// Client executes HTTP requests with bounded retry and backoff.
// Safe for concurrent use; the pipeline currently calls it sequentially.
type Client struct {
	hc          *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseDelay   time.Duration

	// sleep is swapped out in tests to observe backoff without waiting.
	sleep func(time.Duration)
}

// New builds a Client from opts, filling zero fields with defaults.
func New(opts Options) *Client {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = defaultRatePerSec
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: opts.ConnectTimeout}).DialContext,
	}
	burst := int(opts.RatePerSec)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		hc: &http.Client{
			Transport: transport,
			Timeout:   opts.RequestTimeout,
		},
		limiter:     rate.NewLimiter(rate.Limit(opts.RatePerSec), burst),
		maxAttempts: opts.MaxAttempts,
		baseDelay:   opts.BaseDelay,
		sleep:       time.Sleep,
	}
}

// Do executes req with retries and returns the last response body and whether
// the request ultimately succeeded with a 2xx status.
//
// Requests with a body must be built with http.NewRequest (or otherwise carry
// GetBody) so the body can be replayed on retry.
func (c *Client) Do(ctx context.Context, req *http.Request) ([]byte, bool) {
	delay := c.baseDelay
	var lastBody []byte

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.sleep(delay)
			delay *= 2
		}
		if err := c.limiter.Wait(ctx); err != nil {
			slog.Warn("fetch: rate limiter interrupted", "url", req.URL.String(), "err", err)
			return lastBody, false
		}

		attemptReq, err := replay(ctx, req)
		if err != nil {
			slog.Warn("fetch: cannot rebuild request body", "url", req.URL.String(), "err", err)
			return lastBody, false
		}

		resp, err := c.hc.Do(attemptReq)
		if err != nil {
			// Transport failure: dial timeout, request timeout, connection
			// reset. All retryable.
			slog.Debug("fetch: transport failure",
				"url", req.URL.String(), "attempt", attempt, "err", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			slog.Debug("fetch: body read failed",
				"url", req.URL.String(), "attempt", attempt, "err", readErr)
			continue
		}
		lastBody = body

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return body, true
		case retryableStatus(resp.StatusCode):
			slog.Debug("fetch: retryable status",
				"url", req.URL.String(), "attempt", attempt, "status", resp.StatusCode)
		default:
			// Caller-side error (bad request, auth rejection). Retrying
			// cannot help; pass the body through untouched.
			slog.Warn("fetch: non-retryable status",
				"url", req.URL.String(), "status", resp.StatusCode)
			return body, false
		}
	}

	slog.Warn("fetch: attempts exhausted", "url", req.URL.String(), "attempts", c.maxAttempts)
	return lastBody, false
}

// Get performs a GET with optional headers through the retry policy.
func (c *Client) Get(ctx context.Context, url string, header http.Header) ([]byte, bool) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("fetch: build GET request", "url", url, "err", err)
		return nil, false
	}
	applyHeader(req, header)
	return c.Do(ctx, req)
}

// PostJSON marshals payload and POSTs it through the retry policy.
func (c *Client) PostJSON(ctx context.Context, url string, header http.Header, payload any) ([]byte, bool) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("fetch: marshal payload", "url", url, "err", err)
		return nil, false
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		slog.Warn("fetch: build POST request", "url", url, "err", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")
	applyHeader(req, header)
	return c.Do(ctx, req)
}

// retryableStatus reports whether a status code indicates a transient
// condition worth retrying. Other 4xx codes are caller bugs and retrying
// them only burns the rate budget.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return code >= 500
}

// replay returns a fresh copy of req bound to ctx, rewinding the body via
// GetBody when present.
func replay(ctx context.Context, req *http.Request) (*http.Request, error) {
	r := req.Clone(ctx)
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		r.Body = body
	}
	return r, nil
}

func applyHeader(req *http.Request, header http.Header) {
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
}
