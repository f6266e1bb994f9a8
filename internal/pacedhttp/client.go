// Package pacedhttp provides a rate-limited, retrying HTTP client shared by
// every provider backend. It combines a token-bucket pace limiter (so a
// provider never exceeds its requests-per-minute budget) with bounded
// exponential-backoff retries on network errors, 429, and 5xx responses.
package pacedhttp

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/JPK85/patentpack/internal/logging"
	"github.com/JPK85/patentpack/pkg/errors"
)

// Config controls a Client's pacing and retry behavior.
type Config struct {
	RequestsPerMinute int
	Timeout           time.Duration
	MaxRetries        int

	// BackoffBaseInterval is the initial exponential-backoff interval
	// between retries. Zero defaults to 1 second.
	BackoffBaseInterval time.Duration
}

// Client wraps *http.Client with a rate.Limiter gate and a backoff-driven
// retry loop. Safe for concurrent use; SetRPM may be called at any time to
// re-tune the limiter (mirroring a provider's own set_rpm knob).
type Client struct {
	http        *http.Client
	limiter     *rate.Limiter
	retries     int
	backoffBase time.Duration
	log         logging.Logger
}

// New builds a Client from cfg. A zero RequestsPerMinute is treated as 1
// to avoid a non-positive limiter interval.
func New(cfg Config, log logging.Logger) *Client {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	backoffBase := cfg.BackoffBaseInterval
	if backoffBase <= 0 {
		backoffBase = 1 * time.Second
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		retries:     cfg.MaxRetries,
		backoffBase: backoffBase,
		log:         log,
	}
}

// SetRPM re-tunes the pace limiter at runtime.
func (c *Client) SetRPM(rpm int) {
	if rpm <= 0 {
		rpm = 1
	}
	c.limiter.SetLimit(rate.Limit(float64(rpm) / 60.0))
}

// Do waits for the pace limiter, then issues req with bounded
// exponential-backoff retries on network errors, 429 (rate limited), and
// 5xx responses. Any other 4xx response is returned immediately without
// retry. The caller owns closing the returned response's Body.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderTransport, "pacedhttp: rate limiter wait failed")
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.backoffBase
	b.MaxInterval = 10 * time.Second
	bo := backoff.WithMaxRetries(b, uint64(maxInt(c.retries, 0)))
	bo = backoff.WithContext(bo, ctx)

	body, err := drainBody(req)
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	attempt := 0
	opErr := backoff.Retry(func() error {
		attempt++
		if body != nil {
			req.Body = io.NopCloser(newReaderFromBytes(body))
		}
		r, doErr := c.http.Do(req)
		if doErr != nil {
			c.log.Warn("request failed, retrying", logging.Err(doErr), logging.Int("attempt", attempt))
			return doErr
		}
		if r.StatusCode == http.StatusTooManyRequests || r.StatusCode >= 500 {
			r.Body.Close()
			c.log.Warn("retriable status, retrying", logging.Int("status", r.StatusCode), logging.Int("attempt", attempt))
			return errors.New(errors.CodeProviderTransport, "pacedhttp: retriable status").WithDetail(r.Status)
		}
		resp = r
		return nil
	}, bo)

	if opErr != nil {
		if resp != nil {
			return resp, nil
		}
		return nil, errors.Wrap(opErr, errors.CodeProviderTransport, "pacedhttp: request failed after retries")
	}
	return resp, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
