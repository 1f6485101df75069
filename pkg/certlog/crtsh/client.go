// Package crtsh provides a certlog.Client implementation backed by the public
// crt.sh certificate search service.
package crtsh

import (
	"bytes"
	"context"
	"ctwatch/pkg/certlog"
	"ctwatch/pkg/clock"
	"ctwatch/pkg/domain"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/metrics"
	"ctwatch/pkg/serrors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public crt.sh endpoint.
	DefaultBaseURL = "https://crt.sh/"
	// DefaultUserAgent identifies requests as a desktop browser; crt.sh throttles unidentified clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	// DefaultTimeout bounds a single request. crt.sh is slow under load.
	DefaultTimeout = 60 * time.Second
	// DefaultMaxAttempts bounds the number of requests per Fetch call.
	DefaultMaxAttempts = 3
)

// Options configure a Client. Zero values fall back to the package defaults.
type Options struct {
	// HTTPClient performs requests. Its own Timeout is left untouched; the
	// per-attempt Timeout below is applied through the request context.
	HTTPClient *http.Client
	// BaseURL is the crt.sh search endpoint.
	BaseURL string
	// UserAgent is sent with every request.
	UserAgent string
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	// MaxAttempts is the maximum number of requests per Fetch.
	MaxAttempts int
	// Sleep waits between attempts. It must return early with an error once ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error
	// Metrics receives per-attempt measurements. May be nil.
	Metrics *metrics.Recorder
}

// Client queries crt.sh and fulfills the certlog.Client interface. It is safe for concurrent use.
type Client struct {
	options Options
}

// Ensure Client conforms to the certlog.Client interface at compile time.
var _ certlog.Client = (*Client)(nil)

// New constructs a Client, filling unset options with defaults.
func New(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Sleep == nil {
		opts.Sleep = clock.Sleep
	}

	return &Client{options: opts}
}

// FetchError describes a Fetch that gave up. It is always returned wrapped in a
// serrors.Error whose kind reflects Class.
type FetchError struct {
	Class    FailureClass
	Domain   string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not fetch data from crt.sh for %s after %d attempt(s) (%s): %v",
		e.Domain, e.Attempts, e.Class, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// attemptError is the outcome of a single failed request.
type attemptError struct {
	class      FailureClass
	retryAfter string
	err        error
}

// Fetch queries crt.sh for %.<domain> and returns the extracted hostnames.
//
// Retryable failures are retried up to MaxAttempts times with the delays given by Backoff.
// Any other non-2xx status fails immediately. A successful response with an empty or
// malformed body yields an empty result without error. If ctx is done, Fetch returns
// ctx.Err() without further attempts.
func (c *Client) Fetch(ctx context.Context, name string) ([]string, error) {
	ctx = logger.WithFields(ctx, zap.String("domain", name))

	var last *attemptError
	attempts := 0
	for attempt := range c.options.MaxAttempts {
		attempts = attempt + 1

		hosts, aErr := c.attempt(ctx, name)
		if aErr == nil {
			return hosts, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err //nolint: wrapcheck
		}
		last = aErr

		if !aErr.class.Retryable() {
			break
		}
		if attempts == c.options.MaxAttempts {
			break
		}

		wait := Backoff(aErr.class, attempt, aErr.retryAfter)
		logger.Warn(ctx, "crt.sh request failed, retrying",
			zap.String("class", string(aErr.class)),
			zap.Int("attempt", attempts),
			zap.Int("maxAttempts", c.options.MaxAttempts),
			zap.Duration("wait", wait),
			zap.Error(aErr.err))
		if err := c.options.Sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	c.options.Metrics.FetchFailed(ctx, string(last.class))
	fErr := &FetchError{Class: last.class, Domain: name, Attempts: attempts, Err: last.err}
	logger.Error(ctx, "crt.sh fetch failed", zap.Error(fErr))

	return nil, serrors.Wrap(last.class.Kind(), fErr, "")
}

// attempt performs one request and classifies its failure, if any.
func (c *Client) attempt(ctx context.Context, name string) ([]string, *attemptError) {
	reqCtx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	start := time.Now()
	hosts, aErr := c.do(reqCtx, name)
	class := "ok"
	if aErr != nil {
		class = string(aErr.class)
	}
	c.options.Metrics.FetchAttempt(ctx, class, time.Since(start))

	return hosts, aErr
}

func (c *Client) do(ctx context.Context, name string) ([]string, *attemptError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(name), nil)
	if err != nil {
		return nil, &attemptError{class: ClassHTTPStatus, err: fmt.Errorf("could not create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.options.UserAgent)
	req.Header.Set("Accept", "application/json")

	logger.Info(ctx, "checking crt.sh")
	resp, err := c.options.HTTPClient.Do(req)
	if err != nil {
		return nil, &attemptError{class: classifyTransport(err), err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &attemptError{
			class:      ClassRateLimited,
			retryAfter: resp.Header.Get("Retry-After"),
			err:        statusError(resp.StatusCode),
		}
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, &attemptError{class: ClassUnavailable, err: statusError(resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &attemptError{class: ClassHTTPStatus, err: statusError(resp.StatusCode)}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &attemptError{class: classifyTransport(err), err: fmt.Errorf("could not read response body: %w", err)}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		logger.Warn(ctx, "received empty response from crt.sh")

		return []string{}, nil
	}

	hosts, err := ParseNames(b)
	if err != nil {
		logger.Error(ctx, "could not decode crt.sh response", zap.Error(err))

		return []string{}, nil
	}
	logger.Info(ctx, "crt.sh query completed", zap.Int("hostnames", len(hosts)))

	return hosts, nil
}

// queryURL builds the wildcard JSON search URL for name.
func (c *Client) queryURL(name string) string {
	q := url.Values{}
	q.Set("q", "%."+name)
	q.Set("output", "json")

	sep := "?"
	if strings.Contains(c.options.BaseURL, "?") {
		sep = "&"
	}

	return c.options.BaseURL + sep + q.Encode()
}

// ParseNames extracts hostnames from a crt.sh JSON response. Every record's
// name_value may hold several newline separated names; all of them are normalized
// with domain.NormalizeHostnames. Records without a string name_value are ignored.
func ParseNames(body []byte) ([]string, error) {
	d := jx.DecodeBytes(body)
	if tt := d.Next(); tt != jx.Array {
		return nil, errors.Errorf("unexpected top-level json %s", tt)
	}

	var names []string
	err := d.Arr(func(d *jx.Decoder) error {
		if d.Next() != jx.Object {
			return d.Skip()
		}

		return d.Obj(func(d *jx.Decoder, key string) error {
			if key != "name_value" || d.Next() != jx.String {
				return d.Skip()
			}
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "name_value")
			}
			names = append(names, strings.Split(v, "\n")...)

			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode records")
	}

	return domain.NormalizeHostnames(names), nil
}

func classifyTransport(err error) FailureClass {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ClassTimeout
	}

	return ClassNetwork
}

func statusError(code int) error {
	return errors.Errorf("%d %s", code, http.StatusText(code))
}
