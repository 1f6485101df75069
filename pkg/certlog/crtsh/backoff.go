package crtsh

import (
	"ctwatch/pkg/serrors"
	"strconv"
	"strings"
	"time"
)

// FailureClass categorizes a failed crt.sh request for retry purposes.
type FailureClass string

const (
	// ClassRateLimited is an HTTP 429 response.
	ClassRateLimited FailureClass = "rate_limited"
	// ClassUnavailable is an HTTP 503 response.
	ClassUnavailable FailureClass = "unavailable"
	// ClassTimeout is a request that did not complete within the per-attempt timeout.
	ClassTimeout FailureClass = "timeout"
	// ClassNetwork is any other transport level failure.
	ClassNetwork FailureClass = "network"
	// ClassHTTPStatus is any other non-2xx response. It is never retried.
	ClassHTTPStatus FailureClass = "http_status"
)

// base waits per retryable class, doubled for every further attempt.
var baseBackoff = map[FailureClass]time.Duration{ //nolint: gochecknoglobals
	ClassRateLimited: 300 * time.Second,
	ClassUnavailable: 60 * time.Second,
	ClassTimeout:     45 * time.Second,
	ClassNetwork:     30 * time.Second,
}

// Retryable reports whether a failure of this class is retried.
func (c FailureClass) Retryable() bool {
	_, ok := baseBackoff[c]

	return ok
}

// Kind maps the class to its semantic error kind.
func (c FailureClass) Kind() serrors.Kind {
	switch c {
	case ClassRateLimited:
		return serrors.ErrRateLimited
	case ClassUnavailable:
		return serrors.ErrUnavailable
	case ClassTimeout:
		return serrors.ErrTimeout
	case ClassNetwork:
		return serrors.ErrNetwork
	default:
		return serrors.ErrUpstream
	}
}

// Backoff returns how long to wait after a failure of class at the zero-based attempt index.
// For ClassRateLimited a retryAfter header value holding a non-negative integer number of
// seconds takes precedence over the computed delay. Non-retryable classes return 0.
func Backoff(class FailureClass, attempt int, retryAfter string) time.Duration {
	base, ok := baseBackoff[class]
	if !ok {
		return 0
	}

	if class == ClassRateLimited && retryAfter != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}

	return base << attempt
}
