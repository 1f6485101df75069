package crtsh_test

import (
	"context"
	"ctwatch/pkg/certlog/crtsh"
	"ctwatch/pkg/serrors"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// sleepRecorder captures requested waits without blocking.
type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waits = append(s.waits, d)

	return ctx.Err()
}

func (s *sleepRecorder) Waits() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]time.Duration(nil), s.waits...)
}

func response(code int, body string, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}

	return &http.Response{
		StatusCode: code,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(fn rtFunc, sleeper *sleepRecorder) *crtsh.Client {
	return crtsh.New(crtsh.Options{
		HTTPClient: &http.Client{Transport: fn},
		Sleep:      sleeper.Sleep,
	})
}

// timeoutErr implements net.Error reporting a timeout.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClient_Fetch_Success(t *testing.T) {
	body := `[
		{"issuer_name":"R3","name_value":"a.example.com"},
		{"name_value":"*.b.example.com\nA.example.com\n\nc.example.com"},
		{"name_value":null},
		{"common_name":"x.example.com"},
		"garbage",
		{"name_value":"*.b.example.com"}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "%.example.com", r.URL.Query().Get("q"))
		require.Equal(t, "json", r.URL.Query().Get("output"))
		require.Equal(t, crtsh.DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	sleeper := &sleepRecorder{}
	c := crtsh.New(crtsh.Options{BaseURL: srv.URL + "/", Sleep: sleeper.Sleep})

	hosts, err := c.Fetch(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, []string{"a.example.com", "b.example.com", "c.example.com"}, hosts)
	require.Empty(t, sleeper.Waits())
}

func TestClient_Fetch_EmptyAndMalformedBodies(t *testing.T) {
	for name, body := range map[string]string{
		"empty":       "",
		"whitespace":  "  \n",
		"malformed":   `[{"name_value":`,
		"not an array": `{"error":"busy"}`,
		"empty array": `[]`,
	} {
		t.Run(name, func(t *testing.T) {
			sleeper := &sleepRecorder{}
			calls := 0
			c := newTestClient(func(r *http.Request) (*http.Response, error) {
				calls++

				return response(http.StatusOK, body, nil), nil
			}, sleeper)

			hosts, err := c.Fetch(context.Background(), "example.com")
			require.NoError(t, err)
			require.Empty(t, hosts)
			require.Equal(t, 1, calls)
			require.Empty(t, sleeper.Waits())
		})
	}
}

func TestClient_Fetch_RetriesPerFailureClass(t *testing.T) {
	tests := []struct {
		name      string
		rt        rtFunc
		wantWaits []time.Duration
		wantKind  serrors.Kind
		wantClass crtsh.FailureClass
	}{
		{
			name: "rate limited without hint",
			rt: func(*http.Request) (*http.Response, error) {
				return response(http.StatusTooManyRequests, "slow down", nil), nil
			},
			wantWaits: []time.Duration{300 * time.Second, 600 * time.Second},
			wantKind:  serrors.ErrRateLimited,
			wantClass: crtsh.ClassRateLimited,
		},
		{
			name: "rate limited with retry-after",
			rt: func(*http.Request) (*http.Response, error) {
				h := http.Header{}
				h.Set("Retry-After", "7")

				return response(http.StatusTooManyRequests, "", h), nil
			},
			wantWaits: []time.Duration{7 * time.Second, 7 * time.Second},
			wantKind:  serrors.ErrRateLimited,
			wantClass: crtsh.ClassRateLimited,
		},
		{
			name: "rate limited with unparseable retry-after",
			rt: func(*http.Request) (*http.Response, error) {
				h := http.Header{}
				h.Set("Retry-After", "Wed, 21 Oct 2015 07:28:00 GMT")

				return response(http.StatusTooManyRequests, "", h), nil
			},
			wantWaits: []time.Duration{300 * time.Second, 600 * time.Second},
			wantKind:  serrors.ErrRateLimited,
			wantClass: crtsh.ClassRateLimited,
		},
		{
			name: "service unavailable",
			rt: func(*http.Request) (*http.Response, error) {
				return response(http.StatusServiceUnavailable, "", nil), nil
			},
			wantWaits: []time.Duration{60 * time.Second, 120 * time.Second},
			wantKind:  serrors.ErrUnavailable,
			wantClass: crtsh.ClassUnavailable,
		},
		{
			name: "timeout",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, timeoutErr{}
			},
			wantWaits: []time.Duration{45 * time.Second, 90 * time.Second},
			wantKind:  serrors.ErrTimeout,
			wantClass: crtsh.ClassTimeout,
		},
		{
			name: "network",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			wantWaits: []time.Duration{30 * time.Second, 60 * time.Second},
			wantKind:  serrors.ErrNetwork,
			wantClass: crtsh.ClassNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleeper := &sleepRecorder{}
			calls := 0
			c := newTestClient(func(r *http.Request) (*http.Response, error) {
				calls++

				return tt.rt(r)
			}, sleeper)

			hosts, err := c.Fetch(context.Background(), "example.com")
			require.Error(t, err)
			require.Nil(t, hosts)
			require.ErrorIs(t, err, tt.wantKind)
			require.Equal(t, crtsh.DefaultMaxAttempts, calls)
			require.Equal(t, tt.wantWaits, sleeper.Waits())

			var fErr *crtsh.FetchError
			require.ErrorAs(t, err, &fErr)
			require.Equal(t, tt.wantClass, fErr.Class)
			require.Equal(t, "example.com", fErr.Domain)
			require.Equal(t, 3, fErr.Attempts)
			require.Contains(t, err.Error(), "example.com")
			require.Contains(t, err.Error(), "3 attempt(s)")
		})
	}
}

func TestClient_Fetch_HardFailureIsNotRetried(t *testing.T) {
	sleeper := &sleepRecorder{}
	calls := 0
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		calls++

		return response(http.StatusNotFound, "nope", nil), nil
	}, sleeper)

	_, err := c.Fetch(context.Background(), "example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrUpstream)
	require.Equal(t, 1, calls)
	require.Empty(t, sleeper.Waits())

	var fErr *crtsh.FetchError
	require.ErrorAs(t, err, &fErr)
	require.Equal(t, crtsh.ClassHTTPStatus, fErr.Class)
	require.Equal(t, 1, fErr.Attempts)
	require.Contains(t, err.Error(), "404")
}

func TestClient_Fetch_RecoversAfterTransientFailure(t *testing.T) {
	sleeper := &sleepRecorder{}
	calls := 0
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return response(http.StatusServiceUnavailable, "", nil), nil
		}

		return response(http.StatusOK, `[{"name_value":"www.example.com"}]`, nil), nil
	}, sleeper)

	hosts, err := c.Fetch(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, []string{"www.example.com"}, hosts)
	require.Equal(t, 2, calls)
	require.Equal(t, []time.Duration{60 * time.Second}, sleeper.Waits())
}

func TestClient_Fetch_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	c := crtsh.New(crtsh.Options{
		HTTPClient: &http.Client{Transport: rtFunc(func(*http.Request) (*http.Response, error) {
			calls++

			return response(http.StatusServiceUnavailable, "", nil), nil
		})},
		Sleep: func(ctx context.Context, _ time.Duration) error {
			cancel()

			return ctx.Err()
		},
	})

	_, err := c.Fetch(ctx, "example.com")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestClient_Fetch_PerAttemptTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	sleeper := &sleepRecorder{}
	c := crtsh.New(crtsh.Options{
		BaseURL:     srv.URL,
		Timeout:     20 * time.Millisecond,
		MaxAttempts: 2,
		Sleep:       sleeper.Sleep,
	})

	_, err := c.Fetch(context.Background(), "example.com")
	require.ErrorIs(t, err, serrors.ErrTimeout)
	require.Equal(t, []time.Duration{45 * time.Second}, sleeper.Waits())
}

func TestParseNames(t *testing.T) {
	hosts, err := crtsh.ParseNames([]byte(`[{"name_value":"Foo.Example.com\n*.foo.example.com"}]`))
	require.NoError(t, err)
	require.Equal(t, []string{"foo.example.com"}, hosts)

	_, err = crtsh.ParseNames([]byte(`{"name_value":"x"}`))
	require.Error(t, err)
}
