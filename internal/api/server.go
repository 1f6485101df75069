// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware of the ctwatch operator API.
package api

import (
	"ctwatch/internal/api/handler/v1handler"
	"ctwatch/internal/config"
	"ctwatch/pkg/controller"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/serrors"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures bearer token verification for v1 endpoints.
	SecHandlerOptions *v1handler.SecHandlerOptions

	// Environment enables development-only routes such as pprof.
	Environment string
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// RateLimit is the number of requests per second allowed per client, zero disables limiting.
	RateLimit float64
	// RateBurst is the number of requests a client may send at once.
	RateBurst int
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),

		Environment:       cfg.Environment,
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		RateLimit:         cfg.HTTP.RateLimit,
		RateBurst:         cfg.HTTP.RateBurst,
	}
}

// Deps are the services the API delegates to.
type Deps struct {
	v1handler.Deps
}

// NewHandler builds the root router. It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes behind bearer authentication
// - pprof endpoints in development
// Every route goes through the logging, CORS and rate limiting middlewares.
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	v1 := v1handler.New(deps.Deps)

	limiter := controller.NewRateLimiter(opts.RateLimit, opts.RateBurst)
	rejectRateLimited := func(w http.ResponseWriter, r *http.Request) {
		v1.WriteError(w, r, serrors.With(serrors.ErrRateLimited, "too many requests, slow down"))
	}

	r := chi.NewRouter()
	r.Use(controller.WithLogger, controller.WithCORS, controller.WithRateLimit(limiter, rejectRateLimited))

	// prometheus metrics
	if opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, promhttp.Handler())
	}

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	r.Handle("/v1/docs/*", v5emb.New(
		"ctwatch operator API",
		"/specs/v1.yaml",
		"/v1/docs/",
	))
	// v1 api
	r.Mount("/v1", v1.Routes(secHandler))

	// pprof
	if opts.Environment == logger.DevelopmentEnvironment {
		r.Mount("/debug/pprof", controller.Pprof())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		v1.WriteError(w, r, serrors.KindOnly(serrors.ErrNotFound))
	})

	return r, nil
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// Requests running longer than RequestTimeout are answered with 503.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}
	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, `{"code":"TIMEOUT","message":"request timed out"}`)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
