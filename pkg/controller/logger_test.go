package controller_test

import (
	"ctwatch/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"ctwatch/pkg/logger"
)

func TestGetClientIP_XForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if ip := controller.GetClientIP(req); ip != "1.2.3.4" {
		t.Fatalf("expected 1.2.3.4, got %q", ip)
	}
}

func TestGetClientIP_XRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "9.8.7.6")
	if ip := controller.GetClientIP(req); ip != "9.8.7.6" {
		t.Fatalf("expected 9.8.7.6, got %q", ip)
	}
}

func TestGetClientIP_RemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	if ip := controller.GetClientIP(req); ip != "10.0.0.1" {
		t.Fatalf("expected 10.0.0.1, got %q", ip)
	}
}

func TestGetClientIP_InvalidRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "not-an-addr"
	if ip := controller.GetClientIP(req); ip != "not-an-addr" {
		t.Fatalf("expected passthrough of invalid RemoteAddr, got %q", ip)
	}
}

func TestWithLogger_SetsRequestIDAndPassesStatus(t *testing.T) {
	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, ""))

	// Handler echoes request ID from context into a header so we can assert it.
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := controller.RequestID(r.Context()); s != "" {
			w.Header().Set("X-Echo-Request-Id", s)
		}
		w.WriteHeader(http.StatusCreated)
	})

	// Case 1: request provides X-Request-Id header
	req1 := httptest.NewRequest(http.MethodGet, "/", nil)
	req1.Header.Set(controller.RequestIDHeader, "abc-123")
	rec1 := httptest.NewRecorder()
	controller.WithLogger(next).ServeHTTP(rec1, req1)
	res1 := rec1.Result()
	require.Equal(t, http.StatusCreated, res1.StatusCode)
	require.Equal(t, "abc-123", res1.Header.Get("X-Echo-Request-Id"))
	require.Equal(t, "abc-123", res1.Header.Get(controller.RequestIDHeader))

	// Case 2: request without header should still receive a generated ID
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	rec2 := httptest.NewRecorder()
	controller.WithLogger(next).ServeHTTP(rec2, req2)
	res2 := rec2.Result()
	require.Equal(t, http.StatusCreated, res2.StatusCode)
	require.NotEmpty(t, res2.Header.Get("X-Echo-Request-Id"))
	require.Equal(t, res2.Header.Get("X-Echo-Request-Id"), res2.Header.Get(controller.RequestIDHeader))
}

func TestWithLogger_UnderChiRouter(t *testing.T) {
	r := chi.NewRouter()
	r.Use(controller.WithLogger)
	r.Get("/v1/domains/{name}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(r, "name")))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/domains/example.com", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "example.com", rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(controller.RequestIDHeader))
}
