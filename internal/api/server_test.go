package api_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"ctwatch/internal/api"
	"ctwatch/internal/api/handler/v1handler"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mockmonitor "ctwatch/internal/monitor/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func genRSAKeys(tb testing.TB) (*rsa.PrivateKey, string) {
	tb.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(tb, err)
	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(tb, err)

	return priv, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1}))
}

func newTestServer(t *testing.T, opts api.Options) (*mockmonitor.MockService, *httptest.Server, string) {
	t.Helper()

	priv, pubPEM := genRSAKeys(t)
	opts.SecHandlerOptions = &v1handler.SecHandlerOptions{PublicKey: pubPEM}

	svc := mockmonitor.NewMockService(gomock.NewController(t))
	handler, err := api.NewHandler(api.Deps{Deps: v1handler.Deps{Monitor: svc}}, opts)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(priv)
	require.NoError(t, err)

	return svc, srv, token
}

func get(t *testing.T, srv *httptest.Server, path, token string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() {
		_ = res.Body.Close()
	}()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(body)
}

func TestNewHandler_InvalidKey(t *testing.T) {
	_, err := api.NewHandler(api.Deps{}, api.Options{SecHandlerOptions: &v1handler.SecHandlerOptions{}})
	require.Error(t, err)
}

func TestNewHandler_Routes(t *testing.T) {
	svc, srv, token := newTestServer(t, api.Options{MetricsPath: "/metrics", Environment: "development"})

	svc.EXPECT().ListDomains(gomock.Any()).Return([]string{"example.com"}, nil)
	res, body := get(t, srv, "/v1/domains", token)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"domains":["example.com"]}`, body)
	require.NotEmpty(t, res.Header.Get("X-Request-Id"))
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	res, _ = get(t, srv, "/v1/domains", "")
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body = get(t, srv, "/specs/v1.yaml", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))
	require.Contains(t, body, "openapi: 3.0.3")

	res, _ = get(t, srv, "/v1/docs/", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = get(t, srv, "/metrics", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = get(t, srv, "/debug/pprof/", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = get(t, srv, "/nope", "")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.JSONEq(t, `{"code":"NOT_FOUND","message":"resource not found"}`, body)
}

func TestNewHandler_PprofOnlyInDevelopment(t *testing.T) {
	_, srv, _ := newTestServer(t, api.Options{Environment: "production"})

	res, _ := get(t, srv, "/debug/pprof/", "")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestNewHandler_RateLimit(t *testing.T) {
	svc, srv, token := newTestServer(t, api.Options{RateLimit: 0.001, RateBurst: 2})

	svc.EXPECT().ListDomains(gomock.Any()).Return(nil, nil).Times(2)
	for range 2 {
		res, _ := get(t, srv, "/v1/domains", token)
		require.Equal(t, http.StatusOK, res.StatusCode)
	}

	res, body := get(t, srv, "/v1/domains", token)
	require.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	require.Equal(t, "1", res.Header.Get("Retry-After"))
	require.JSONEq(t, `{"code":"RATE_LIMITED","message":"too many requests, slow down"}`, body)
}

func TestNewServer(t *testing.T) {
	_, pubPEM := genRSAKeys(t)

	srv, err := api.NewServer(api.Deps{}, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: pubPEM},
		Addr:              ":0",
		ReadTimeout:       time.Second,
		RequestTimeout:    time.Second,
	})
	require.NoError(t, err)
	require.Equal(t, ":0", srv.Addr)
	require.Equal(t, time.Second, srv.ReadTimeout)
}
