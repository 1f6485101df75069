package v1handler_test

import (
	"ctwatch/internal/api/handler/v1handler"
	"ctwatch/internal/monitor"
	"ctwatch/pkg/serrors"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mockmonitor "ctwatch/internal/monitor/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiClient struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newAPI(t *testing.T) (*mockmonitor.MockService, *apiClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mockmonitor.NewMockService(ctrl)

	priv, pubPEM := genRSAKeys(t)
	sh := newSecHandlerForTest(t, pubPEM)

	srv := httptest.NewServer(v1handler.New(v1handler.Deps{Monitor: svc}).Routes(sh))
	t.Cleanup(srv.Close)

	now := time.Now()

	return svc, &apiClient{t: t, srv: srv, token: signJWTRS256(t, priv, "alice", now, now.Add(time.Hour))}
}

func (c *apiClient) do(method, path, body string) (int, string) {
	c.t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, r)
	require.NoError(c.t, err)
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer func() {
		_ = res.Body.Close()
	}()
	b, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)

	return res.StatusCode, string(b)
}

func TestRoutes_RequireToken(t *testing.T) {
	_, c := newAPI(t)

	res, err := c.srv.Client().Get(c.srv.URL + "/domains")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestRoutes_ListDomains(t *testing.T) {
	svc, c := newAPI(t)

	svc.EXPECT().ListDomains(gomock.Any()).Return([]string{"example.com", "example.org"}, nil)
	status, body := c.do(http.MethodGet, "/domains", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"domains":["example.com","example.org"]}`, body)

	svc.EXPECT().ListDomains(gomock.Any()).Return(nil, nil)
	status, body = c.do(http.MethodGet, "/domains", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"domains":[]}`, body)

	svc.EXPECT().ListDomains(gomock.Any()).Return(nil, errors.New("db down"))
	status, body = c.do(http.MethodGet, "/domains", "")
	require.Equal(t, http.StatusInternalServerError, status)
	require.JSONEq(t, `{"code":"INTERNAL","message":"internal error"}`, body)
}

func TestRoutes_AddDomain(t *testing.T) {
	svc, c := newAPI(t)

	svc.EXPECT().AddDomain(gomock.Any(), "https://Example.com").Return("example.com", nil)
	status, body := c.do(http.MethodPost, "/domains", `{"name":"https://Example.com"}`)
	require.Equal(t, http.StatusCreated, status)
	require.JSONEq(t, `{"name":"example.com"}`, body)

	svc.EXPECT().AddDomain(gomock.Any(), "example.com").
		Return("example.com", serrors.With(serrors.ErrConflict, "example.com is already being monitored"))
	status, body = c.do(http.MethodPost, "/domains", `{"name":"example.com"}`)
	require.Equal(t, http.StatusConflict, status)
	require.JSONEq(t, `{"code":"CONFLICT","message":"example.com is already being monitored"}`, body)

	svc.EXPECT().AddDomain(gomock.Any(), "co.uk").
		Return("", serrors.With(serrors.ErrBadRequest, "domain \"co.uk\" is a public suffix"))
	status, _ = c.do(http.MethodPost, "/domains", `{"name":"co.uk"}`)
	require.Equal(t, http.StatusBadRequest, status)

	// malformed body never reaches the service
	status, body = c.do(http.MethodPost, "/domains", `{"name":`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, body, "invalid request body")

	status, _ = c.do(http.MethodPost, "/domains", `{"url":"example.com"}`)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestRoutes_RemoveDomain(t *testing.T) {
	svc, c := newAPI(t)

	svc.EXPECT().RemoveDomain(gomock.Any(), "example.com").Return(nil)
	status, body := c.do(http.MethodDelete, "/domains/example.com", "")
	require.Equal(t, http.StatusNoContent, status)
	require.Empty(t, body)

	svc.EXPECT().RemoveDomain(gomock.Any(), "example.org").
		Return(serrors.With(serrors.ErrNotFound, "example.org is not being monitored"))
	status, body = c.do(http.MethodDelete, "/domains/example.org", "")
	require.Equal(t, http.StatusNotFound, status)
	require.JSONEq(t, `{"code":"NOT_FOUND","message":"example.org is not being monitored"}`, body)
}

func TestRoutes_KnownSubdomains(t *testing.T) {
	svc, c := newAPI(t)

	svc.EXPECT().KnownSubdomains(gomock.Any(), "example.com").Return([]string{"a.example.com"}, nil)
	status, body := c.do(http.MethodGet, "/domains/example.com/subdomains", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"domain":"example.com","subdomains":["a.example.com"]}`, body)
}

func TestRoutes_Monitoring(t *testing.T) {
	svc, c := newAPI(t)
	next := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	svc.EXPECT().Monitoring(gomock.Any()).Return(monitor.Status{})
	status, body := c.do(http.MethodGet, "/monitoring", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"running":false,"lastCycleClean":false}`, body)

	gomock.InOrder(
		svc.EXPECT().StartMonitoring(gomock.Any()).Return(true),
		svc.EXPECT().Monitoring(gomock.Any()).Return(monitor.Status{Running: true, NextCycleAt: next}),
	)
	status, body = c.do(http.MethodPost, "/monitoring/start", "")
	require.Equal(t, http.StatusOK, status)

	var res v1handler.Monitoring
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.True(t, res.Running)
	require.NotNil(t, res.Changed)
	require.True(t, *res.Changed)
	require.NotNil(t, res.NextCycleAt)
	require.True(t, next.Equal(*res.NextCycleAt))

	gomock.InOrder(
		svc.EXPECT().StopMonitoring(gomock.Any()).Return(false),
		svc.EXPECT().Monitoring(gomock.Any()).Return(monitor.Status{}),
	)
	status, body = c.do(http.MethodPost, "/monitoring/stop", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"running":false,"changed":false,"lastCycleClean":false}`, body)
}
