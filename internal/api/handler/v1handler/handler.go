// Package v1handler implements the operator API, version 1.
package v1handler

import (
	"context"
	"ctwatch/internal/monitor"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/serrors"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Deps are the services the handlers delegate to.
type Deps struct {
	Monitor monitor.Service
}

// Handler serves the v1 routes.
type Handler struct {
	deps Deps
}

// New creates a Handler.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes returns the v1 router. Every route requires a valid bearer token.
func (h Handler) Routes(sec *SecHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(sec.Middleware(h.WriteError))

	r.Route("/domains", func(r chi.Router) {
		r.Get("/", h.ListDomains)
		r.Post("/", h.AddDomain)

		r.Route("/{name}", func(r chi.Router) {
			r.Delete("/", h.RemoveDomain)
			r.Get("/subdomains", h.KnownSubdomains)
		})
	})

	r.Route("/monitoring", func(r chi.Router) {
		r.Get("/", h.GetMonitoring)
		r.Post("/start", h.StartMonitoring)
		r.Post("/stop", h.StopMonitoring)
	})

	return r
}

// Error is the body of every failed response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse pairs an Error with its HTTP status.
type ErrorResponse struct {
	StatusCode int
	Response   Error
}

// kindStatus maps semantic error kinds to HTTP statuses and default messages.
var kindStatus = map[serrors.Kind]struct { //nolint: gochecknoglobals
	status  int
	message string
}{
	serrors.ErrNotFound:     {http.StatusNotFound, "resource not found"},
	serrors.ErrUnauthorized: {http.StatusUnauthorized, "unauthorized"},
	serrors.ErrForbidden:    {http.StatusForbidden, "forbidden"},
	serrors.ErrBadRequest:   {http.StatusBadRequest, "bad request"},
	serrors.ErrConflict:     {http.StatusConflict, "conflict"},
	serrors.ErrRateLimited:  {http.StatusTooManyRequests, "too many requests"},
	serrors.ErrTimeout:      {http.StatusGatewayTimeout, "timeout"},
	serrors.ErrUnavailable:  {http.StatusServiceUnavailable, "service unavailable"},
	serrors.ErrNetwork:      {http.StatusBadGateway, "upstream unreachable"},
	serrors.ErrUpstream:     {http.StatusBadGateway, "upstream error"},
	serrors.ErrPersistence:  {http.StatusInternalServerError, "internal error"},
	serrors.ErrInternal:     {http.StatusInternalServerError, "internal error"},
}

// NewError converts err into the response sent to the client. Errors without a
// semantic kind are internal errors. Messages of 5xx errors are never exposed.
func (h Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	var kind serrors.Kind
	if !errors.As(err, &kind) {
		kind = serrors.ErrInternal
	}
	mapped, ok := kindStatus[kind]
	if !ok {
		kind = serrors.ErrInternal
		mapped = kindStatus[serrors.ErrInternal]
	}

	if mapped.status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))

		return &ErrorResponse{
			StatusCode: mapped.status,
			Response:   Error{Code: kind.Error(), Message: mapped.message},
		}
	}

	msg := mapped.message
	var sErr *serrors.Error
	if errors.As(err, &sErr) && sErr.Message() != "" {
		msg = sErr.Message()
	}

	return &ErrorResponse{
		StatusCode: mapped.status,
		Response:   Error{Code: kind.Error(), Message: msg},
	}
}

// WriteError renders err as an Error body.
func (h Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(w, res.StatusCode, res.Response)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusNoContent {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}
