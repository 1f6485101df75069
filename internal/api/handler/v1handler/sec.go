package v1handler

import (
	"context"
	"crypto/rsa"
	"ctwatch/internal/config"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/serrors"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// CtxKey is a string-based type used for storing values in request contexts.
type CtxKey string

// OperatorKey is the context key under which the authenticated operator is stored.
const OperatorKey CtxKey = "Operator"

// SecHandlerOptions configure token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA public key operator tokens are signed for.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the provided application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{
		PublicKey: cfg.Auth.PublicKey,
	}
}

// SecHandler authenticates operators with RS256 signed bearer tokens.
type SecHandler struct {
	publicKey *rsa.PublicKey
}

// NewSecHandler parses the configured public key.
func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || opts.PublicKey == "" {
		return nil, errors.New("auth public key is required")
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{publicKey: key}, nil
}

// HandleBearerAuth verifies token and returns ctx carrying the operator named by
// its subject. Any failure is reported as serrors.ErrUnauthorized.
func (s SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	operator := strings.TrimSpace(claims.Subject)
	if operator == "" {
		return ctx, serrors.With(serrors.ErrUnauthorized, "token has no subject")
	}

	ctx = context.WithValue(ctx, OperatorKey, operator)

	return logger.WithFields(ctx, zap.String("operator", operator)), nil
}

// Middleware rejects requests without a valid "Authorization: Bearer <token>" header
// by calling reject with an serrors.ErrUnauthorized error.
func (s SecHandler) Middleware(reject func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="ctwatch"`)
				reject(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

				return
			}

			ctx, err := s.HandleBearerAuth(r.Context(), strings.TrimSpace(token))
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="ctwatch", error="invalid_token"`)
				reject(w, r, err)

				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOperatorFromContext returns the authenticated operator, or "".
func GetOperatorFromContext(ctx context.Context) string {
	operator, _ := ctx.Value(OperatorKey).(string)

	return operator
}
