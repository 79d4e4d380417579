package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"noteref/internal/config"
	"noteref/pkg/domain"
	"noteref/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CtxKey is a string-based type used for storing values in request contexts.
type CtxKey string

// UserIDKey is the context key under which the authenticated user's ID is stored.
const UserIDKey CtxKey = "UserID"

// GetUserIDFromContext returns the authenticated user ID placed in the context
// by the auth middleware. It returns the zero UserID when authentication has
// not run, which only happens on unauthenticated routes.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	userID, _ := ctx.Value(UserIDKey).(domain.UserID)

	return userID
}

// SecHandlerOptions configure bearer token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key used to verify token signatures.
	PublicKey string
}

// NewSecHandlerOptions constructs a SecHandlerOptions value from the provided
// application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler verifies RS256 bearer tokens and resolves them to a user ID.
type SecHandler struct {
	publicKey *rsa.PublicKey
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{publicKey: key}, nil
}

// HandleBearerAuth validates the given bearer token and returns a context
// carrying the authenticated user's ID. The token must be a valid RS256 JWT
// whose subject is the user's UUID.
func (s SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	claims := jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(userID)), nil
}

// WithAuth wraps next with bearer authentication. Requests without a valid
// token receive a 401 with the standard error body.
func (s SecHandler) WithAuth(h *Handler, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			h.writeError(ctx, w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.HandleBearerAuth(ctx, token)
		if err != nil {
			h.writeError(ctx, w, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
