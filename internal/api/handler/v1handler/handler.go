// Package v1handler implements the version 1 HTTP API: submitting content for
// reference extraction, listing, fetching and deleting extractions. Handlers
// translate between HTTP and the extractor service, mapping semantic errors
// to status codes.
package v1handler

import (
	"context"
	"errors"
	"net/http"

	"noteref/internal/extractor"
	"noteref/pkg/logger"
	"noteref/pkg/serrors"

	"github.com/go-faster/jx"
)

// Deps carries the collaborators the handlers need.
type Deps struct {
	// Extractor is the submission service backing all v1 endpoints.
	Extractor extractor.Extractor
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// ErrorResponse is the JSON error body returned by all v1 endpoints.
type ErrorResponse struct {
	// Code is the semantic error kind, e.g. "NOT_FOUND".
	Code string
	// Message is a human-readable description safe to show to clients.
	Message string
}

// NewError maps an error to an HTTP status code and response body. Semantic
// kinds from serrors translate to their conventional status; anything else is
// reported as an internal error with its message withheld from the client.
func (h Handler) NewError(ctx context.Context, err error) (int, ErrorResponse) {
	logger.Error(ctx, err.Error())

	kinds := []struct {
		kind   serrors.Kind
		status int
		// message used when the error carries none of its own
		message string
	}{
		{serrors.ErrBadRequest, http.StatusBadRequest, "bad request"},
		{serrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{serrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{serrors.ErrNotFound, http.StatusNotFound, "resource not found"},
		{serrors.ErrConflict, http.StatusConflict, "conflict"},
		{serrors.ErrRateLimited, http.StatusTooManyRequests, "too many requests"},
		{serrors.ErrTimeout, http.StatusGatewayTimeout, "timeout"},
		{serrors.ErrUnavailable, http.StatusServiceUnavailable, "service unavailable"},
	}

	for _, k := range kinds {
		if !errors.Is(err, k.kind) {
			continue
		}

		message := k.message
		var serr *serrors.Error
		if errors.As(err, &serr) && serr.Message() != "" {
			message = serr.Message()
		}

		return k.status, ErrorResponse{Code: k.kind.Error(), Message: message}
	}

	// internal errors never leak their message
	return http.StatusInternalServerError, ErrorResponse{
		Code:    serrors.ErrInternal.Error(),
		Message: "internal error",
	}
}

// writeError encodes the error mapping produced by NewError onto the response.
func (h Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := h.NewError(ctx, err)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(body.Code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(body.Message) })
	})

	writeJSON(w, status, e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
