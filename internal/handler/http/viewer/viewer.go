// Package viewer resolves who is making a request. Authentication happens
// upstream; the gateway forwards the authenticated user's ID in X-User-ID.
package viewer

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"book-journal/internal/handler/http/respond"
)

type contextKey string

const (
	viewerKey contextKey = "viewer_id"
	// Header carries the authenticated user's UUID.
	Header = "X-User-ID"
)

// ErrInvalidViewer is returned when X-User-ID is present but not a UUID.
var ErrInvalidViewer = errors.New("invalid X-User-ID header")

// FromContext returns the viewer's user ID, or uuid.Nil for an anonymous request.
func FromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(viewerKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithViewer adds the viewer's user ID to the context.
func WithViewer(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, viewerKey, id)
}

// Parse reads the viewer from the request headers. An absent header is an
// anonymous viewer.
func Parse(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get(Header))
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidViewer
	}
	return id, nil
}

// Middleware stores the viewer in the request context and rejects malformed
// X-User-ID headers with 400.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := Parse(r)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), id)))
	})
}
