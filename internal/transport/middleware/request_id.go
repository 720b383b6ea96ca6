package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedsense-backend/pkg/ctxutil"
)

const (
	RequestIDHeader = "X-Request-Id"
	SessionIDHeader = "X-Session-Id"

	maxSessionIDLen = 128
)

// RequestID propagates the incoming X-Request-Id or generates a new one.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Session stores the client's X-Session-Id on the context. Recorded events
// without an explicit session inherit it. Oversized values are ignored.
func Session() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(SessionIDHeader))
			if id == "" || len(id) > maxSessionIDLen {
				next.ServeHTTP(w, r)
				return
			}
			noteSession(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctxutil.WithSessionID(r.Context(), id)))
		})
	}
}
