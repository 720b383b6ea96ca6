package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedsense-backend/pkg/ctxutil"
)

// accessInfo collects identifiers resolved by middleware that runs inside
// Logger (Session, Auth) so the access log line can carry them.
type accessInfo struct {
	userID    string
	sessionID string
}

type accessInfoKey struct{}

func noteUser(ctx context.Context, id uuid.UUID) {
	if info, ok := ctx.Value(accessInfoKey{}).(*accessInfo); ok {
		info.userID = id.String()
	}
}

func noteSession(ctx context.Context, id string) {
	if info, ok := ctx.Value(accessInfoKey{}).(*accessInfo); ok {
		info.sessionID = id
	}
}

// Logger writes one access log line per request. 5xx responses log at error level.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			info := &accessInfo{sessionID: ctxutil.SessionIDFromCtx(ctx)}
			if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
				info.userID = userID.String()
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r.WithContext(context.WithValue(ctx, accessInfoKey{}, info)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			}
			if info.userID != "" {
				attrs = append(attrs, slog.String("user_id", info.userID))
			}
			if info.sessionID != "" {
				attrs = append(attrs, slog.String("session_id", info.sessionID))
			}

			level := slog.LevelInfo
			if sw.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(ctx, level, "http.request", attrs...)
		})
	}
}

// statusWriter records the status code and body size.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
