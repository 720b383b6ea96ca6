package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/metrics"
	"github.com/heartmarshall/feedsense-backend/internal/transport/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Feed     *FeedHandler
	Behavior *BehaviorHandler
	Format   *FormatHandler
	Metrics  http.Handler
}

// RouterOptions holds the cross-cutting middleware applied to API routes.
type RouterOptions struct {
	// API wraps every authenticated route.
	API middleware.Middleware
	// Ingest additionally wraps POST /events. Nil disables it.
	Ingest middleware.Middleware
}

// NewRouter mounts every route on a ServeMux. Probes and /metrics bypass
// the API middleware.
func NewRouter(h Handlers, opts RouterOptions) *http.ServeMux {
	api := opts.API
	if api == nil {
		api = middleware.Chain()
	}
	ingest := opts.Ingest
	if ingest == nil {
		ingest = middleware.Chain()
	}

	mux := http.NewServeMux()

	mux.Handle("GET /live", instrument("GET /live", http.HandlerFunc(h.Health.Live)))
	mux.Handle("GET /ready", instrument("GET /ready", http.HandlerFunc(h.Health.Ready)))
	mux.Handle("GET /health", instrument("GET /health", http.HandlerFunc(h.Health.Health)))
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	route := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, api(instrument(pattern, fn)))
	}

	route("GET /feed", h.Feed.GetFeed)
	route("PUT /connections/{platform}", h.Feed.Connect)
	route("DELETE /connections/{platform}", h.Feed.Disconnect)
	route("GET /summary", h.Behavior.Summary)
	route("POST /format", h.Format.Format)
	mux.Handle("POST /events", api(ingest(instrument("POST /events", http.HandlerFunc(h.Behavior.RecordEvents)))))

	return mux
}

// instrument records the request latency under the route pattern.
func instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.HTTPRequestDuration.
			WithLabelValues(pattern, strconv.Itoa(sw.status/100)+"xx").
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
