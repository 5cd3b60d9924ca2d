package server

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/osse101/BlueprintCost_Go/internal/logger"
)

// statusRecorder remembers the first status written through it
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.wroteHeader {
		return
	}
	rec.status = code
	rec.wroteHeader = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	return rec.ResponseWriter.Write(b)
}

// redactHeaders copies h with credentials replaced
func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			v = []string{RedactedValue}
		}
		out[k] = v
	}
	return out
}

func isQuietPath(path string) bool {
	return slices.ContainsFunc(quietPaths, func(p string) bool { return strings.HasPrefix(path, p) })
}

// loggingMiddleware tags each request with an id and logs its start and
// outcome. Health check and scrape traffic passes through unlogged.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx).With("method", r.Method, "path", r.URL.Path)

		log.Info(LogMsgRequestStarted,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
			logger.AttrKeyDuration, elapsed)
	})
}
