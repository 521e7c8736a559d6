package http

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/auteur-engineer/website/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// middleware tags each request with an id, bounds it with the request
// timeout and writes one access log line when it completes.
func (api *SiteAPI) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := logging.ContextWithFields(r.Context(), map[string]any{
			logging.RequestIDField: requestID,
		})
		if api.timeout > 0 && !websocket.IsWebSocketUpgrade(r) {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, api.timeout)
			defer cancel()
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger := logging.WithRequest(api.logger, requestID, r.Method, r.URL.Path)
		fields := []any{"status", rec.status, "duration", time.Since(started)}
		switch {
		case rec.status >= http.StatusInternalServerError:
			logger.Error("http.request", fields...)
		case rec.status >= http.StatusBadRequest:
			logger.Warn("http.request", fields...)
		default:
			logger.Info("http.request", fields...)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(p)
}

// Hijack lets websocket upgrades through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("http: response writer cannot be hijacked")
	}
	r.status = http.StatusSwitchingProtocols
	r.wroteHeader = true
	return hijacker.Hijack()
}

func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
