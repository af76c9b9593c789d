package log

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kubev2v/profit-planner/pkg/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// quietPaths are polled by health checks and scrapers; successful hits are logged at debug.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// Logger logs one entry per request on a logger named name.
func Logger(l *zap.Logger, name string) func(next http.Handler) http.Handler {
	if l == nil {
		panic("log.Logger received a nil *zap.Logger")
	}

	logger := l.WithOptions(zap.AddCallerSkip(1)).Named(name)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			// captured before the handler runs, the gateway rewrite changes it
			path := r.URL.Path

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				ce := logger.Check(levelFor(r.Method, path, status), "HTTP request completed: "+path)
				if ce == nil {
					return
				}
				ce.Write(
					zap.String("type", "http_request"),
					zap.String("request_id", requestID(r)),
					zap.String("http_method", r.Method),
					zap.String("http_path", path),
					zap.String("http_query", r.URL.RawQuery),
					zap.String("http_route", routePattern(r)),
					zap.String("remote_addr", clientIP(r)),
					zap.String("user_agent", r.UserAgent()),
					zap.Int("http_status_code", status),
					zap.String("http_status_text", statusLabel(status)),
					zap.Int("response_bytes", ww.BytesWritten()),
					zap.Duration("latency", time.Since(start)),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// ConditionalLogger only logs requests when logLevel is debug or trace.
func ConditionalLogger(logLevel string, l *zap.Logger, name string) func(next http.Handler) http.Handler {
	if l == nil {
		panic("log.ConditionalLogger received a nil *zap.Logger")
	}

	switch strings.ToLower(logLevel) {
	case "debug", "trace":
		l.Named(name).Info("HTTP request logging enabled")
		return Logger(l, name)
	}

	return func(next http.Handler) http.Handler { return next }
}

func levelFor(method, path string, status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	}
	if _, ok := quietPaths[path]; ok && method == http.MethodGet {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func requestID(r *http.Request) string {
	if id := requestid.FromRequest(r); id != "" {
		return id
	}
	return middleware.GetReqID(r.Context())
}

// clientIP prefers the proxy headers over the connection address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func statusLabel(status int) string {
	code := strconv.Itoa(status)
	switch status / 100 {
	case 1, 2:
		return code + " OK"
	case 3:
		return code + " Redirect"
	case 4:
		return code + " Client Error"
	case 5:
		return code + " Server Error"
	}
	return code + " Unknown"
}
