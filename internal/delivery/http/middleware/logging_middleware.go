package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"medical-records-api/internal/infrastructure/metrics"
	"medical-records-api/pkg/response"

	"github.com/sirupsen/logrus"
)

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

type LoggingMiddleware struct {
	log     *logrus.Logger
	metrics metrics.Recorder
}

func NewLoggingMiddleware(log *logrus.Logger, metrics metrics.Recorder) *LoggingMiddleware {
	return &LoggingMiddleware{
		log:     log,
		metrics: metrics,
	}
}

// Handle logs one entry per request and records it in the HTTP metrics
func (m *LoggingMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		m.metrics.RecordHTTPRequest(r.Method, rec.statusCode, duration)

		entry := m.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.statusCode,
			"duration_ms": float64(duration.Nanoseconds()) / float64(time.Millisecond),
		})
		if accountID, ok := GetAccountIDFromContext(r.Context()); ok {
			entry = entry.WithField("account_id", accountID)
		}

		switch {
		case rec.statusCode >= 500:
			entry.Error("http_request")
		case rec.statusCode >= 400:
			entry.Warn("http_request")
		default:
			entry.Info("http_request")
		}
	})
}

// Recover turns a panic into a 500 response
func (m *LoggingMiddleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.WithFields(logrus.Fields{
					"panic":  rec,
					"method": r.Method,
					"path":   r.URL.Path,
					"stack":  string(debug.Stack()),
				}).Error("Panic recovered")
				response.InternalServerError(w, "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
