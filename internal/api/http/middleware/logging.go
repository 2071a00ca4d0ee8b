package middleware

import (
	"bufio"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// responseWriter запоминает статус ответа для лога
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap открывает исходный writer для http.ResponseController
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Flush нужен потоковым ответам WatchBooks
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack нужен websocket прокси
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

// Logging логирует HTTP запросы со статусом и временем выполнения.
// Ответы 5xx пишутся уровнем error, 4xx - warn.
func Logging(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		level := zapcore.InfoLevel
		switch {
		case ww.statusCode >= http.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case ww.statusCode >= http.StatusBadRequest:
			level = zapcore.WarnLevel
		}
		log.Log(level, "request",
			zap.String("method", r.Method),
			zap.String("uri", r.URL.RequestURI()),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", ww.statusCode),
			zap.Duration("latency", time.Since(start)),
		)
	})
}
