// Package logging holds the Printf-style logger shared by the regui host,
// the regctl CLI and the browser adapter.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"sync"
	"time"
)

// Logger represents the minimal logging interface used across the project.
type Logger interface {
	Printf(format string, v ...any)
}

type stdLoggerProvider interface {
	StdLogger() *log.Logger
}

type stdLogger struct {
	base *log.Logger
}

type newlineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

type discard struct{}

var (
	defaultWriter   io.Writer = os.Stdout
	defaultWriterMu sync.RWMutex
)

// RequestIDHeader carries the correlation id stamped on forwarded requests.
const RequestIDHeader = "X-Request-ID"

const maxLoggedBody = 4096

// New returns a Logger that writes to the default writer using Go's
// date/time flags.
func New() Logger {
	return NewWithWriter(getDefaultWriter())
}

// NewWithWriter builds a Logger that writes to w and keeps a blank line
// before each timestamped entry so multi-line dumps stay readable.
func NewWithWriter(w io.Writer) Logger {
	if w == nil {
		w = os.Stdout
	}
	return &stdLogger{base: log.New(&newlineWriter{w: w}, "", log.LstdFlags)}
}

// Discard returns a Logger that drops everything.
func Discard() Logger { return discard{} }

func (discard) Printf(string, ...any) {}

// OrDiscard returns logger, or a discarding Logger when it is nil.
func OrDiscard(logger Logger) Logger {
	if logger == nil {
		return discard{}
	}
	return logger
}

// SetDefaultWriter overrides the writer used by New().
func SetDefaultWriter(w io.Writer) {
	defaultWriterMu.Lock()
	defer defaultWriterMu.Unlock()
	if w == nil {
		defaultWriter = os.Stdout
		return
	}
	defaultWriter = w
}

func getDefaultWriter() io.Writer {
	defaultWriterMu.RLock()
	defer defaultWriterMu.RUnlock()
	return defaultWriter
}

// AsStdLogger returns the underlying *log.Logger when available so packages
// like net/http can keep using their native logger type.
func AsStdLogger(logger Logger) *log.Logger {
	if logger == nil {
		return nil
	}
	if provider, ok := logger.(stdLoggerProvider); ok {
		return provider.StdLogger()
	}
	return nil
}

func (l *stdLogger) Printf(format string, v ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Printf(format, v...)
}

func (l *stdLogger) StdLogger() *log.Logger {
	if l == nil {
		return nil
	}
	return l.base
}

func (w *newlineWriter) Write(p []byte) (int, error) {
	if w == nil || w.w == nil {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.w.Write([]byte("\n")); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if _, err := w.w.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WithHTTPLogging wraps next so every request is logged with its request id,
// status and duration. Request bodies are dumped for non-GET requests since
// those are the form submissions worth auditing.
func WithHTTPLogging(next http.Handler, logger Logger) http.Handler {
	if logger == nil || next == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if dump, err := httputil.DumpRequest(r, true); err == nil {
				logger.Printf("---- %s %s from %s [%s] ----\n%s", r.Method, r.URL.Path, r.RemoteAddr, id, truncate(dump))
			} else {
				logger.Printf("dump request from %s: %v", r.RemoteAddr, err)
			}
		}

		lrw := newLoggingResponseWriter(w)
		next.ServeHTTP(lrw, r)

		if id == "" {
			id = r.Header.Get(RequestIDHeader)
		}
		status := lrw.StatusCode()
		logger.Printf("%s %s -> %d %s (%s) [%s]", r.Method, r.URL.Path, status, http.StatusText(status), time.Since(started).Round(time.Millisecond), id)
		if status >= http.StatusBadRequest {
			logger.Printf("---- error body for %s %s ----\n%s", r.Method, r.URL.Path, lrw.LoggedBody())
		}
	})
}

func truncate(b []byte) string {
	if len(b) <= maxLoggedBody {
		return string(b)
	}
	return fmt.Sprintf("%s\n-- truncated after %d bytes --", b[:maxLoggedBody], maxLoggedBody)
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status    int
	buf       bytes.Buffer
	truncated bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	if remaining := maxLoggedBody - lrw.buf.Len(); remaining > 0 {
		if len(b) > remaining {
			lrw.buf.Write(b[:remaining])
			lrw.truncated = true
		} else {
			lrw.buf.Write(b)
		}
	} else {
		lrw.truncated = true
	}
	return lrw.ResponseWriter.Write(b)
}

func (lrw *loggingResponseWriter) StatusCode() int {
	if lrw.status == 0 {
		return http.StatusOK
	}
	return lrw.status
}

func (lrw *loggingResponseWriter) LoggedBody() string {
	body := lrw.buf.String()
	if lrw.truncated {
		return fmt.Sprintf("%s\n-- response truncated after %d bytes --", body, maxLoggedBody)
	}
	return body
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
