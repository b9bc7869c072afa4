package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/google/uuid"

	"livestream-results-ui/internal/backend"
	"livestream-results-ui/internal/logging"
)

// RuntimeInfo describes the pieces of host configuration the console exposes.
type RuntimeInfo struct {
	Name       string `json:"name"`
	Addr       string `json:"addr"`
	Port       string `json:"port"`
	BackendURL string `json:"backendUrl"`
}

// Options configures the HTTP router.
type Options struct {
	Logger      logging.Logger
	RuntimeInfo RuntimeInfo
	// Backend is where the registration endpoints are forwarded. A nil
	// Backend answers those paths with 502.
	Backend *url.URL
	// UI serves everything that is not an API path.
	UI http.Handler
}

// NewRouter constructs the host router: the four registration endpoints go
// to the backend, everything else to the UI handler.
func NewRouter(opts Options) http.Handler {
	mux := http.NewServeMux()
	logger := logging.OrDiscard(opts.Logger)

	forward := newForwarder(opts.Backend, logger)
	for _, p := range backend.Paths() {
		mux.Handle(p, forward)
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/server/config", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, opts.RuntimeInfo)
	})

	if opts.UI != nil {
		mux.Handle("/", opts.UI)
	} else {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("UI assets not configured"))
		})
	}

	return withRequestID(logging.WithHTTPLogging(mux, opts.Logger))
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// withRequestID stamps a request id on requests that arrive without one, so
// the host log and the backend log can be correlated.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(logging.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(logging.RequestIDHeader, id)
		}
		w.Header().Set(logging.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func newForwarder(target *url.URL, logger logging.Logger) http.Handler {
	if target == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "backend not configured", http.StatusBadGateway)
		})
	}
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorLog: logging.AsStdLogger(logger),
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			if errors.Is(err, r.Context().Err()) {
				return
			}
			logger.Printf("forward %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "backend unavailable", http.StatusBadGateway)
		},
	}
	return proxy
}
