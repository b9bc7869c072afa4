package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"livestream-results-ui/config"
	apiv1 "livestream-results-ui/internal/api/v1"
	"livestream-results-ui/internal/httpserver"
	"livestream-results-ui/internal/logging"
	"livestream-results-ui/internal/ui"
)

const (
	defaultConfigPath   = "config.json"
	defaultLogDir       = "data"
	defaultLogFileName  = "regui.log"
	defaultReadTimeout  = 10 * time.Second
	defaultShutdownWait = 5 * time.Second
)

// Options controls how the application boots and where it loads configuration from.
type Options struct {
	ConfigPath  string
	LogDir      string
	LogFile     string
	ReadTimeout time.Duration
	// BackendURL overrides backend.url from the config file.
	BackendURL string
	// UI overrides the embedded assets; tests use it.
	UI http.Handler
	// Ready, when set, receives the bound address once the server listens.
	Ready func(addr string)
}

// Run wires dependencies together and blocks until the provided context is cancelled
// or the HTTP server exits with an error.
func Run(ctx context.Context, opts Options) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	opts = opts.withDefaults()

	logFile, err := configureLogging(filepath.Join(opts.LogDir, opts.LogFile))
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logFile.Close()
	logger := logging.New()

	appCfg, err := loadConfig(opts.ConfigPath, logger)
	if err != nil {
		return err
	}
	if backendURL := strings.TrimSpace(opts.BackendURL); backendURL != "" {
		appCfg.Backend.URL = backendURL
	}
	target, err := appCfg.Backend.ParsedURL()
	if err != nil {
		return err
	}

	uiHandler := opts.UI
	if uiHandler == nil {
		uiHandler = ui.Handler()
	}

	router := apiv1.NewRouter(apiv1.Options{
		Logger:  logger,
		Backend: target,
		UI:      uiHandler,
		RuntimeInfo: apiv1.RuntimeInfo{
			Name:       "regui",
			Addr:       appCfg.Server.Addr,
			Port:       appCfg.Server.Port,
			BackendURL: target.String(),
		},
	})

	srv, err := httpserver.New(httpserver.Config{
		Addr:        appCfg.Server.Addr,
		Port:        appCfg.Server.Port,
		ReadTimeout: opts.ReadTimeout,
		Logger:      logger,
		Handler:     router,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	if opts.Ready != nil {
		go notifyReady(ctx, srv, opts.Ready)
	}
	logger.Printf("Forwarding registration endpoints to %s", target)

	select {
	case <-ctx.Done():
		logger.Printf("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownWait)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func notifyReady(ctx context.Context, srv *httpserver.Server, ready func(string)) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if addr := srv.ListenAddr(); addr != nil {
			ready(addr.String())
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// loadConfig reads path, falling back to defaults only when the default
// config file is absent.
func loadConfig(path string, logger logging.Logger) (config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == defaultConfigPath && errors.Is(err, os.ErrNotExist) {
		logger.Printf("No %s found, using defaults", path)
		return config.Default(), nil
	}
	return config.Config{}, err
}

func (o Options) withDefaults() Options {
	if o.ConfigPath == "" {
		o.ConfigPath = defaultConfigPath
	}
	if o.LogDir == "" {
		o.LogDir = defaultLogDir
	}
	if o.LogFile == "" {
		o.LogFile = defaultLogFileName
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = defaultReadTimeout
	}
	return o
}
