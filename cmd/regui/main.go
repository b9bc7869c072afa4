// Command regui serves the registration console and forwards its API calls
// to the registration backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"livestream-results-ui/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "regui: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "regui",
		Short:         "Serve the race registration console",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", envOr("REGUI_CONFIG", "config.json"), "path to config.json")
	flags.StringVar(&opts.BackendURL, "backend", envOr("REGUI_BACKEND_URL", ""), "registration backend URL (overrides backend.url)")
	flags.StringVar(&opts.LogDir, "log-dir", envOr("REGUI_LOG_DIR", "data"), "directory for regui.log and its archive")
	flags.DurationVar(&opts.ReadTimeout, "read-timeout", 10*time.Second, "read header timeout for incoming requests")
	return cmd
}

func envOr(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
