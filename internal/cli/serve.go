package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/llm"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/server"
)

var serveAddr string

// serveCmd runs the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the CivicSentinel HTTP server",
	Long: `Serve the verified news feed and dataset query API over HTTP.

Endpoints:
  GET  /health
  POST /v1/feed
  GET  /v1/datasets
  GET  /v1/datasets/:name
  GET  /v1/datasets/search?q=<keyword>
  POST /v1/datasets/refresh

Example:
  civicsentinel serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, provider)
	return srv.Run(ctx)
}
