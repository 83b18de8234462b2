package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-render/pkg/config"
	"github.com/nikogura/resume-render/pkg/resume"
	"github.com/nikogura/resume-render/pkg/server"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the résumé over HTTP",
	Long: `Serve the résumé, rendering it on every request.

The locale comes from ?lng=, then the lng cookie, then Accept-Language.
/lang/{locale} switches and remembers the locale, /data/ serves the data
directory and /api/document returns the merged document as JSON.

Example:
  resume-render serve
  resume-render serve --addr :3000`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	var pipeline *resume.Pipeline
	pipeline, err = newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	srv := server.NewServer(pipeline, logger, cfg.Server.DataDir)
	err = srv.ListenAndServe(ctx, addr)
	return err
}
