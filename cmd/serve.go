package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/internal/adapters/report"
	"github.com/kamal-hamza/gridrisk/internal/server"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve sessions, projections and reports over HTTP",
	Long: `Start the HTTP API. Every viewer opens a session which generates its
own sample once; later requests read projections of that sample.

Endpoints:
  GET    /health
  GET    /metrics                              Prometheus metrics
  POST   /api/sessions                         {"count": 150, "seed": 0}
  GET    /api/sessions
  DELETE /api/sessions/{id}
  GET    /api/sessions/{id}/assets             ?risk=CRITICAL,HIGH&type=&location=&limit=&q=
  GET    /api/sessions/{id}/assets/{assetID}   asset with prediction readout
  GET    /api/sessions/{id}/summary
  GET    /api/sessions/{id}/report             HTML chart report

Sessions older than session_ttl_minutes are expired.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default server_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = appConfig.ServerAddr
	}

	srv, err := server.New(server.Config{
		Addr:         addr,
		Sessions:     sessionService,
		Renderer:     report.NewEChartsRenderer(appConfig.ReportTheme),
		Metrics:      metricsRegistry,
		Logger:       logger,
		DefaultCount: appConfig.SampleSize,
		SessionTTL:   appConfig.SessionTTL(),
		Version:      Version,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(ui.FormatRocket("gridrisk API listening on " + addr))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))

	return srv.ListenAndServe(ctx)
}
