package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/trustbuddy/internal/pipeline"
	"github.com/ppiankov/trustbuddy/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the TrustBuddy HTTP API",
	Long: `Serve exposes the analyzers over HTTP for the dashboard.

Endpoints:
  GET  /healthz
  POST /v1/claims     {"text": "..."}
  POST /v1/urls       {"url": "..."}
  POST /v1/images     multipart field "image"
  POST /v1/quiz/runs
  GET  /v1/quiz

Example:
  trustbuddy serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if logger.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer := pipeline.NewAnalyzer(cfg, pipeline.WithLogger(logger))
	srv := server.New(cfg, analyzer, logger)
	return srv.Run(ctx)
}
