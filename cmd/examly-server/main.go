package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/m-fukuda/examly/internal/bootstrap"
	"github.com/m-fukuda/examly/internal/config"
	"github.com/m-fukuda/examly/internal/database"
	"github.com/m-fukuda/examly/internal/exam"
	"github.com/m-fukuda/examly/internal/logging"
	"github.com/m-fukuda/examly/internal/server"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "examly-server",
		Short:        "Serve the exam and review API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configFile)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", os.Getenv("EXAMLY_CONFIG"), "path to the config file")
	return cmd
}

func run(ctx context.Context, configFile string) error {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("loader.Load() > %w", err)
	}

	logger := logging.NewLogger(os.Stderr, logging.ParseLevel(cfg.Logging.Level))

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(db, cfg.Database.Database); err != nil {
		return fmt.Errorf("database.Migrate() > %w", err)
	}

	service := exam.NewExamService(db)
	handler := server.NewExamHandler(service, logger, cfg.Review.DefaultQueueLimit)
	httpServer := server.New(cfg.Server, handler)

	app := bootstrap.New()
	app.AddCloser(db.Close)
	app.AddShutdownHook(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	})

	return app.Run(ctx, func(ctx context.Context) error {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe() > %w", err)
		}
		return nil
	})
}
