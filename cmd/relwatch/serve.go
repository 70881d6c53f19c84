package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/relwatch/relwatch/internal/config"
	"github.com/relwatch/relwatch/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the watcher service",
	Long: `Run the watcher as a long-lived service: the check round executes on the
configured schedule (default every 15 minutes) and can also be triggered
manually via POST /api/check. Metrics are exposed on /metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	ctx := context.Background()
	app, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Schedule, func() {
		_ = app.checker.Run(context.Background())
	}); err != nil {
		return err
	}
	scheduler.Start()
	log.Info().Str("schedule", cfg.Schedule).Str("url", cfg.ChangelogURL).Msg("changelog checks scheduled")

	router := httpapi.NewRouter(app.checker, app.repository, app.metrics.Handler(), log.With().Str("component", "httpapi").Logger())
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	log.Info().Msg("shutting down")

	// Let an in-flight scheduled round run to completion.
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	return nil
}
