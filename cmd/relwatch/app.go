package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/relwatch/relwatch/internal/changelog"
	"github.com/relwatch/relwatch/internal/checker"
	"github.com/relwatch/relwatch/internal/checkpoint"
	"github.com/relwatch/relwatch/internal/config"
	"github.com/relwatch/relwatch/internal/dispatch"
	"github.com/relwatch/relwatch/internal/metrics"
	"github.com/relwatch/relwatch/internal/notifications"
	"github.com/relwatch/relwatch/internal/store"
)

// app holds the assembled service: one checker wired to the configured
// checkpoint store and platform set.
type app struct {
	log        zerolog.Logger
	metrics    *metrics.Metrics
	checker    *checker.Checker
	repository store.Repository // nil unless web push is configured
	closers    []func()
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.LogConsole {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func buildApp(ctx context.Context, cfg config.Config, log zerolog.Logger) (*app, error) {
	a := &app{log: log, metrics: metrics.New()}

	httpClient := &http.Client{Timeout: 15 * time.Second}

	checkpointStore, err := a.buildCheckpointStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	notifiers, err := a.buildNotifiers(ctx, cfg, httpClient)
	if err != nil {
		a.Close()
		return nil, err
	}

	fetcher := changelog.NewFetcher(httpClient, cfg.ChangelogURL)
	dispatcher := dispatch.New(notifiers, a.metrics, log.With().Str("component", "dispatch").Logger())
	log.Info().Strs("platforms", dispatcher.Platforms()).Msg("platforms configured")
	a.checker = checker.New(fetcher, checkpointStore, dispatcher, a.metrics, log.With().Str("component", "checker").Logger())

	return a, nil
}

func (a *app) buildCheckpointStore(ctx context.Context, cfg config.Config) (checkpoint.Store, error) {
	if cfg.Checkpoint.RedisURL == "" {
		a.log.Warn().Msg("no checkpoint redis_url configured, using in-memory store (checkpoint will not survive restarts)")
		return checkpoint.NewMemory(), nil
	}

	options, err := redis.ParseURL(cfg.Checkpoint.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse checkpoint redis_url: %w", err)
	}

	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("checkpoint redis ping: %w", err)
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	return checkpoint.NewRedis(client, cfg.Checkpoint.Key), nil
}

func (a *app) buildNotifiers(ctx context.Context, cfg config.Config, httpClient *http.Client) ([]notifications.Notifier, error) {
	var notifiers []notifications.Notifier

	if cfg.Telegram.Enabled() {
		log := a.log.With().Str("platform", "telegram").Logger()
		notifiers = append(notifiers, notifications.NewTelegramNotifier(httpClient, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.ThreadID, log))
	}
	if cfg.Discord.Enabled() {
		log := a.log.With().Str("platform", "discord").Logger()
		notifiers = append(notifiers, notifications.NewDiscordNotifier(httpClient, cfg.Discord.WebhookURL, log))
	}
	if cfg.Slack.Enabled() {
		log := a.log.With().Str("platform", "slack").Logger()
		notifiers = append(notifiers, notifications.NewSlackNotifier(httpClient, cfg.Slack.WebhookURL, log))
	}
	if cfg.Webhook.Enabled() {
		log := a.log.With().Str("platform", "webhook").Logger()
		notifiers = append(notifiers, notifications.NewWebhookNotifier(httpClient, cfg.Webhook.URL, cfg.Webhook.Token, log))
	}

	if cfg.WebPush.Enabled() {
		pool, err := pgxpool.New(ctx, cfg.WebPush.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("webpush database connect: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("webpush database ping: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		a.repository = store.NewPostgres(pool)
		log := a.log.With().Str("platform", "webpush").Logger()
		notifiers = append(notifiers, notifications.NewWebPushNotifier(a.repository, notifications.WebPushConfig{
			VAPIDPublicKey:  cfg.WebPush.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.WebPush.VAPIDPrivateKey,
			Subject:         cfg.WebPush.Subject,
			TTLSeconds:      cfg.WebPush.TTLSeconds,
		}, log))
	}

	return notifiers, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
