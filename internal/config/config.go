// Package config loads the watcher configuration with koanf.
// Priority: environment variables (RELWATCH_ prefix) > YAML config file >
// defaults. Nested keys use a double underscore in the environment, e.g.
// RELWATCH_TELEGRAM__BOT_TOKEN maps to telegram.bot_token.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "RELWATCH_"

type Config struct {
	// ChangelogURL is the document polled for version entries. Required.
	ChangelogURL string `koanf:"changelog_url"`
	// Schedule is a robfig/cron spec for the automatic check.
	Schedule string `koanf:"schedule"`
	Port     string `koanf:"port"`

	LogLevel   string `koanf:"log_level"`
	LogConsole bool   `koanf:"log_console"`

	Checkpoint CheckpointConfig `koanf:"checkpoint"`

	Telegram TelegramConfig `koanf:"telegram"`
	Discord  DiscordConfig  `koanf:"discord"`
	Slack    SlackConfig    `koanf:"slack"`
	Webhook  WebhookConfig  `koanf:"webhook"`
	WebPush  WebPushConfig  `koanf:"webpush"`
}

type CheckpointConfig struct {
	// RedisURL selects the durable checkpoint store. Empty falls back to an
	// in-memory store (local runs only).
	RedisURL string `koanf:"redis_url"`
	Key      string `koanf:"key"`
}

type TelegramConfig struct {
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
	// ThreadID optionally routes messages into a forum topic. Ignored unless
	// it parses as an integer.
	ThreadID string `koanf:"thread_id"`
}

func (c TelegramConfig) Enabled() bool {
	return strings.TrimSpace(c.BotToken) != "" && strings.TrimSpace(c.ChatID) != ""
}

type DiscordConfig struct {
	WebhookURL string `koanf:"webhook_url"`
}

func (c DiscordConfig) Enabled() bool {
	return strings.TrimSpace(c.WebhookURL) != ""
}

type SlackConfig struct {
	WebhookURL string `koanf:"webhook_url"`
}

func (c SlackConfig) Enabled() bool {
	return strings.TrimSpace(c.WebhookURL) != ""
}

type WebhookConfig struct {
	URL   string `koanf:"url"`
	Token string `koanf:"token"`
}

func (c WebhookConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

type WebPushConfig struct {
	VAPIDPublicKey  string `koanf:"vapid_public_key"`
	VAPIDPrivateKey string `koanf:"vapid_private_key"`
	Subject         string `koanf:"subject"`
	DatabaseURL     string `koanf:"database_url"`
	TTLSeconds      int    `koanf:"ttl_seconds"`
}

func (c WebPushConfig) Enabled() bool {
	return strings.TrimSpace(c.VAPIDPublicKey) != "" &&
		strings.TrimSpace(c.VAPIDPrivateKey) != "" &&
		strings.TrimSpace(c.Subject) != "" &&
		strings.TrimSpace(c.DatabaseURL) != ""
}

// Load reads configuration from defaults, the optional YAML file at path,
// and the environment, in increasing priority.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		_ = k.Set(key, value)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.ChangelogURL) == "" {
		return Config{}, errors.New("changelog_url is required")
	}

	return cfg, nil
}

func defaults() map[string]any {
	return map[string]any{
		"schedule":            "@every 15m",
		"port":                "8080",
		"log_level":           "info",
		"checkpoint.key":      "relwatch:last_version",
		"webpush.ttl_seconds": 43200,
	}
}

func envTransform(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
