package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/relwatch/relwatch/internal/message"
)

const discordMaxLen = 2000

type DiscordNotifier struct {
	client     *http.Client
	webhookURL string
	log        zerolog.Logger
}

type discordPayload struct {
	Content string `json:"content"`
}

func NewDiscordNotifier(client *http.Client, webhookURL string, log zerolog.Logger) *DiscordNotifier {
	return &DiscordNotifier{client: client, webhookURL: strings.TrimSpace(webhookURL), log: log}
}

func (d *DiscordNotifier) Name() string {
	return "discord"
}

func (d *DiscordNotifier) Send(ctx context.Context, msg string) Result {
	payload, err := json.Marshal(discordPayload{Content: message.Truncate(msg, discordMaxLen)})
	if err != nil {
		d.log.Error().Err(err).Msg("marshal discord payload")
		return Result{Platform: d.Name()}
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", d.webhookURL, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Error().Err(err).Msg("post discord webhook")
		return Result{Platform: d.Name()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		d.log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("discord delivery failed")
		return Result{Platform: d.Name()}
	}

	return Result{Platform: d.Name(), Success: true}
}
