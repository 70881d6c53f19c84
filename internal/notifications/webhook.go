package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// WebhookNotifier posts the message to an arbitrary HTTP endpoint, for
// subscribers that want to route release notes into their own systems.
// No length cap is applied.
type WebhookNotifier struct {
	client *http.Client
	url    string
	token  string
	log    zerolog.Logger
}

type webhookPayload struct {
	Body string `json:"body"`
}

func NewWebhookNotifier(client *http.Client, url, token string, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{client: client, url: strings.TrimSpace(url), token: strings.TrimSpace(token), log: log}
}

func (w *WebhookNotifier) Name() string {
	return "webhook"
}

func (w *WebhookNotifier) Send(ctx context.Context, msg string) Result {
	payload, err := json.Marshal(webhookPayload{Body: msg})
	if err != nil {
		w.log.Error().Err(err).Msg("marshal webhook payload")
		return Result{Platform: w.Name()}
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", w.url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.Error().Err(err).Msg("post webhook")
		return Result{Platform: w.Name()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		w.log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("webhook delivery failed")
		return Result{Platform: w.Name()}
	}

	return Result{Platform: w.Name(), Success: true}
}
