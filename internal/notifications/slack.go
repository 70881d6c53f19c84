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

const slackMaxLen = 40000

type SlackNotifier struct {
	client     *http.Client
	webhookURL string
	log        zerolog.Logger
}

type slackPayload struct {
	Text string `json:"text"`
}

func NewSlackNotifier(client *http.Client, webhookURL string, log zerolog.Logger) *SlackNotifier {
	return &SlackNotifier{client: client, webhookURL: strings.TrimSpace(webhookURL), log: log}
}

func (s *SlackNotifier) Name() string {
	return "slack"
}

func (s *SlackNotifier) Send(ctx context.Context, msg string) Result {
	payload, err := json.Marshal(slackPayload{Text: message.Truncate(msg, slackMaxLen)})
	if err != nil {
		s.log.Error().Err(err).Msg("marshal slack payload")
		return Result{Platform: s.Name()}
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error().Err(err).Msg("post slack webhook")
		return Result{Platform: s.Name()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		s.log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("slack delivery failed")
		return Result{Platform: s.Name()}
	}

	return Result{Platform: s.Name(), Success: true}
}
