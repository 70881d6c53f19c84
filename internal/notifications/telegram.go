package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/relwatch/relwatch/internal/message"
)

const telegramMaxLen = 4096

type TelegramNotifier struct {
	client   *http.Client
	apiBase  string
	token    string
	chatID   string
	threadID int // 0 = post to the main chat, no thread
	log      zerolog.Logger
}

type telegramPayload struct {
	ChatID          string `json:"chat_id"`
	Text            string `json:"text"`
	ParseMode       string `json:"parse_mode"`
	MessageThreadID int    `json:"message_thread_id,omitempty"`
}

// NewTelegramNotifier builds a Telegram sendMessage notifier. threadID is an
// optional forum topic identifier; it is passed through only when it parses
// as an integer.
func NewTelegramNotifier(client *http.Client, token, chatID, threadID string, log zerolog.Logger) *TelegramNotifier {
	n := &TelegramNotifier{
		client:  client,
		apiBase: "https://api.telegram.org",
		token:   strings.TrimSpace(token),
		chatID:  strings.TrimSpace(chatID),
		log:     log,
	}
	if id, err := strconv.Atoi(strings.TrimSpace(threadID)); err == nil {
		n.threadID = id
	}
	return n
}

func (t *TelegramNotifier) Name() string {
	return "telegram"
}

func (t *TelegramNotifier) Send(ctx context.Context, msg string) Result {
	payload, err := json.Marshal(telegramPayload{
		ChatID:          t.chatID,
		Text:            message.Truncate(msg, telegramMaxLen),
		ParseMode:       "Markdown",
		MessageThreadID: t.threadID,
	})
	if err != nil {
		t.log.Error().Err(err).Msg("marshal telegram payload")
		return Result{Platform: t.Name()}
	}

	url := t.apiBase + "/bot" + t.token + "/sendMessage"
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		t.log.Error().Err(err).Msg("post telegram sendMessage")
		return Result{Platform: t.Name()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		t.log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("telegram delivery failed")
		return Result{Platform: t.Name()}
	}

	return Result{Platform: t.Name(), Success: true}
}
