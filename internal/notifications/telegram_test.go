package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegram_Send(t *testing.T) {
	var got telegramPayload
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.Client(), "123:abc", "-1001", "42", zerolog.Nop())
	n.apiBase = server.URL

	result := n.Send(context.Background(), "release text")
	assert.True(t, result.Success)
	assert.Equal(t, "telegram", result.Platform)
	assert.Equal(t, "/bot123:abc/sendMessage", path)
	assert.Equal(t, "-1001", got.ChatID)
	assert.Equal(t, "release text", got.Text)
	assert.Equal(t, "Markdown", got.ParseMode)
	assert.Equal(t, 42, got.MessageThreadID)
}

func TestTelegram_ThreadIDOptional(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.Client(), "123:abc", "-1001", "not-a-number", zerolog.Nop())
	n.apiBase = server.URL

	result := n.Send(context.Background(), "hi")
	assert.True(t, result.Success)
	assert.NotContains(t, raw, "message_thread_id")
}

func TestTelegram_TruncatesAtLimit(t *testing.T) {
	var got telegramPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.Client(), "123:abc", "-1001", "", zerolog.Nop())
	n.apiBase = server.URL

	n.Send(context.Background(), strings.Repeat("z", telegramMaxLen+500))
	assert.Equal(t, telegramMaxLen, utf8.RuneCountInString(got.Text))
	assert.True(t, strings.HasSuffix(got.Text, "\n..."))
}

func TestTelegram_FailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"description":"bot was blocked"}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.Client(), "123:abc", "-1001", "", zerolog.Nop())
	n.apiBase = server.URL

	result := n.Send(context.Background(), "hi")
	assert.False(t, result.Success)
	assert.Equal(t, "telegram", result.Platform)
}

func TestTelegram_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	n := NewTelegramNotifier(http.DefaultClient, "123:abc", "-1001", "", zerolog.Nop())
	n.apiBase = server.URL

	result := n.Send(context.Background(), "hi")
	assert.False(t, result.Success)
}
