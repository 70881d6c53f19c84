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

func TestDiscord_Send(t *testing.T) {
	var got discordPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := NewDiscordNotifier(server.Client(), server.URL, zerolog.Nop())
	result := n.Send(context.Background(), "release text")

	assert.True(t, result.Success)
	assert.Equal(t, "discord", result.Platform)
	assert.Equal(t, "release text", got.Content)
}

func TestDiscord_TruncatesAtLimit(t *testing.T) {
	var got discordPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := NewDiscordNotifier(server.Client(), server.URL, zerolog.Nop())
	n.Send(context.Background(), strings.Repeat("z", discordMaxLen*2))

	assert.Equal(t, discordMaxLen, utf8.RuneCountInString(got.Content))
}

func TestDiscord_FailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer server.Close()

	n := NewDiscordNotifier(server.Client(), server.URL, zerolog.Nop())
	result := n.Send(context.Background(), "hi")

	assert.False(t, result.Success)
	assert.Equal(t, "discord", result.Platform)
}
