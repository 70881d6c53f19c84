package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlack_Send(t *testing.T) {
	var got slackPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	n := NewSlackNotifier(server.Client(), server.URL, zerolog.Nop())
	result := n.Send(context.Background(), "release text")

	assert.True(t, result.Success)
	assert.Equal(t, "slack", result.Platform)
	assert.Equal(t, "release text", got.Text)
}

func TestSlack_FailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no_service"))
	}))
	defer server.Close()

	n := NewSlackNotifier(server.Client(), server.URL, zerolog.Nop())
	result := n.Send(context.Background(), "hi")

	assert.False(t, result.Success)
	assert.Equal(t, "slack", result.Platform)
}
