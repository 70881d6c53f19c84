package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/relwatch/relwatch/internal/store"
)

// CheckRunner runs one changelog check round.
type CheckRunner interface {
	Run(ctx context.Context) error
}

type Handlers struct {
	checker    CheckRunner
	repository store.Repository // nil when web push is not configured
	log        zerolog.Logger
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256DH string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

// NewRouter wires the trigger, health, metrics, and subscription endpoints.
// The subscription routes are registered only when a repository is present.
func NewRouter(checker CheckRunner, repository store.Repository, metricsHandler http.Handler, log zerolog.Logger) http.Handler {
	handlers := &Handlers{checker: checker, repository: repository, log: log}
	router := chi.NewRouter()

	router.Get("/healthz", handlers.healthz)
	router.Handle("/metrics", metricsHandler)
	router.Route("/api", func(r chi.Router) {
		r.Post("/check", handlers.check)
		if repository != nil {
			r.Post("/subscribe", handlers.subscribe)
			r.Post("/unsubscribe", handlers.unsubscribe)
		}
	})

	return router
}

func (handlers *Handlers) healthz(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write([]byte("ok"))
}

// check runs one round synchronously. The caller always gets a completion
// acknowledgment; round failures live in the log, not the response.
func (handlers *Handlers) check(writer http.ResponseWriter, request *http.Request) {
	_ = handlers.checker.Run(request.Context())
	writeJSON(writer, http.StatusOK, map[string]string{"status": "completed"})
}

func (handlers *Handlers) subscribe(writer http.ResponseWriter, request *http.Request) {
	var payload subscribeRequest
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		writeJSON(writer, http.StatusUnprocessableEntity, map[string]string{"error": "invalid_subscription"})
		return
	}

	subscription := store.Subscription{
		Endpoint: strings.TrimSpace(payload.Endpoint),
		P256DH:   strings.TrimSpace(payload.Keys.P256DH),
		Auth:     strings.TrimSpace(payload.Keys.Auth),
	}
	if subscription.Endpoint == "" || subscription.P256DH == "" || subscription.Auth == "" {
		writeJSON(writer, http.StatusUnprocessableEntity, map[string]string{"error": "invalid_subscription"})
		return
	}

	created, err := handlers.repository.Upsert(request.Context(), subscription)
	if err != nil {
		handlers.log.Error().Err(err).Msg("subscribe upsert failed")
		writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
	}
	writeJSON(writer, statusCode, map[string]string{"status": "active"})
}

func (handlers *Handlers) unsubscribe(writer http.ResponseWriter, request *http.Request) {
	var payload unsubscribeRequest
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		writeJSON(writer, http.StatusUnprocessableEntity, map[string]string{"error": "missing_endpoint"})
		return
	}

	endpoint := strings.TrimSpace(payload.Endpoint)
	if endpoint == "" {
		writeJSON(writer, http.StatusUnprocessableEntity, map[string]string{"error": "missing_endpoint"})
		return
	}

	if err := handlers.repository.DeleteByEndpoint(request.Context(), endpoint); err != nil {
		handlers.log.Error().Err(err).Msg("unsubscribe delete failed")
		writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	writeJSON(writer, http.StatusOK, map[string]string{"status": "inactive"})
}

func writeJSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}
