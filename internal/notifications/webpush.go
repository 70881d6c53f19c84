package notifications

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog"

	"github.com/relwatch/relwatch/internal/message"
	"github.com/relwatch/relwatch/internal/store"
)

// Push services reject payloads above roughly 4 KB; stay under that after
// JSON framing.
const webPushMaxLen = 3800

type WebPushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subject         string
	TTLSeconds      int
}

// WebPushNotifier delivers the message to every stored browser subscription
// via VAPID web push. The round succeeds when at least one subscriber
// received it, or vacuously when nobody is subscribed; subscriptions the
// push service reports gone are dropped from the store.
type WebPushNotifier struct {
	repository store.Repository
	config     WebPushConfig
	log        zerolog.Logger
}

func NewWebPushNotifier(repository store.Repository, config WebPushConfig, log zerolog.Logger) *WebPushNotifier {
	return &WebPushNotifier{repository: repository, config: config, log: log}
}

func (w *WebPushNotifier) Name() string {
	return "webpush"
}

func (w *WebPushNotifier) Send(ctx context.Context, msg string) Result {
	subscriptions, err := w.repository.List(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("list push subscriptions")
		return Result{Platform: w.Name()}
	}
	if len(subscriptions) == 0 {
		return Result{Platform: w.Name(), Success: true}
	}

	payload, err := json.Marshal(map[string]string{
		"title": "New release",
		"body":  message.Truncate(msg, webPushMaxLen),
	})
	if err != nil {
		w.log.Error().Err(err).Msg("marshal web push payload")
		return Result{Platform: w.Name()}
	}

	delivered := 0
	for _, subscription := range subscriptions {
		if w.deliver(ctx, subscription, payload) {
			delivered++
		}
	}

	if delivered == 0 {
		w.log.Error().Int("subscriptions", len(subscriptions)).Msg("web push delivered to no subscribers")
		return Result{Platform: w.Name()}
	}

	return Result{Platform: w.Name(), Success: true}
}

func (w *WebPushNotifier) deliver(ctx context.Context, subscription store.Subscription, payload []byte) bool {
	options := &webpush.Options{
		Subscriber:      w.config.Subject,
		VAPIDPublicKey:  w.config.VAPIDPublicKey,
		VAPIDPrivateKey: w.config.VAPIDPrivateKey,
		TTL:             w.config.TTLSeconds,
		Urgency:         webpush.UrgencyNormal,
		Topic:           "relwatch-release",
	}

	target := &webpush.Subscription{
		Endpoint: subscription.Endpoint,
		Keys: webpush.Keys{
			P256dh: subscription.P256DH,
			Auth:   subscription.Auth,
		},
	}

	response, err := webpush.SendNotification(payload, target, options)
	if err != nil {
		w.log.Error().Err(err).Str("endpoint", redactEndpoint(subscription.Endpoint)).Msg("web push send failed")
		return false
	}

	_, _ = io.Copy(io.Discard, response.Body)
	_ = response.Body.Close()

	if response.StatusCode >= 200 && response.StatusCode <= 299 {
		return true
	}

	if response.StatusCode == http.StatusGone {
		if err := w.repository.DeleteByEndpoint(ctx, subscription.Endpoint); err != nil {
			w.log.Error().Err(err).Str("endpoint", redactEndpoint(subscription.Endpoint)).Msg("delete gone subscription")
		}
		return false
	}

	w.log.Error().Int("status", response.StatusCode).Str("endpoint", redactEndpoint(subscription.Endpoint)).Msg("web push delivery failed")
	return false
}

func redactEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "https://") || strings.HasPrefix(endpoint, "http://") {
		parts := strings.Split(endpoint, "/")
		if len(parts) >= 3 {
			return parts[0] + "//" + parts[2]
		}
	}
	return "unknown"
}
