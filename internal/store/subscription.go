package store

import "context"

// Subscription is one browser push subscription registered through the HTTP
// API.
type Subscription struct {
	Endpoint string `json:"endpoint"`
	P256DH   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

// Repository persists web push subscriptions.
type Repository interface {
	Upsert(ctx context.Context, subscription Subscription) (bool, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	List(ctx context.Context) ([]Subscription, error)
}
