// Package checkpoint persists the single "last notified version" marker.
package checkpoint

import "context"

// Store is an external durable map holding one value under one fixed logical
// key. Get reports absence separately from errors: an absent checkpoint
// means the system has never completed a scan.
type Store interface {
	Get(ctx context.Context) (version string, found bool, err error)
	Put(ctx context.Context, version string) error
}
