// Package checker runs the top-level check round: fetch, parse, diff,
// notify, and conditionally advance the checkpoint.
package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/relwatch/relwatch/internal/changelog"
	"github.com/relwatch/relwatch/internal/checkpoint"
	"github.com/relwatch/relwatch/internal/dispatch"
	"github.com/relwatch/relwatch/internal/message"
	"github.com/relwatch/relwatch/internal/metrics"
)

type Checker struct {
	fetcher    *changelog.Fetcher
	store      checkpoint.Store
	dispatcher *dispatch.Dispatcher
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

func New(fetcher *changelog.Fetcher, store checkpoint.Store, dispatcher *dispatch.Dispatcher, m *metrics.Metrics, log zerolog.Logger) *Checker {
	return &Checker{
		fetcher:    fetcher,
		store:      store,
		dispatcher: dispatcher,
		metrics:    m,
		log:        log,
	}
}

// Run executes one complete check round. The returned error exists for
// operator logging and CLI exit codes only; the HTTP trigger deliberately
// ignores it and acknowledges completion either way.
func (c *Checker) Run(ctx context.Context) error {
	started := time.Now()
	c.metrics.RecordCheckStart()

	if err := c.run(ctx); err != nil {
		c.metrics.RecordCheckFailure(time.Since(started))
		c.log.Error().Err(err).Msg("check round failed")
		return err
	}

	c.metrics.RecordCheckSuccess(time.Since(started))
	return nil
}

func (c *Checker) run(ctx context.Context) error {
	raw, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.metrics.RecordFetchError()
		return fmt.Errorf("fetch changelog: %w", err)
	}

	entries := changelog.Parse(raw)
	if len(entries) == 0 {
		// Malformed or empty source. Transient until proven otherwise.
		c.log.Warn().Msg("changelog parsed to zero entries, skipping round")
		return nil
	}
	c.metrics.RecordEntriesParsed(len(entries))

	newest := entries[0].Version

	last, found, err := c.store.Get(ctx)
	if err != nil {
		c.metrics.RecordCheckpointError()
		return fmt.Errorf("read checkpoint: %w", err)
	}

	if !found {
		// First activation: baseline on the current newest version instead
		// of blasting the entire history to subscribers.
		c.log.Info().Str("version", newest).Msg("no checkpoint yet, storing baseline")
		return c.advance(ctx, newest)
	}

	if last == newest {
		c.log.Debug().Str("version", newest).Msg("changelog unchanged")
		return nil
	}

	pending := changelog.NewSince(entries, last)
	if len(pending) == 0 {
		// The checkpointed version is no longer in the document: the source
		// was rewritten between checks. Resynchronize silently rather than
		// replay history.
		c.log.Warn().Str("checkpoint", last).Str("newest", newest).Msg("checkpoint absent from changelog, resyncing")
		return c.advance(ctx, newest)
	}
	c.metrics.RecordEntriesNew(len(pending))
	c.log.Info().Int("count", len(pending)).Str("newest", newest).Msg("new versions detected")

	// Oldest first, reversing the parse order. Every round must succeed
	// before the checkpoint moves; a failed batch is retried whole next
	// round, accepting duplicates over missed updates.
	allDelivered := true
	for i := len(pending) - 1; i >= 0; i-- {
		entry := pending[i]
		if c.dispatcher.Dispatch(ctx, message.Format(entry)) {
			c.metrics.RecordEntryNotified()
			c.log.Info().Str("version", entry.Version).Msg("release notified")
		} else {
			allDelivered = false
			c.log.Error().Str("version", entry.Version).Msg("notification round failed")
		}
	}

	if !allDelivered {
		return fmt.Errorf("notification batch incomplete, checkpoint stays at %s", last)
	}

	return c.advance(ctx, newest)
}

func (c *Checker) advance(ctx context.Context, version string) error {
	if err := c.store.Put(ctx, version); err != nil {
		c.metrics.RecordCheckpointError()
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}
