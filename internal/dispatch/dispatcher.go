// Package dispatch fans a single message out to every configured platform.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/relwatch/relwatch/internal/metrics"
	"github.com/relwatch/relwatch/internal/notifications"
)

// Dispatcher holds the immutable set of platforms configured for this
// process. The set is decided once from configuration, not mutated between
// rounds.
type Dispatcher struct {
	notifiers []notifications.Notifier
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

func New(notifiers []notifications.Notifier, m *metrics.Metrics, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{notifiers: notifiers, metrics: m, log: log}
}

// Platforms returns the names of the configured notifiers.
func (d *Dispatcher) Platforms() []string {
	names := make([]string, 0, len(d.notifiers))
	for _, n := range d.notifiers {
		names = append(names, n.Name())
	}
	return names
}

// Dispatch sends message to every notifier concurrently and waits for all of
// them to settle. The round succeeds when at least one platform delivered;
// partial outages do not block the caller, but an empty platform set fails
// so a misconfigured process never advances its checkpoint.
func (d *Dispatcher) Dispatch(ctx context.Context, message string) bool {
	if len(d.notifiers) == 0 {
		d.log.Warn().Msg("no notification platforms configured")
		return false
	}

	results := make(chan notifications.Result, len(d.notifiers))
	var wg sync.WaitGroup
	for _, notifier := range d.notifiers {
		notifier := notifier
		wg.Add(1)
		go func() {
			defer wg.Done()
			started := time.Now()
			result := notifier.Send(ctx, message)
			d.metrics.RecordDelivery(result.Platform, result.Success, time.Since(started))
			results <- result
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	var failed []string
	for result := range results {
		if result.Success {
			succeeded++
		} else {
			failed = append(failed, result.Platform)
		}
	}

	if len(failed) > 0 {
		d.log.Error().Strs("failed_platforms", failed).Int("succeeded", succeeded).Msg("some platform deliveries failed")
	}

	return succeeded > 0
}
