package application

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

type fetchResult struct {
	inventory domain.Inventory
	err       error
}

type coordinatorMetrics struct {
	fetches        metric.Int64Counter
	fetchFailures  metric.Int64Counter
	signalsDropped metric.Int64Counter
	rebuilds       metric.Int64Counter
	bundlesServed  metric.Int64Counter
	fetchDuration  metric.Float64Histogram
}

func newCoordinatorMetrics(meter metric.Meter) coordinatorMetrics {
	fetches, _ := meter.Int64Counter("crh_fetches_total",
		metric.WithDescription("Stash fetches started by the refresh worker"))
	fetchFailures, _ := meter.Int64Counter("crh_fetch_failures_total",
		metric.WithDescription("Stash fetches that failed in transport or classification"))
	signalsDropped, _ := meter.Int64Counter("crh_refresh_signals_dropped_total",
		metric.WithDescription("Refresh signals coalesced into an already pending one"))
	rebuilds, _ := meter.Int64Counter("crh_inventory_rebuilds_total",
		metric.WithDescription("Times the recipe queue was rebuilt from a changed inventory"))
	bundlesServed, _ := meter.Int64Counter("crh_bundles_served_total",
		metric.WithDescription("Non-empty bundles handed out"))
	fetchDuration, _ := meter.Float64Histogram("crh_fetch_duration_seconds",
		metric.WithDescription("Duration of stash fetches"),
		metric.WithUnit("s"))

	return coordinatorMetrics{
		fetches:        fetches,
		fetchFailures:  fetchFailures,
		signalsDropped: signalsDropped,
		rebuilds:       rebuilds,
		bundlesServed:  bundlesServed,
		fetchDuration:  fetchDuration,
	}
}

// fetchLoop performs one fetch per consumed refresh signal until ctx is cancelled.
func (c *Coordinator) fetchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.refresh:
			c.publish(c.fetch(ctx))
		}
	}
}

func (c *Coordinator) fetch(ctx context.Context) fetchResult {
	session := c.session.Current()
	logger := c.logger.With("account", session.Account, "league", session.League, "tab", session.TabIndex)

	c.metrics.fetches.Add(ctx, 1)
	started := c.clock.Now()
	snapshot, err := c.fetcher.FetchStash(ctx, session)
	c.metrics.fetchDuration.Record(ctx, c.clock.Now().Sub(started).Seconds())
	if err != nil {
		c.metrics.fetchFailures.Add(ctx, 1)
		logger.Warn("stash fetch failed", "error", err)
		return fetchResult{err: fmt.Errorf("fetch stash: %w", err)}
	}

	inventory, err := domain.Classify(snapshot)
	if err != nil {
		c.metrics.fetchFailures.Add(ctx, 1)
		logger.Warn("stash classification failed", "error", err)
		return fetchResult{err: fmt.Errorf("classify stash: %w", err)}
	}

	c.session.setDoubleStash(snapshot.DoubleSize)
	logger.Debug("stash fetched", "items", len(snapshot.Items), "double_stash", snapshot.DoubleSize)

	return fetchResult{inventory: inventory}
}

// publish hands the result to the loop, replacing an unconsumed older result.
// The worker is the only producer, so the retry terminates.
func (c *Coordinator) publish(result fetchResult) {
	for {
		select {
		case c.results <- result:
			return
		default:
		}

		select {
		case <-c.results:
		default:
		}
	}
}
