// Package sync implements the sync cycle: resolve every favorite market's
// catalog, match watched products against it, and notify on hits.
package sync

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/offerwatch/offerwatch/internal/domain"
	"github.com/offerwatch/offerwatch/internal/logger"
	"github.com/offerwatch/offerwatch/internal/match"
	"github.com/offerwatch/offerwatch/internal/notify"
	"github.com/offerwatch/offerwatch/internal/watchlist"
)

const (
	// DefaultWorkerCount bounds concurrent per-market resolutions.
	DefaultWorkerCount = 4
	// DefaultCycleDeadline bounds one whole cycle; resolutions still running
	// when it expires count as failures.
	DefaultCycleDeadline = 5 * time.Minute
)

// CatalogResolver returns a currently-valid catalog for a market.
type CatalogResolver interface {
	Resolve(ctx context.Context, marketID string, now time.Time) (*domain.Catalog, error)
}

// Config holds orchestrator tuning knobs.
type Config struct {
	WorkerCount   int
	CycleDeadline time.Duration
}

// Orchestrator runs one sync cycle end to end. Markets are independent, so
// per-market resolution runs on a bounded worker pool; each market is
// visited exactly once per cycle.
type Orchestrator struct {
	provider      watchlist.Provider
	resolver      CatalogResolver
	notifier      notify.Notifier
	log           logger.Interface
	workerCount   int
	cycleDeadline time.Duration
}

// NewOrchestrator creates a sync orchestrator.
func NewOrchestrator(
	provider watchlist.Provider,
	resolver CatalogResolver,
	notifier notify.Notifier,
	log logger.Interface,
	cfg Config,
) *Orchestrator {
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.CycleDeadline <= 0 {
		cfg.CycleDeadline = DefaultCycleDeadline
	}
	return &Orchestrator{
		provider:      provider,
		resolver:      resolver,
		notifier:      notifier,
		log:           log.WithComponent("orchestrator"),
		workerCount:   cfg.WorkerCount,
		cycleDeadline: cfg.CycleDeadline,
	}
}

// marketResult records how one market's check went.
type marketResult struct {
	market   domain.Market
	resolved bool
	matches  int
}

// RunCycle checks every favorite market for watched products on offer.
// One market's failure never aborts the cycle; the outcome reflects the
// whole cycle: NoFavorites when there is nothing to check, NetworkFailure
// when no market resolved, Success otherwise (zero matches included).
func (o *Orchestrator) RunCycle(ctx context.Context, now time.Time) domain.Outcome {
	cycleID := uuid.New().String()
	log := o.log.WithCycleID(cycleID)
	started := time.Now()

	// Pick up watchlist edits made since the last cycle. A failed reload
	// keeps the previous snapshot, so the cycle still runs.
	if reloader, ok := o.provider.(watchlist.Reloader); ok {
		if err := reloader.Reload(); err != nil {
			log.Warn("Watchlist reload failed, using last snapshot", "error", err)
		}
	}

	products := o.provider.WatchedProducts()
	if len(products) == 0 {
		log.Info("No watched products, nothing to check")
		return domain.OutcomeNoFavorites
	}

	markets := o.provider.FavoriteMarkets()
	if len(markets) == 0 {
		log.Info("No favorite markets, nothing to check")
		return domain.OutcomeNoFavorites
	}

	log.Info("Starting sync cycle",
		"markets", len(markets),
		"products", len(products),
	)

	cycleCtx, cancel := context.WithTimeout(ctx, o.cycleDeadline)
	defer cancel()

	results := o.checkMarkets(cycleCtx, log, markets, products, now)

	resolved := 0
	totalMatches := 0
	for _, r := range results {
		if r.resolved {
			resolved++
			totalMatches += r.matches
		}
	}

	log.WithDuration(time.Since(started)).Info("Sync cycle finished",
		"resolved", resolved,
		"failed", len(markets)-resolved,
		"matches", totalMatches,
	)

	if resolved == 0 {
		return domain.OutcomeNetworkFailure
	}
	return domain.OutcomeSuccess
}

// checkMarkets fans markets out over the worker pool and collects results.
func (o *Orchestrator) checkMarkets(
	ctx context.Context,
	log logger.Interface,
	markets []domain.Market,
	products []string,
	now time.Time,
) []marketResult {
	jobs := make(chan domain.Market)
	results := make(chan marketResult, len(markets))

	var wg sync.WaitGroup
	for i := 0; i < o.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for market := range jobs {
				results <- o.checkMarket(ctx, log, market, products, now)
			}
		}()
	}

	for _, market := range markets {
		jobs <- market
	}
	close(jobs)
	wg.Wait()
	close(results)

	collected := make([]marketResult, 0, len(markets))
	for r := range results {
		collected = append(collected, r)
	}
	return collected
}

// checkMarket resolves one market's catalog and notifies about matches.
func (o *Orchestrator) checkMarket(
	ctx context.Context,
	log logger.Interface,
	market domain.Market,
	products []string,
	now time.Time,
) marketResult {
	marketLog := log.WithMarket(market.ID)

	catalog, err := o.resolver.Resolve(ctx, market.ID, now)
	if err != nil {
		marketLog.Warn("Market check failed", "market_name", market.Name, "error", err)
		return marketResult{market: market}
	}

	matches := match.Match(catalog, products)
	marketLog.Debug("Market checked",
		"offers", len(catalog.Offers),
		"matches", len(matches),
	)

	if len(matches) > 0 {
		title, body := notify.BuildMessage(market, matches)
		if notifyErr := o.notifier.Notify(ctx, title, body); notifyErr != nil {
			marketLog.Error("Notification delivery failed", "error", notifyErr)
		}
	}

	return marketResult{market: market, resolved: true, matches: len(matches)}
}
