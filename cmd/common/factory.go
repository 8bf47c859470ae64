package common

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/offerwatch/offerwatch/internal/database"
	"github.com/offerwatch/offerwatch/internal/notify"
	"github.com/offerwatch/offerwatch/internal/offers"
	"github.com/offerwatch/offerwatch/internal/sync"
	"github.com/offerwatch/offerwatch/internal/watchlist"
)

// Engine bundles the wired sync engine for command implementations.
type Engine struct {
	Orchestrator *sync.Orchestrator
	Resolver     *offers.Resolver
	Catalogs     *database.CatalogRepository
	Schedule     *database.ScheduleRepository
	Watchlist    *watchlist.FileProvider
	Notifier     notify.Notifier
}

// BuildEngine wires the sync engine on top of an open database connection.
func BuildEngine(deps CommandDeps, db *sqlx.DB) (*Engine, error) {
	syncCfg := deps.Config.GetSyncConfig()

	provider, err := watchlist.NewFileProvider(syncCfg.WatchlistFile)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}

	catalogs := database.NewCatalogRepository(db)
	schedule := database.NewScheduleRepository(db)

	fetcher := offers.NewFetcher(syncCfg.OffersURL, syncCfg.FetchTimeout)
	resolver := offers.NewResolver(catalogs, fetcher, deps.Logger)

	notifier := buildNotifier(deps)

	orchestrator := sync.NewOrchestrator(provider, resolver, notifier, deps.Logger, sync.Config{
		WorkerCount:   syncCfg.WorkerCount,
		CycleDeadline: syncCfg.CycleDeadline,
	})

	return &Engine{
		Orchestrator: orchestrator,
		Resolver:     resolver,
		Catalogs:     catalogs,
		Schedule:     schedule,
		Watchlist:    provider,
		Notifier:     notifier,
	}, nil
}

// buildNotifier assembles the notification chain: always the log notifier,
// plus the webhook when one is configured.
func buildNotifier(deps CommandDeps) notify.Notifier {
	notifyCfg := deps.Config.GetNotifyConfig()

	logNotifier := notify.NewLogNotifier(deps.Logger)
	if notifyCfg.WebhookURL == "" {
		return logNotifier
	}

	return notify.NewComposite(
		logNotifier,
		notify.NewWebhookNotifier(notifyCfg.WebhookURL, notifyCfg.WebhookTimeout),
	)
}
