package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/robertgryska01/pro8link/internal/auth"
	appconfig "github.com/robertgryska01/pro8link/internal/config"
	"github.com/robertgryska01/pro8link/internal/inventory"
	"github.com/robertgryska01/pro8link/internal/retry"
	"github.com/robertgryska01/pro8link/internal/script"
	"github.com/robertgryska01/pro8link/internal/server"
	"github.com/robertgryska01/pro8link/internal/sheets"
	"github.com/robertgryska01/pro8link/internal/syncer"
)

func main() {
	log.Debug().Msg("Starting application")
	setupEnvironment()

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch, repo := initializeCore(ctx, cfg)

	// First full load before serving; retried here, never inside the core.
	if _, err := retry.WithRetry(ctx, appconfig.DefaultResilienceConfig.ResyncLoop, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, orch.SyncData(ctx)
	}); err != nil {
		log.Fatal().Err(err).Msg("Initial sync failed")
	}

	if cfg.ResyncInterval > 0 {
		go resyncLoop(ctx, orch, cfg.ResyncInterval)
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(orch, repo).Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.ListenAddr).Msg("Serving inventory API")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// initializeCore wires the token provider, Sheets client, metadata cache,
// repository and orchestrator together.
func initializeCore(ctx context.Context, cfg *appconfig.Config) (*syncer.Orchestrator, *inventory.Repository) {
	log.Debug().Msg("Initializing clients")

	provider, err := auth.NewProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token provider")
	}
	provider.Start(ctx)

	if err := provider.AwaitReady(ctx); err != nil {
		log.Fatal().Err(err).Msg("Authentication failed")
	}

	client, err := sheets.NewClient(ctx, cfg.SpreadsheetID, option.WithTokenSource(provider))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}

	meta := sheets.NewMetadataCache(client, cfg.InventorySheet)
	repo := inventory.NewRepository()
	trigger := retryingTrigger{client: script.NewClient(cfg.ScriptID, provider)}

	orch := syncer.New(client, meta, repo, provider, trigger, syncer.Options{
		StorageLocationRange:  cfg.StorageLocationRange,
		PurchaseLocationRange: cfg.PurchaseLocationRange,
		WriteSettleDelay:      cfg.WriteSettleDelay,
		ScriptSettleDelay:     cfg.ScriptSettleDelay,
	})

	log.Debug().Msg("Clients initialized successfully")
	return orch, repo
}

// retryingTrigger wraps the Apps Script client so transient execution
// failures are retried here rather than inside the orchestrator.
type retryingTrigger struct {
	client *script.Client
}

func (t retryingTrigger) Configured() bool { return t.client.Configured() }

func (t retryingTrigger) RunSyncAll(ctx context.Context) error {
	_, err := retry.WithRetry(ctx, appconfig.DefaultResilienceConfig.ScriptTrigger, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, t.client.RunSyncAll(ctx)
	})
	return err
}

// resyncLoop periodically re-reads the spreadsheet so out-of-band edits (the
// hourly Apps Script job, humans in the sheet) show up without a manual
// sync.
func resyncLoop(ctx context.Context, orch *syncer.Orchestrator, interval time.Duration) {
	log.Info().Dur("interval", interval).Msg("Starting periodic resync loop")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := retry.WithRetry(ctx, appconfig.DefaultResilienceConfig.ResyncLoop, func(ctx context.Context) (struct{}, error) {
				err := orch.SyncData(ctx)
				if errors.Is(err, syncer.ErrSyncInFlight) {
					// Someone else is already refreshing; that's the point.
					return struct{}{}, nil
				}
				return struct{}{}, err
			}); err != nil {
				log.Error().Err(err).Msg("Periodic resync failed")
			}
		}
	}
}
