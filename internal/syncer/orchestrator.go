package syncer

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robertgryska01/pro8link/internal/inventory"
	"github.com/robertgryska01/pro8link/internal/sheets"
)

// ErrSyncInFlight is returned when SyncData is invoked while another sync is
// running. There is no queueing or coalescing; callers re-invoke.
var ErrSyncInFlight = errors.New("sync already in progress")

// SheetAPI is the slice of the Sheets transport the orchestrator needs.
type SheetAPI interface {
	BatchGetColumns(ctx context.Context, ranges []string) (map[string][]string, error)
	ReadColumn(ctx context.Context, readRange string) ([]string, error)
	UpdateCell(ctx context.Context, cellRange string, value interface{}) error
	DeleteRow(ctx context.Context, sheetID int64, rowIndex int) error
}

// Metadata resolves named ranges to cells and caches sheet structure.
type Metadata interface {
	InventorySheet(ctx context.Context) (sheets.SheetInfo, error)
	CellRef(ctx context.Context, rangeName string, row int) (string, error)
	Invalidate()
}

// Trigger runs the remote Apps Script refresh job.
type Trigger interface {
	Configured() bool
	RunSyncAll(ctx context.Context) error
}

// Readiness is the token gate every operation awaits before touching the
// network.
type Readiness interface {
	AwaitReady(ctx context.Context) error
}

// Options tunes the orchestrator's ranges and settle delays.
type Options struct {
	StorageLocationRange  string
	PurchaseLocationRange string

	// WriteSettleDelay runs after a burst of cell writes, before resync.
	WriteSettleDelay time.Duration
	// ScriptSettleDelay runs after a successful Apps Script trigger, giving
	// the asynchronous external job time to finish writing.
	ScriptSettleDelay time.Duration
}

// Orchestrator serializes full syncs and owns the write path. It treats the
// remote sheet as ground truth: mutations write through and then force a
// full re-read rather than patching local state.
type Orchestrator struct {
	api     SheetAPI
	meta    Metadata
	repo    *inventory.Repository
	gate    Readiness
	trigger Trigger
	opts    Options

	syncing atomic.Bool
}

func New(api SheetAPI, meta Metadata, repo *inventory.Repository, gate Readiness, trigger Trigger, opts Options) *Orchestrator {
	return &Orchestrator{
		api:     api,
		meta:    meta,
		repo:    repo,
		gate:    gate,
		trigger: trigger,
		opts:    opts,
	}
}

// Syncing reports whether a sync is currently in flight.
func (o *Orchestrator) Syncing() bool {
	return o.syncing.Load()
}

// SyncData performs one full read pass: invalidate the metadata cache, read
// all inventory columns and both setup lists concurrently, and replace the
// repository snapshot. Re-entrant calls return ErrSyncInFlight immediately
// without issuing any reads.
func (o *Orchestrator) SyncData(ctx context.Context) error {
	if !o.syncing.CompareAndSwap(false, true) {
		log.Debug().Msg("Sync already in progress, skipping")
		return ErrSyncInFlight
	}
	defer o.syncing.Store(false)

	if err := o.gate.AwaitReady(ctx); err != nil {
		return err
	}

	log.Debug().Msg("Syncing data from spreadsheet")
	o.meta.Invalidate()

	var (
		products          []inventory.Product
		storageLocations  []string
		purchaseLocations []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cols, err := o.api.BatchGetColumns(gctx, inventory.AllRanges)
		if err != nil {
			return err
		}
		products = inventory.BuildProducts(cols)
		return nil
	})
	g.Go(func() error {
		var err error
		storageLocations, err = o.readSetupList(gctx, o.opts.StorageLocationRange)
		return err
	})
	g.Go(func() error {
		var err error
		purchaseLocations, err = o.readSetupList(gctx, o.opts.PurchaseLocationRange)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Sync failed")
		return err
	}

	o.repo.Replace(inventory.Snapshot{
		Products:          products,
		StorageLocations:  storageLocations,
		PurchaseLocations: purchaseLocations,
	})

	log.Info().
		Int("products", len(products)).
		Int("storage_locations", len(storageLocations)).
		Int("purchase_locations", len(purchaseLocations)).
		Msg("Sync complete")
	return nil
}

// TriggerSyncAll optionally invokes the remote Apps Script refresh before
// re-reading. The local resync runs unconditionally: the sheet may already
// reflect earlier external changes even when this particular trigger fails.
func (o *Orchestrator) TriggerSyncAll(ctx context.Context) error {
	if err := o.gate.AwaitReady(ctx); err != nil {
		return err
	}

	if o.trigger == nil || !o.trigger.Configured() {
		log.Debug().Msg("No script configured, refreshing local data only")
		return o.SyncData(ctx)
	}

	if err := o.trigger.RunSyncAll(ctx); err != nil {
		log.Warn().Err(err).Msg("Apps Script trigger failed, refreshing local data anyway")
	} else if err := sleep(ctx, o.opts.ScriptSettleDelay); err != nil {
		return err
	}

	return o.SyncData(ctx)
}

// readSetupList reads a fixed setup range, dropping empty cells.
func (o *Orchestrator) readSetupList(ctx context.Context, readRange string) ([]string, error) {
	values, err := o.api.ReadColumn(ctx, readRange)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
