package syncer

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robertgryska01/pro8link/internal/inventory"
)

// fieldWrite pairs a named range with the value destined for one row of it.
type fieldWrite struct {
	rangeName string
	value     interface{}
}

// AddProduct writes a new record into the first free row and forces a full
// resync. Free rows are gaps left by earlier deletions, scanned from the
// top; only when there is none does the record land past the current data.
// Returns the SKU assigned to the new record.
func (o *Orchestrator) AddProduct(ctx context.Context, form inventory.FormData) (string, error) {
	if err := o.gate.AwaitReady(ctx); err != nil {
		return "", err
	}

	sequence := form.Sequence
	if sequence == "" {
		sequence = o.repo.NextSequence(form.StorageLocation)
	}
	sku := inventory.BuildSKU(form.StorageLocation, sequence, form.PurchasePrice)

	row, err := o.findNextAvailableRow(ctx)
	if err != nil {
		return "", err
	}

	log.Debug().Str("sku", sku).Int("row", row).Msg("Adding product")

	writes := []fieldWrite{
		{inventory.RangeSKU, sku},
		{inventory.RangeProductTitle, form.Title},
		{inventory.RangePurchaseDate, form.PurchaseDate},
		{inventory.RangePurchaseLocation, form.PurchaseLocation},
		{inventory.RangePurchasePrice, form.PurchasePrice},
		{inventory.RangePrivateSale, boolCell(form.PrivateSale)},
		{inventory.RangeImages, boolCell(form.Images)},
	}
	if err := o.writeFields(ctx, row, writes); err != nil {
		return "", err
	}

	// Give the backend a moment to apply the burst of writes before
	// re-reading.
	if err := sleep(ctx, o.opts.WriteSettleDelay); err != nil {
		return "", err
	}

	if err := o.SyncData(ctx); err != nil {
		return "", err
	}

	log.Info().Str("sku", sku).Int("row", row).Msg("Product added")
	return sku, nil
}

// UpdateProduct rewrites a record's editable fields at its current row and
// forces a full resync. The SKU is regenerated only when the storage
// location or purchase price changed, since those are the two values it
// encodes; the sequence segment always carries over.
func (o *Orchestrator) UpdateProduct(ctx context.Context, product inventory.Product, form inventory.FormData) (string, error) {
	if err := o.gate.AwaitReady(ctx); err != nil {
		return "", err
	}

	newSKU := product.SKU
	if form.StorageLocation != product.Container() || form.PurchasePrice != product.PurchasePrice {
		newSKU = inventory.BuildSKU(form.StorageLocation, skuSequence(product.SKU), form.PurchasePrice)
	}

	log.Debug().
		Str("sku", product.SKU).
		Str("new_sku", newSKU).
		Int("row", product.RowIndex).
		Msg("Updating product")

	writes := []fieldWrite{
		{inventory.RangeSKU, newSKU},
		{inventory.RangeProductTitle, form.Title},
		{inventory.RangePurchaseDate, form.PurchaseDate},
		{inventory.RangePurchaseLocation, form.PurchaseLocation},
		{inventory.RangePurchasePrice, form.PurchasePrice},
		{inventory.RangePrivateSale, boolCell(form.PrivateSale)},
		{inventory.RangeImages, boolCell(form.Images)},
	}
	if err := o.writeFields(ctx, product.RowIndex, writes); err != nil {
		return "", err
	}

	if err := o.SyncData(ctx); err != nil {
		return "", err
	}

	log.Info().Str("sku", newSKU).Int("row", product.RowIndex).Msg("Product updated")
	return newSKU, nil
}

// DeleteProduct removes the record's entire row. Deletion shifts every row
// below it up by one, so both the metadata cache and the repository are
// stale afterwards; the cache is invalidated immediately and a full resync
// replaces the snapshot rather than patching row indices in place.
func (o *Orchestrator) DeleteProduct(ctx context.Context, product inventory.Product) error {
	if err := o.gate.AwaitReady(ctx); err != nil {
		return err
	}

	info, err := o.meta.InventorySheet(ctx)
	if err != nil {
		return err
	}

	log.Debug().Str("sku", product.SKU).Int("row", product.RowIndex).Msg("Deleting product")

	if err := o.api.DeleteRow(ctx, info.ID, product.RowIndex); err != nil {
		return err
	}

	o.meta.Invalidate()

	if err := o.SyncData(ctx); err != nil {
		return err
	}

	log.Info().Str("sku", product.SKU).Msg("Product deleted")
	return nil
}

// writeFields issues the per-cell updates for one row concurrently. The
// group is not atomic: a failure aborts the operation but already-written
// cells stay written, and the forced resync afterwards reveals the sheet's
// actual state.
func (o *Orchestrator) writeFields(ctx context.Context, row int, writes []fieldWrite) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range writes {
		w := w
		g.Go(func() error {
			cellRef, err := o.meta.CellRef(gctx, w.rangeName, row)
			if err != nil {
				return err
			}
			return o.api.UpdateCell(gctx, cellRef, w.value)
		})
	}
	return g.Wait()
}

// findNextAvailableRow scans the SKU column from the top for the first empty
// cell; empty-SKU rows are slots freed by deletion. Falls back to appending
// past the current snapshot when the read fails.
func (o *Orchestrator) findNextAvailableRow(ctx context.Context) (int, error) {
	skus, err := o.api.ReadColumn(ctx, inventory.RangeSKU)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to scan for free row, appending past current data")
		return len(o.repo.Products()) + 2, nil
	}

	for i, sku := range skus {
		if sku == "" {
			return i + 2, nil
		}
	}
	return len(skus) + 2, nil
}

// skuSequence pulls the sequence segment out of an existing SKU.
func skuSequence(sku string) string {
	parts := strings.Split(sku, "-")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}
	return inventory.ExtractSequenceNumber(sku)
}

func boolCell(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
