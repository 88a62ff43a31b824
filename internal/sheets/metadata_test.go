package sheets

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/api/sheets/v4"
)

func TestColumnLetter(t *testing.T) {
	cases := []struct {
		index int64
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, c := range cases {
		if got := ColumnLetter(c.index); got != c.want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", c.index, got, c.want)
		}
	}
}

func structureFixture() *sheets.Spreadsheet {
	return &sheets.Spreadsheet{
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{SheetId: 0, Title: "Setup"}},
			{Properties: &sheets.SheetProperties{SheetId: 1234, Title: "Main Inventory"}},
		},
		NamedRanges: []*sheets.NamedRange{
			{
				Name: "MainInventorySKU",
				Range: &sheets.GridRange{
					SheetId:          1234,
					StartColumnIndex: 2,
				},
			},
			{
				Name: "MainInventoryBrand",
				Range: &sheets.GridRange{
					SheetId:          1234,
					StartColumnIndex: 28,
				},
			},
		},
	}
}

func TestResolveCell(t *testing.T) {
	doc := structureFixture()

	ref, err := resolveCell(doc, "MainInventorySKU", 7)
	if err != nil {
		t.Fatalf("resolveCell failed: %v", err)
	}
	if ref != "Main Inventory!C7" {
		t.Errorf("Expected 'Main Inventory!C7', got %q", ref)
	}

	ref, err = resolveCell(doc, "MainInventoryBrand", 2)
	if err != nil {
		t.Fatalf("resolveCell failed: %v", err)
	}
	if ref != "Main Inventory!AC2" {
		t.Errorf("Expected 'Main Inventory!AC2', got %q", ref)
	}

	if _, err := resolveCell(doc, "NoSuchRange", 2); err == nil {
		t.Error("Expected error for unknown named range")
	}
}

func TestFindSheet(t *testing.T) {
	doc := structureFixture()

	info, err := findSheet(doc, "Main Inventory")
	if err != nil {
		t.Fatalf("findSheet failed: %v", err)
	}
	if info.ID != 1234 {
		t.Errorf("Expected sheet id 1234, got %d", info.ID)
	}

	if _, err := findSheet(doc, "Missing"); err == nil {
		t.Error("Expected error for missing sheet")
	}
}

type fakeFetcher struct {
	doc   *sheets.Spreadsheet
	err   error
	calls int
}

func (f *fakeFetcher) GetStructure(ctx context.Context) (*sheets.Spreadsheet, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func TestMetadataCacheMemoizes(t *testing.T) {
	fetcher := &fakeFetcher{doc: structureFixture()}
	cache := NewMetadataCache(fetcher, "Main Inventory")
	ctx := context.Background()

	if _, err := cache.InventorySheet(ctx); err != nil {
		t.Fatalf("InventorySheet failed: %v", err)
	}
	if _, err := cache.CellRef(ctx, "MainInventorySKU", 2); err != nil {
		t.Fatalf("CellRef failed: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("Expected 1 fetch, got %d", fetcher.calls)
	}

	cache.Invalidate()
	if _, err := cache.InventorySheet(ctx); err != nil {
		t.Fatalf("InventorySheet after invalidate failed: %v", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("Expected 2 fetches after invalidation, got %d", fetcher.calls)
	}
}

func TestMetadataCacheRetriesAfterFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("remote unavailable")}
	cache := NewMetadataCache(fetcher, "Main Inventory")
	ctx := context.Background()

	if _, err := cache.InventorySheet(ctx); err == nil {
		t.Fatal("Expected error from failed fetch")
	}

	// Failure must leave the cache unset so the next call refetches.
	fetcher.err = nil
	fetcher.doc = structureFixture()
	if _, err := cache.InventorySheet(ctx); err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("Expected 2 fetch attempts, got %d", fetcher.calls)
	}
}
