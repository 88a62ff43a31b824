package sheets

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/sheets/v4"
)

// SheetInfo is the cached identity of the inventory sheet.
type SheetInfo struct {
	ID    int64
	Title string
}

// StructureFetcher fetches spreadsheet structure metadata.
type StructureFetcher interface {
	GetStructure(ctx context.Context) (*sheets.Spreadsheet, error)
}

// MetadataCache lazily fetches and memoizes the spreadsheet structure: sheet
// ids and titles, and the named-range to column bindings used to address
// individual cells. It must be invalidated after any structural mutation
// (row deletion shifts everything below) and before each full sync.
type MetadataCache struct {
	fetcher        StructureFetcher
	inventorySheet string

	mu  sync.Mutex
	doc *sheets.Spreadsheet
}

func NewMetadataCache(fetcher StructureFetcher, inventorySheet string) *MetadataCache {
	return &MetadataCache{
		fetcher:        fetcher,
		inventorySheet: inventorySheet,
	}
}

// Invalidate drops the cached structure; the next access refetches.
func (m *MetadataCache) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = nil
	log.Debug().Msg("Invalidated spreadsheet metadata cache")
}

// structure returns the cached document, fetching on first use. A fetch
// failure leaves the cache unset so the next call retries.
func (m *MetadataCache) structure(ctx context.Context) (*sheets.Spreadsheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc != nil {
		return m.doc, nil
	}

	doc, err := m.fetcher.GetStructure(ctx)
	if err != nil {
		return nil, err
	}

	m.doc = doc
	log.Debug().
		Int("named_ranges", len(doc.NamedRanges)).
		Int("sheets", len(doc.Sheets)).
		Msg("Fetched spreadsheet metadata")
	return m.doc, nil
}

// InventorySheet returns the id and title of the inventory sheet.
func (m *MetadataCache) InventorySheet(ctx context.Context) (SheetInfo, error) {
	doc, err := m.structure(ctx)
	if err != nil {
		return SheetInfo{}, err
	}
	return findSheet(doc, m.inventorySheet)
}

// CellRef resolves a named range and an absolute row into an A1 cell
// reference like "Main Inventory!C7".
func (m *MetadataCache) CellRef(ctx context.Context, rangeName string, row int) (string, error) {
	doc, err := m.structure(ctx)
	if err != nil {
		return "", err
	}
	return resolveCell(doc, rangeName, row)
}

// findSheet locates a sheet by title within the document.
func findSheet(doc *sheets.Spreadsheet, title string) (SheetInfo, error) {
	for _, s := range doc.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return SheetInfo{ID: s.Properties.SheetId, Title: s.Properties.Title}, nil
		}
	}
	return SheetInfo{}, fmt.Errorf("sheet %q not found in spreadsheet", title)
}

// resolveCell maps a named range plus absolute row to an A1 reference. The
// named range binds a single column on one sheet; the row comes from the
// record being written.
func resolveCell(doc *sheets.Spreadsheet, rangeName string, row int) (string, error) {
	var named *sheets.NamedRange
	for _, nr := range doc.NamedRanges {
		if nr.Name == rangeName {
			named = nr
			break
		}
	}
	if named == nil || named.Range == nil {
		return "", fmt.Errorf("named range %q not found", rangeName)
	}

	var sheetTitle string
	for _, s := range doc.Sheets {
		if s.Properties != nil && s.Properties.SheetId == named.Range.SheetId {
			sheetTitle = s.Properties.Title
			break
		}
	}
	if sheetTitle == "" {
		return "", fmt.Errorf("sheet id %d for named range %q not found", named.Range.SheetId, rangeName)
	}

	column := ColumnLetter(named.Range.StartColumnIndex)
	return fmt.Sprintf("%s!%s%d", sheetTitle, column, row), nil
}

// ColumnLetter converts a zero-based column index to its letter form
// (0=A, 25=Z, 26=AA).
func ColumnLetter(index int64) string {
	letter := ""
	for index >= 0 {
		letter = string(rune('A'+index%26)) + letter
		index = index/26 - 1
	}
	return letter
}
