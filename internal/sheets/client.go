package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Sheets service for one spreadsheet. Reads are always
// batched; writes are targeted single-cell updates or structural row
// deletions.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// BatchGetColumns reads all named ranges in a single batchGet call and
// returns the first cell of each row per range, keyed by range name. One
// call regardless of how many fields the inventory carries.
func (c *Client) BatchGetColumns(ctx context.Context, ranges []string) (map[string][]string, error) {
	resp, err := c.service.Spreadsheets.Values.BatchGet(c.spreadsheetID).
		Ranges(ranges...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to batch read ranges: %w", err)
	}

	if len(resp.ValueRanges) != len(ranges) {
		return nil, fmt.Errorf("batch read returned %d ranges, requested %d", len(resp.ValueRanges), len(ranges))
	}

	// ValueRanges come back in request order.
	columns := make(map[string][]string, len(ranges))
	for i, vr := range resp.ValueRanges {
		columns[ranges[i]] = firstCells(vr)
	}
	return columns, nil
}

// ReadColumn reads a single range and returns the first cell of each row.
func (c *Client) ReadColumn(ctx context.Context, readRange string) ([]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}
	return firstCells(resp), nil
}

// UpdateCell writes a single cell with USER_ENTERED input so the backend
// applies its own type coercion and formatting.
func (c *Client) UpdateCell(ctx context.Context, cellRange string, value interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}

	_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, cellRange, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update cell %s: %w", cellRange, err)
	}

	return nil
}

// DeleteRow removes one entire row from the sheet. rowIndex is the 1-indexed
// sheet row; the API takes a zero-indexed half-open range.
func (c *Client) DeleteRow(ctx context.Context, sheetID int64, rowIndex int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex - 1),
					EndIndex:   int64(rowIndex),
				},
			},
		}},
	}

	_, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to delete row %d: %w", rowIndex, err)
	}

	return nil
}

// GetStructure fetches the named-range and sheet-property metadata only.
func (c *Client) GetStructure(ctx context.Context) (*sheets.Spreadsheet, error) {
	doc, err := c.service.Spreadsheets.Get(c.spreadsheetID).
		Fields("namedRanges", "sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}
	return doc, nil
}

// firstCells extracts the first cell of each returned row; the inventory's
// named ranges are single-column.
func firstCells(vr *sheets.ValueRange) []string {
	if vr == nil {
		return nil
	}
	out := make([]string, len(vr.Values))
	for i, row := range vr.Values {
		if len(row) > 0 && row[0] != nil {
			out[i] = fmt.Sprintf("%v", row[0])
		}
	}
	return out
}
