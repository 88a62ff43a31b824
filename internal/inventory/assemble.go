package inventory

// Columns is the row-aligned result of a batched named-range read: one value
// slice per field. Columns can come back shorter than each other when
// trailing cells are empty, so all access goes through Value, which treats a
// missing index as an empty cell.
type Columns map[string][]string

// Value returns the cell at row offset i in the named column, or "" when the
// column is absent or shorter than i+1.
func (c Columns) Value(name string, i int) string {
	col := c[name]
	if i < 0 || i >= len(col) {
		return ""
	}
	return col[i]
}

// Rows is the number of candidate record rows: the longest of the status,
// SKU and title columns. Rows beyond the SKU column's length are still
// visited so a record is never dropped just because its SKU column came back
// shorter than its neighbors.
func (c Columns) Rows() int {
	n := len(c[RangeStatus])
	if l := len(c[RangeSKU]); l > n {
		n = l
	}
	if l := len(c[RangeProductTitle]); l > n {
		n = l
	}
	return n
}

// BuildProducts reconstructs product records from the column set. A record
// exists iff its SKU cell is non-empty; empty-SKU rows are available slots
// and are skipped while their physical position is preserved, so RowIndex
// always reflects the absolute sheet row (header is row 1, first data row
// is 2).
func BuildProducts(cols Columns) []Product {
	numRows := cols.Rows()
	products := make([]Product, 0, numRows)

	for i := 0; i < numRows; i++ {
		sku := cols.Value(RangeSKU, i)
		if sku == "" {
			continue
		}

		products = append(products, Product{
			RowIndex:         i + 2,
			Status:           cols.Value(RangeStatus, i),
			ItemID:           cols.Value(RangeItemID, i),
			SKU:              sku,
			Title:            cols.Value(RangeProductTitle, i),
			PurchaseDate:     cols.Value(RangePurchaseDate, i),
			PurchaseLocation: cols.Value(RangePurchaseLocation, i),
			PurchasePrice:    ParsePrice(cols.Value(RangePurchasePrice, i)),
			Images:           cols.Value(RangeImages, i),
			ListingStatus:    cols.Value(RangeListingStatus, i),
			ListingStartDate: cols.Value(RangeListingStartDate, i),
			ListingEndDate:   cols.Value(RangeListingEndDate, i),
			ListingType:      cols.Value(RangeListingType, i),
			Category:         cols.Value(RangeCategory, i),
			Marketplace:      cols.Value(RangeMarketplace, i),
			DaysInStock:      cols.Value(RangeDaysInStock, i),
			DaysListed:       cols.Value(RangeDaysListed, i),
			ListedPrice:      ParsePrice(cols.Value(RangeListedPrice, i)),
			Condition:        cols.Value(RangeCondition, i),
			Brand:            cols.Value(RangeBrand, i),
			PostedDate:       cols.Value(RangePostedDate, i),
			DeliveredDate:    cols.Value(RangeDeliveredDate, i),
			SaleDate:         cols.Value(RangeSaleDate, i),
			SoldPrice:        ParsePrice(cols.Value(RangeSoldPrice, i)),
			ShippingStatus:   cols.Value(RangeShippingStatus, i),
			ShippingProvider: cols.Value(RangeShippingProvider, i),
			TrackingNumber:   cols.Value(RangeTrackingNumber, i),
			BuyerID:          cols.Value(RangeBuyerID, i),
			PromotedListing:  cols.Value(RangePromotedListing, i),
			HandlingTime:     cols.Value(RangeHandlingTime, i),
			PrivateSale:      cols.Value(RangePrivateSale, i),
			EbayOrderNo:      cols.Value(RangeEbayOrderNo, i),
		})
	}

	return products
}
