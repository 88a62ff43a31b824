package inventory

// Named ranges bound to the inventory sheet's columns. Each one covers a
// single column and all ranges are row-aligned, so index i in one range is
// the same physical row as index i in any other.
const (
	RangeStatus           = "MainInventoryStatus"
	RangeItemID           = "MainInventoryItemID"
	RangeSKU              = "MainInventorySKU"
	RangeProductTitle     = "MainInventoryProductTitle"
	RangePurchaseDate     = "MainInventoryPurchaseDate"
	RangePurchaseLocation = "MainInventoryPurchaseLocation"
	RangePurchasePrice    = "MainInventoryPurchasePrice"
	RangeImages           = "MainInventoryImages"
	RangeListingStatus    = "MainInventoryListingStatus"
	RangeListingStartDate = "MainInventoryListingStartDate"
	RangeListingEndDate   = "MainInventoryListingEndDate"
	RangeListingType      = "MainInventoryListingType"
	RangeCategory         = "MainInventoryCategory"
	RangeMarketplace      = "MainInventoryMarketplace"
	RangeDaysInStock      = "MainInventoryDaysInStock"
	RangeDaysListed       = "MainInventoryDaysListed"
	RangeListedPrice      = "MainInventoryListedPrice"
	RangeCondition        = "MainInventoryCondition"
	RangeBrand            = "MainInventoryBrand"
	RangePostedDate       = "MainInventoryPostedDate"
	RangeDeliveredDate    = "MainInventoryDeliveredDate"
	RangeSaleDate         = "MainInventorySaleDate"
	RangeSoldPrice        = "MainInventorySoldPrice"
	RangeShippingStatus   = "MainInventoryShippingStatus"
	RangeShippingProvider = "MainInventoryShippingProvider"
	RangeTrackingNumber   = "MainInventoryTrackingNumber"
	RangeBuyerID          = "MainInventoryBuyerID"
	RangePromotedListing  = "MainInventoryPromotedListing"
	RangeHandlingTime     = "MainInventoryHandlingTime"
	RangePrivateSale      = "MainInventoryPrivateSale"
	RangeEbayOrderNo      = "MainInventoryeBayOrderNo"
)

// AllRanges is the full set of inventory field ranges, in the order they are
// requested from the batch read.
var AllRanges = []string{
	RangeStatus,
	RangeItemID,
	RangeSKU,
	RangeProductTitle,
	RangePurchaseDate,
	RangePurchaseLocation,
	RangePurchasePrice,
	RangeImages,
	RangeListingStatus,
	RangeListingStartDate,
	RangeListingEndDate,
	RangeListingType,
	RangeCategory,
	RangeMarketplace,
	RangeDaysInStock,
	RangeDaysListed,
	RangeListedPrice,
	RangeCondition,
	RangeBrand,
	RangePostedDate,
	RangeDeliveredDate,
	RangeSaleDate,
	RangeSoldPrice,
	RangeShippingStatus,
	RangeShippingProvider,
	RangeTrackingNumber,
	RangeBuyerID,
	RangePromotedListing,
	RangeHandlingTime,
	RangePrivateSale,
	RangeEbayOrderNo,
}

// Product is one row of the inventory sheet, keyed by its absolute row
// number. RowIndex only changes when rows above it are inserted or deleted,
// which is why every structural mutation forces a full resync.
type Product struct {
	RowIndex int `json:"rowIndex"`

	Status           string  `json:"status"`
	ItemID           string  `json:"itemId"`
	SKU              string  `json:"sku"`
	Title            string  `json:"title"`
	PurchaseDate     string  `json:"purchaseDate"`
	PurchaseLocation string  `json:"purchaseLocation"`
	PurchasePrice    float64 `json:"purchasePrice"`
	Images           string  `json:"images"`
	ListingStatus    string  `json:"listingStatus"`
	ListingStartDate string  `json:"listingStartDate"`
	ListingEndDate   string  `json:"listingEndDate"`
	ListingType      string  `json:"listingType"`
	Category         string  `json:"category"`
	Marketplace      string  `json:"marketplace"`
	DaysInStock      string  `json:"daysInStock"`
	DaysListed       string  `json:"daysListed"`
	ListedPrice      float64 `json:"listedPrice"`
	Condition        string  `json:"condition"`
	Brand            string  `json:"brand"`
	PostedDate       string  `json:"postedDate"`
	DeliveredDate    string  `json:"deliveredDate"`
	SaleDate         string  `json:"saleDate"`
	SoldPrice        float64 `json:"soldPrice"`
	ShippingStatus   string  `json:"shippingStatus"`
	ShippingProvider string  `json:"shippingProvider"`
	TrackingNumber   string  `json:"trackingNumber"`
	BuyerID          string  `json:"buyerId"`
	PromotedListing  string  `json:"promotedListing"`
	HandlingTime     string  `json:"handlingTime"`
	PrivateSale      string  `json:"privateSale"`
	EbayOrderNo      string  `json:"ebayOrderNo"`
}

// Container returns the storage location encoded in the product's SKU.
func (p Product) Container() string {
	return ExtractContainer(p.SKU)
}

// FormData carries the user-editable fields for add and update operations.
type FormData struct {
	Title            string  `json:"title"`
	PurchaseDate     string  `json:"purchaseDate"`
	PurchaseLocation string  `json:"purchaseLocation"`
	PurchasePrice    float64 `json:"purchasePrice"`
	StorageLocation  string  `json:"storageLocation"`
	PrivateSale      bool    `json:"privateSale"`
	Images           bool    `json:"images"`

	// Sequence overrides the derived sequence number when non-empty.
	Sequence string `json:"sequence,omitempty"`
}
