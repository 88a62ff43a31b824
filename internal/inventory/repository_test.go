package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture() Snapshot {
	return Snapshot{
		Products: []Product{
			{RowIndex: 2, SKU: "B01-0001-5", Status: "In Stock", PurchasePrice: 5},
			{RowIndex: 3, SKU: "B01-0003-9", Status: "Sold", PurchasePrice: 9, SoldPrice: 20},
			{RowIndex: 4, SKU: "C02-0001-12", Status: "In Stock", PurchasePrice: 12},
		},
		StorageLocations:  []string{"B01", "C02"},
		PurchaseLocations: []string{"Car Boot", "Charity Shop"},
	}
}

func TestRepositoryReplaceAndViews(t *testing.T) {
	repo := NewRepository()
	repo.Replace(snapshotFixture())

	assert.Len(t, repo.Products(), 3)
	assert.Equal(t, []string{"B01", "C02"}, repo.StorageLocations())
	assert.Equal(t, []string{"Car Boot", "Charity Shop"}, repo.PurchaseLocations())

	b01 := repo.ByContainer("B01")
	require.Len(t, b01, 2)
	assert.Equal(t, "B01-0001-5", b01[0].SKU)

	inStock := repo.ByStatus("In Stock")
	assert.Len(t, inStock, 2)

	p, ok := repo.BySKU("C02-0001-12")
	require.True(t, ok)
	assert.Equal(t, 4, p.RowIndex)

	_, ok = repo.BySKU("missing")
	assert.False(t, ok)
}

func TestRepositoryWholesaleReplacement(t *testing.T) {
	repo := NewRepository()
	repo.Replace(snapshotFixture())
	require.Len(t, repo.Products(), 3)

	repo.Replace(Snapshot{Products: []Product{{RowIndex: 2, SKU: "Z09-0001-1"}}})
	products := repo.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Z09-0001-1", products[0].SKU)
	assert.Empty(t, repo.StorageLocations())
}

func TestNextSequence(t *testing.T) {
	repo := NewRepository()
	repo.Replace(snapshotFixture())

	assert.Equal(t, "0004", repo.NextSequence("B01"))
	assert.Equal(t, "0002", repo.NextSequence("C02"))
	// New container starts at 0001.
	assert.Equal(t, "0001", repo.NextSequence("D03"))
}

func TestBuildSequencePadding(t *testing.T) {
	assert.Equal(t, "0001", BuildSequence(1))
	assert.Equal(t, "0042", BuildSequence(42))
	assert.Equal(t, "1234", BuildSequence(1234))
	assert.Equal(t, "12345", BuildSequence(12345))
}

func TestRepositoryStats(t *testing.T) {
	repo := NewRepository()
	repo.Replace(snapshotFixture())

	stats := repo.Stats()
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.ByStatus["In Stock"])
	assert.Equal(t, 1, stats.ByStatus["Sold"])
	assert.Equal(t, 2, stats.ByContainer["B01"])
	assert.Equal(t, float64(26), stats.StockValue)
	assert.Equal(t, float64(20), stats.TotalSoldValue)
}
