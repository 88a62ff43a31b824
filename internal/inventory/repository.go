package inventory

import (
	"strconv"
	"sync"
)

// Snapshot is the full state read from the spreadsheet in one sync pass.
type Snapshot struct {
	Products          []Product
	StorageLocations  []string
	PurchaseLocations []string
}

// Repository holds the current snapshot of the spreadsheet. The sheet can be
// edited out-of-band by the Apps Script job or by humans, so there is no
// partial-update path: the orchestrator replaces the snapshot wholesale
// after every successful read, which is the only way to stay consistent with
// the spreadsheet of record.
type Repository struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewRepository() *Repository {
	return &Repository{}
}

// Replace swaps in a freshly assembled snapshot.
func (r *Repository) Replace(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
}

// Products returns the current record set.
func (r *Repository) Products() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap.Products
}

// StorageLocations returns the storage location setup list.
func (r *Repository) StorageLocations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap.StorageLocations
}

// PurchaseLocations returns the purchase location setup list.
func (r *Repository) PurchaseLocations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap.PurchaseLocations
}

// BySKU looks up a single record by SKU.
func (r *Repository) BySKU(sku string) (Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.snap.Products {
		if p.SKU == sku {
			return p, true
		}
	}
	return Product{}, false
}

// ByContainer returns the records stored in the given container.
func (r *Repository) ByContainer(container string) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Product
	for _, p := range r.snap.Products {
		if p.Container() == container {
			out = append(out, p)
		}
	}
	return out
}

// ByStatus returns the records with the given status.
func (r *Repository) ByStatus(status string) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Product
	for _, p := range r.snap.Products {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// NextSequence derives the sequence number for a new SKU in the given
// container: one past the highest existing sequence, zero-padded to four
// digits. An empty container history starts at 0001.
func (r *Repository) NextSequence(container string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	highest := 0
	for _, p := range r.snap.Products {
		if p.Container() != container {
			continue
		}
		seq := ExtractSequenceNumber(p.SKU)
		if seq == "" {
			continue
		}
		if n, err := strconv.Atoi(seq); err == nil && n > highest {
			highest = n
		}
	}
	return BuildSequence(highest + 1)
}

// BuildSequence formats a sequence number the way SKUs encode it.
func BuildSequence(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// Stats summarizes the current snapshot for the dashboard endpoints.
type Stats struct {
	TotalProducts  int            `json:"totalProducts"`
	ByStatus       map[string]int `json:"byStatus"`
	ByContainer    map[string]int `json:"byContainer"`
	StockValue     float64        `json:"stockValue"`
	TotalSoldValue float64        `json:"totalSoldValue"`
}

// Stats computes aggregate counts and totals over the current snapshot.
func (r *Repository) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		ByStatus:    make(map[string]int),
		ByContainer: make(map[string]int),
	}
	for _, p := range r.snap.Products {
		stats.TotalProducts++
		if p.Status != "" {
			stats.ByStatus[p.Status]++
		}
		if c := p.Container(); c != "" {
			stats.ByContainer[c]++
		}
		stats.StockValue += p.PurchasePrice
		stats.TotalSoldValue += p.SoldPrice
	}
	return stats
}
