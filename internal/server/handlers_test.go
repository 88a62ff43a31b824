package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertgryska01/pro8link/internal/inventory"
	"github.com/robertgryska01/pro8link/internal/syncer"
)

// fakeSyncer records calls and mutates the repository the way a real sync
// would, so handlers can be tested without a spreadsheet.
type fakeSyncer struct {
	repo *inventory.Repository

	syncErr   error
	addSKU    string
	deleted   []string
	triggered int
}

func (f *fakeSyncer) SyncData(ctx context.Context) error { return f.syncErr }

func (f *fakeSyncer) TriggerSyncAll(ctx context.Context) error {
	f.triggered++
	return f.syncErr
}

func (f *fakeSyncer) AddProduct(ctx context.Context, form inventory.FormData) (string, error) {
	if f.syncErr != nil {
		return "", f.syncErr
	}
	return f.addSKU, nil
}

func (f *fakeSyncer) UpdateProduct(ctx context.Context, product inventory.Product, form inventory.FormData) (string, error) {
	if f.syncErr != nil {
		return "", f.syncErr
	}
	return product.SKU, nil
}

func (f *fakeSyncer) DeleteProduct(ctx context.Context, product inventory.Product) error {
	f.deleted = append(f.deleted, product.SKU)
	return f.syncErr
}

func (f *fakeSyncer) Syncing() bool { return false }

func newTestServer(t *testing.T) (*httptest.Server, *fakeSyncer, *inventory.Repository) {
	t.Helper()
	repo := inventory.NewRepository()
	repo.Replace(inventory.Snapshot{
		Products: []inventory.Product{
			{RowIndex: 2, SKU: "B01-0001-5", Status: "In Stock", Title: "Lamp"},
			{RowIndex: 3, SKU: "C02-0001-12", Status: "Sold", Title: "Chair"},
		},
		StorageLocations:  []string{"B01", "C02"},
		PurchaseLocations: []string{"Car Boot"},
	})

	fs := &fakeSyncer{repo: repo, addSKU: "B01-0002-9"}
	srv := httptest.NewServer(New(fs, repo).Router())
	t.Cleanup(srv.Close)
	return srv, fs, repo
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestListProducts(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var products []inventory.Product
	resp := getJSON(t, srv.URL+"/api/products", &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, products, 2)

	products = nil
	getJSON(t, srv.URL+"/api/products?container=B01", &products)
	require.Len(t, products, 1)
	assert.Equal(t, "B01-0001-5", products[0].SKU)

	products = nil
	getJSON(t, srv.URL+"/api/products?status=Sold", &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Chair", products[0].Title)
}

func TestGetProduct(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var product inventory.Product
	resp := getJSON(t, srv.URL+"/api/products/B01-0001-5", &product)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lamp", product.Title)

	resp = getJSON(t, srv.URL+"/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddProduct(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body, _ := json.Marshal(inventory.FormData{
		Title:           "Kettle",
		PurchasePrice:   9,
		StorageLocation: "B01",
	})
	resp, err := http.Post(srv.URL+"/api/products", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "B01-0002-9", out["sku"])
}

func TestAddProductRequiresStorageLocation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/products", "application/json", bytes.NewReader([]byte(`{"title":"Kettle"}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteProduct(t *testing.T) {
	srv, fs, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/products/B01-0001-5", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"B01-0001-5"}, fs.deleted)
}

func TestSyncConflict(t *testing.T) {
	srv, fs, _ := newTestServer(t)
	fs.syncErr = syncer.ErrSyncInFlight

	resp, err := http.Post(srv.URL+"/api/sync", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSetupAndStats(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var setup map[string][]string
	resp := getJSON(t, srv.URL+"/api/setup", &setup)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"B01", "C02"}, setup["storageLocations"])

	var stats inventory.Stats
	getJSON(t, srv.URL+"/api/stats", &stats)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.ByStatus["Sold"])
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var body map[string]interface{}
	resp := getJSON(t, srv.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
