package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robertgryska01/pro8link/internal/inventory"
	"github.com/robertgryska01/pro8link/internal/syncer"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeSyncError maps core errors to HTTP statuses. A sync already in flight
// is a conflict the caller resolves by re-invoking.
func writeSyncError(w http.ResponseWriter, err error) {
	if errors.Is(err, syncer.ErrSyncInFlight) {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeError(w, http.StatusBadGateway, err)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"syncing": s.syncer.Syncing(),
	})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	var products []inventory.Product
	switch {
	case r.URL.Query().Get("container") != "":
		products = s.repo.ByContainer(r.URL.Query().Get("container"))
	case r.URL.Query().Get("status") != "":
		products = s.repo.ByStatus(r.URL.Query().Get("status"))
	default:
		products = s.repo.Products()
	}
	if products == nil {
		products = []inventory.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := s.repo.BySKU(chi.URLParam(r, "sku"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("product not found"))
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var form inventory.FormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if form.StorageLocation == "" {
		writeError(w, http.StatusBadRequest, errors.New("storageLocation is required"))
		return
	}

	sku, err := s.syncer.AddProduct(r.Context(), form)
	if err != nil {
		writeSyncError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"sku": sku})
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := s.repo.BySKU(chi.URLParam(r, "sku"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("product not found"))
		return
	}

	var form inventory.FormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sku, err := s.syncer.UpdateProduct(r.Context(), product, form)
	if err != nil {
		writeSyncError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sku": sku})
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := s.repo.BySKU(chi.URLParam(r, "sku"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("product not found"))
		return
	}

	if err := s.syncer.DeleteProduct(r.Context(), product); err != nil {
		writeSyncError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if err := s.syncer.SyncData(r.Context()); err != nil {
		writeSyncError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"products": len(s.repo.Products())})
}

func (s *Server) handleSyncAll(w http.ResponseWriter, r *http.Request) {
	if err := s.syncer.TriggerSyncAll(r.Context()); err != nil {
		writeSyncError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"products": len(s.repo.Products())})
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"storageLocations":  emptyIfNil(s.repo.StorageLocations()),
		"purchaseLocations": emptyIfNil(s.repo.PurchaseLocations()),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.Stats())
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
