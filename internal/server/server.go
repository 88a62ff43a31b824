package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robertgryska01/pro8link/internal/inventory"
)

// Syncer is the orchestrator surface the API exposes.
type Syncer interface {
	SyncData(ctx context.Context) error
	TriggerSyncAll(ctx context.Context) error
	AddProduct(ctx context.Context, form inventory.FormData) (string, error)
	UpdateProduct(ctx context.Context, product inventory.Product, form inventory.FormData) (string, error)
	DeleteProduct(ctx context.Context, product inventory.Product) error
	Syncing() bool
}

// Server is the JSON API over the sync core. It is a data surface for the
// dashboard UI, not a UI itself.
type Server struct {
	syncer Syncer
	repo   *inventory.Repository
}

func New(syncer Syncer, repo *inventory.Repository) *Server {
	return &Server{
		syncer: syncer,
		repo:   repo,
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Post("/products", s.handleAddProduct)
		r.Get("/products/{sku}", s.handleGetProduct)
		r.Put("/products/{sku}", s.handleUpdateProduct)
		r.Delete("/products/{sku}", s.handleDeleteProduct)

		r.Post("/sync", s.handleSync)
		r.Post("/sync/all", s.handleSyncAll)

		r.Get("/setup", s.handleSetup)
		r.Get("/stats", s.handleStats)
	})

	return r
}
