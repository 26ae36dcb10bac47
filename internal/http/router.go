package http

import (
	"net/http"
	"time"

	"github.com/fjod/orderdesk/internal/store"
	"github.com/fjod/orderdesk/internal/workflow"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

// NewRouter wires the desk API onto a chi router
func NewRouter(wf *workflow.Workflow, items store.ItemDirectory, customers store.CustomerDirectory, logger *zap.Logger, cfg RouterConfig) http.Handler {
	orderHandler := NewOrderHandler(wf)
	itemHandler := NewItemHandler(items, wf)
	customerHandler := NewCustomerHandler(customers)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customerHandler.ListCustomers)
			r.Post("/", customerHandler.CreateCustomer)
			r.Get("/next-id", customerHandler.NextID)
			r.Get("/{id}", customerHandler.GetCustomer)
			r.Put("/{id}", customerHandler.UpdateCustomer)
			r.Delete("/{id}", customerHandler.DeleteCustomer)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.ListItems)
			r.Post("/", itemHandler.CreateItem)
			r.Get("/next-id", itemHandler.NextID)
			r.Get("/{id}", itemHandler.GetItem)
			r.Put("/{id}", itemHandler.UpdateItem)
			r.Delete("/{id}", itemHandler.DeleteItem)
			r.Post("/{id}/restock", itemHandler.RestockItem)
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", orderHandler.GetCart)
			r.Put("/customer", orderHandler.SelectCustomer)
			r.Post("/items", orderHandler.AddItem)
			r.Delete("/items/{item_id}", orderHandler.RemoveItem)
			r.Post("/place", orderHandler.PlaceOrder)
			r.Post("/cancel", orderHandler.CancelOrder)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.ListOrders)
			r.Get("/lines", orderHandler.ListOrderLines)
			r.Get("/{order_id}", orderHandler.GetOrder)
		})
	})

	return r
}
