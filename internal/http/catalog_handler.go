package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/fjod/orderdesk/internal/domain"
	"github.com/fjod/orderdesk/internal/store"
	"github.com/fjod/orderdesk/internal/workflow"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NextIDResponseDTO struct {
	ID string `json:"id"`
}

type RestockRequestDTO struct {
	Quantity int `json:"quantity"`
}

// ItemHandler serves the item catalog
type ItemHandler struct {
	items store.ItemDirectory
	wf    *workflow.Workflow
}

func NewItemHandler(items store.ItemDirectory, wf *workflow.Workflow) *ItemHandler {
	return &ItemHandler{items: items, wf: wf}
}

// ListItems returns every item, a name search with ?q=, or only stocked
// items with ?available=true. ?name= looks up the one item with that exact
// name instead.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if name := query.Get("name"); name != "" {
		item, err := h.items.FindByName(name)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
		return
	}

	var items []domain.Item
	switch {
	case query.Get("available") == "true":
		items = slices.Collect(h.items.ListAvailable())
	case query.Get("q") != "":
		items = h.items.Search(query.Get("q"))
	default:
		items = h.items.List()
	}
	if items == nil {
		items = []domain.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.Find(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) NextID(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, NextIDResponseDTO{ID: h.items.NextID()})
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item domain.Item
	if !decodeJSON(w, r, &item) {
		return
	}
	if strings.TrimSpace(item.ID) == "" {
		item.ID = h.items.NextID()
	}

	if err := h.items.Add(item); err != nil {
		handleError(w, r, err)
		return
	}
	loggerFrom(r).Info("item added", zap.String("item_id", item.ID))
	respondJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var item domain.Item
	if !decodeJSON(w, r, &item) {
		return
	}
	item.ID = chi.URLParam(r, "id")

	updated, err := h.items.Update(item)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.wf.DeleteItem(id); err != nil {
		handleError(w, r, err)
		return
	}
	loggerFrom(r).Info("item deleted", zap.String("item_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) RestockItem(w http.ResponseWriter, r *http.Request) {
	var req RestockRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.items.Restock(chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// CustomerHandler serves the customer directory
type CustomerHandler struct {
	customers store.CustomerDirectory
}

func NewCustomerHandler(customers store.CustomerDirectory) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// ListCustomers returns every customer or a name/ID search with ?q=.
// ?lookup= returns the one customer with that exact email or ID instead.
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if term := r.URL.Query().Get("lookup"); term != "" {
		customer, err := h.customers.Lookup(term)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, customer)
		return
	}

	var customers []domain.Customer
	if q := r.URL.Query().Get("q"); q != "" {
		customers = h.customers.Search(q)
	} else {
		customers = h.customers.List()
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.Find(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) NextID(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, NextIDResponseDTO{ID: h.customers.NextID()})
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer domain.Customer
	if !decodeJSON(w, r, &customer) {
		return
	}
	if strings.TrimSpace(customer.ID) == "" {
		customer.ID = h.customers.NextID()
	}

	if err := h.customers.Add(customer); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer domain.Customer
	if !decodeJSON(w, r, &customer) {
		return
	}
	customer.ID = chi.URLParam(r, "id")

	updated, err := h.customers.Update(customer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Delete(chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
