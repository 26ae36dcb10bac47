package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/orderdesk/internal/domain"
	"github.com/fjod/orderdesk/internal/workflow"
	"github.com/go-chi/chi/v5"
)

// OrderHandler serves the order screen: the open cart and the history
type OrderHandler struct {
	wf *workflow.Workflow
}

func NewOrderHandler(wf *workflow.Workflow) *OrderHandler {
	return &OrderHandler{wf: wf}
}

type SelectCustomerRequestDTO struct {
	CustomerID string `json:"customer_id"`
}

type AddItemRequestDTO struct {
	ItemID   string          `json:"item_id"`
	Quantity json.RawMessage `json:"quantity"`
}

type PlaceOrderRequestDTO struct {
	OrderID    string `json:"order_id"`
	Date       string `json:"date"`
	CustomerID string `json:"customer_id"`
}

type AddItemResponseDTO struct {
	Line domain.CartLine   `json:"line"`
	Cart workflow.CartView `json:"cart"`
}

func (h *OrderHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.wf.View())
}

func (h *OrderHandler) SelectCustomer(w http.ResponseWriter, r *http.Request) {
	var req SelectCustomerRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.CustomerID) == "" {
		respondError(w, http.StatusBadRequest, "invalid_customer_id", "customer_id is required")
		return
	}

	if _, err := h.wf.SelectCustomer(req.CustomerID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.wf.View())
}

func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ItemID) == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}
	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		handleError(w, r, err)
		return
	}

	line, err := h.wf.AddItem(req.ItemID, quantity)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, AddItemResponseDTO{Line: line, Cart: h.wf.View()})
}

// RemoveItem deletes a cart line; the client has already confirmed
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if _, err := h.wf.RemoveCartLine(chi.URLParam(r, "item_id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.wf.View())
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(domain.DateLayout, req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_date", "date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	receipt, err := h.wf.PlaceOrder(r.Context(), workflow.PlaceOrderRequest{
		OrderID:    req.OrderID,
		Date:       date,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, receipt)
}

// CancelOrder abandons the open cart; the client has already confirmed
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.wf.CancelOrder()
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.wf.Orders())
}

func (h *OrderHandler) ListOrderLines(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.wf.History())
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.wf.Order(chi.URLParam(r, "order_id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// parseQuantity accepts only a JSON integer; anything else is an invalid quantity
func parseQuantity(raw json.RawMessage) (int, error) {
	var quantity int
	if len(raw) == 0 || json.Unmarshal(raw, &quantity) != nil {
		return 0, fmt.Errorf("%w: quantity must be a whole number", domain.ErrInvalidQuantity)
	}
	return quantity, nil
}
