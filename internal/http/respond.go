package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/orderdesk/internal/domain"
	"github.com/fjod/orderdesk/internal/workflow"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   string `json:"details,omitempty"`
	Available *int   `json:"available,omitempty"`
}

// errorMapping ties a domain error kind to its HTTP status and code
var errorMapping = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrItemNotFound, http.StatusNotFound, "item_not_found"},
	{domain.ErrCustomerNotFound, http.StatusNotFound, "customer_not_found"},
	{domain.ErrLineNotFound, http.StatusNotFound, "line_not_found"},
	{domain.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{domain.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{domain.ErrInvalidItem, http.StatusBadRequest, "invalid_item"},
	{domain.ErrInvalidCustomer, http.StatusBadRequest, "invalid_customer"},
	{domain.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
	{domain.ErrNoCustomerSelected, http.StatusConflict, "no_customer_selected"},
	{domain.ErrEmptyCart, http.StatusConflict, "empty_cart"},
	{domain.ErrItemReserved, http.StatusConflict, "item_reserved"},
	{domain.ErrDuplicateID, http.StatusConflict, "duplicate_id"},
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError converts desk errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	err = workflow.TranslateError(err)

	for _, m := range errorMapping {
		if !errors.Is(err, m.kind) {
			continue
		}
		resp := ErrorResponse{
			Error:   m.kind.Error(),
			Code:    m.code,
			Details: err.Error(),
		}
		var shortage *domain.InsufficientStockError
		if errors.As(err, &shortage) {
			resp.Available = &shortage.Available
		}
		respondJSON(w, m.status, resp)
		return
	}

	loggerFrom(r).Error("unhandled error", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}
