package workflow

import (
	"errors"

	"github.com/fjod/orderdesk/internal/domain"
	"github.com/fjod/orderdesk/internal/history"
	"github.com/fjod/orderdesk/internal/store"
)

// TranslateError maps directory and history errors to domain error kinds
// so callers only ever match on the domain package.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, history.ErrDuplicateOrderID):
		return domain.ErrDuplicateID
	case errors.Is(err, history.ErrOrderNotFound):
		return domain.ErrOrderNotFound
	case errors.Is(err, history.ErrNoLines):
		return domain.ErrEmptyCart
	default:
		return store.DomainError(err)
	}
}
