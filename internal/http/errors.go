// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error      string            `json:"error"`
	Details    string            `json:"details,omitempty"`
	Shortfalls []model.Shortfall `json:"insufficient_items,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

// WriteDomainError maps a domain error to its HTTP status and
// machine-readable kind. Insufficient-inventory responses carry the
// per-item shortfall detail.
func WriteDomainError(w http.ResponseWriter, err error) {
	var (
		validation   *model.ValidationError
		amount       *model.InvalidAmountError
		insufficient *model.InsufficientInventoryError
		transition   *model.InvalidTransitionError
		constraint   *model.ConstraintViolationError
	)
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "")
	case errors.Is(err, model.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	case errors.As(err, &validation):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", validation.Msg)
	case errors.As(err, &amount):
		WriteJSONError(w, http.StatusBadRequest, "invalid_amount", amount.Error())
	case errors.As(err, &insufficient):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(jsonError{
			Error:      "insufficient_inventory",
			Details:    insufficient.Error(),
			Shortfalls: insufficient.Shortfalls,
		})
	case errors.As(err, &transition):
		WriteJSONError(w, http.StatusConflict, "invalid_transition", transition.Error())
	case errors.As(err, &constraint):
		WriteJSONError(w, http.StatusConflict, "constraint_violation", constraint.Msg)
	default:
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
