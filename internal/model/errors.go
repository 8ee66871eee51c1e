package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an order, exchange, family or variety id
// does not resolve to a record.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned when an admin-gated operation is called
// without the admin capability.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError rejects malformed input before any ledger state is read.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidAmountError rejects a non-positive payment amount.
type InvalidAmountError struct {
	Amount string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("payment amount must be positive, got %s", e.Amount)
}

// Shortfall reports one variety whose requested quantity exceeds what the
// source pool holds.
type Shortfall struct {
	VarietyID string `json:"cookie_variety_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// InsufficientInventoryError aborts an operation whose transfers or
// availability checks cannot all be satisfied. It carries the per-variety
// shortfall detail and is always raised before any mutation.
type InsufficientInventoryError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientInventoryError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s: requested %d, only %d available", s.VarietyID, s.Requested, s.Available))
	}
	return "insufficient inventory: " + strings.Join(parts, "; ")
}

// Insufficient builds a single-variety InsufficientInventoryError.
func Insufficient(varietyID string, requested, available int) error {
	return &InsufficientInventoryError{Shortfalls: []Shortfall{{
		VarietyID: varietyID,
		Requested: requested,
		Available: available,
	}}}
}

// InvalidTransitionError rejects an illegal lifecycle move: skipping or
// reverting an order state, resolving a terminal exchange again, or
// editing/deleting an order past the point where inventory has moved.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %q to %q", e.Entity, e.From, e.To)
}

// ConstraintViolationError reports a uniqueness conflict, such as a
// duplicate family or variety name.
type ConstraintViolationError struct {
	Msg string
}

func (e *ConstraintViolationError) Error() string { return e.Msg }
