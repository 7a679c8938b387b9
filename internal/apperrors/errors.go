// Package apperrors defines the error taxonomy shared by services and
// handlers. Every error carries enough context to be surfaced verbatim to the
// caller; services never swallow or retry.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input, caught before any transaction
// starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing order, product, store, or user.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// UnauthorizedError reports a failed role or ownership check.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return "unauthorized: " + e.Reason
}

// InvalidTransitionError reports a status guard failure. From is the status
// observed when the guard failed.
type InvalidTransitionError struct {
	OrderID uint
	From    string
	To      string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %d: cannot transition from %s to %s", e.OrderID, e.From, e.To)
}

// InsufficientStockError reports a stock guard failure, carrying the current
// stock and the quantity the operation needed.
type InsufficientStockError struct {
	ProductID uint
	Available int
	Needed    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %d: insufficient stock (available %d, needed %d)", e.ProductID, e.Available, e.Needed)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsInsufficientStock(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}
