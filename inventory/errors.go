/*
errors.go - Centralized error types for the inventory engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every error here is recoverable by the caller: the engine never crashes
  the process on bad input - it rejects the specific operation and leaves
  all state unchanged (failed operations are no-ops).

ERROR CATEGORIES:
  1. Not found    - Operation referenced a non-existent item
  2. Invalid input - Non-positive quantity, negative price, empty name
  3. Insufficient stock - Sale quantity exceeds available stock

USAGE:
  Callers classify with errors.Is:

    if errors.Is(err, inventory.ErrInsufficientStock) {
        // block the sale, nothing was recorded
    }

SEE ALSO:
  - reconciler.go: Produces InsufficientStockError
  - catalog.go: Produces ErrItemNotFound / ErrInvalidInput
*/
package inventory

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrItemNotFound is returned when an operation references an item id
	// that is not in the catalog. Cascade deletes are silent no-ops and do
	// NOT return this.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidInput is returned for malformed operation input: empty item
	// name, negative stock or price, non-positive quantity.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientStock is returned when a sale quantity exceeds the
	// item's current stock. The transaction is not recorded and stock is
	// unchanged. Hard precondition, not a soft warning.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientStockError reports how far a sale overshot available stock.
type InsufficientStockError struct {
	ItemID    ItemID
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.ItemName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ValidationError names the specific field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing item.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound)
}

// IsClientError returns true if the error is due to invalid client input
// or a business-rule rejection (as opposed to a storage failure).
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrItemNotFound)
}
