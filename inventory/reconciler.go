/*
reconciler.go - Atomic pairing of a transaction with its stock effect

PURPOSE:
  The Reconciler is the ONLY component allowed to create a transaction and
  mutate stock together. Recording a sale of 3 widgets means two writes -
  one ledger append, one stock decrement - and they land as one logical
  step: no caller can ever observe a recorded transaction without its stock
  effect, or a stock change without its transaction.

PRECONDITIONS (checked in order, each failure is a complete no-op):
  1. The item must exist            -> ErrItemNotFound
  2. Quantity must be positive,
     price must be non-negative     -> ErrInvalidInput
  3. A sale must not exceed the
     item's current stock           -> ErrInsufficientStock

STOCK EFFECT:
  purchase: stock + quantity
  sale:     stock - quantity   (never below zero, by precondition 3)

SNAPSHOTS:
  The transaction stores the item's name and the total amount
  (quantity x price) as they are at recording time. Later renames or price
  edits do not touch recorded transactions.

SEE ALSO:
  - ledger.go: Where transactions land
  - catalog.go: Where stock lives
*/
package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Reconciler records transactions and applies their stock effect.
type Reconciler struct {
	Store Store

	// Now supplies transaction timestamps. Overridable in tests.
	Now func() time.Time
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{Store: store, Now: time.Now}
}

// Record validates, appends the transaction, and writes back the new stock
// as one atomic step. On any error, both the ledger and the catalog are
// exactly as they were before the call.
func (r *Reconciler) Record(ctx context.Context, itemID ItemID, txType TxType, quantity int, pricePerUnit decimal.Decimal) (Transaction, error) {
	item, err := r.Store.GetItem(ctx, itemID)
	if err != nil {
		return Transaction{}, err
	}

	if quantity <= 0 {
		return Transaction{}, &ValidationError{Field: "quantity", Message: "must be a positive integer"}
	}
	if pricePerUnit.IsNegative() {
		return Transaction{}, &ValidationError{Field: "pricePerUnit", Message: "must not be negative"}
	}

	var newStock int
	switch txType {
	case TxPurchase:
		newStock = item.Stock + quantity
	case TxSale:
		if quantity > item.Stock {
			return Transaction{}, &InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Available: item.Stock,
				Requested: quantity,
			}
		}
		newStock = item.Stock - quantity
	default:
		return Transaction{}, &ValidationError{Field: "type", Message: "must be purchase or sale"}
	}

	tx := Transaction{
		ID:           NewTransactionID(),
		ItemID:       item.ID,
		ItemName:     item.Name, // Snapshot; later renames don't apply
		Type:         txType,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		// Exact decimal multiplication; rounding is a display concern
		TotalAmount: pricePerUnit.Mul(decimal.NewFromInt(int64(quantity))),
		Timestamp:   r.Now(),
	}

	updated := item
	updated.Stock = newStock

	err = r.Store.WithTx(ctx, func(s Store) error {
		if err := s.Append(ctx, tx); err != nil {
			return err
		}
		return s.SaveItem(ctx, updated)
	})
	if err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
