/*
Package inventory provides the core stock-and-ledger engine.

PURPOSE:
  This package contains the domain types and algorithms for tracking a
  single shop's stock and money flow: a catalog of items, an append-only
  ledger of purchase/sale transactions, and the reconciler that keeps
  stock quantities consistent with recorded transactions.

KEY CONCEPTS IN THIS FILE (types.go):
  - Item: A catalog entry (name, category, stock, cost/selling price)
  - Transaction: An immutable ledger entry recording one purchase or sale
  - TxType: Closed set of transaction kinds {purchase, sale}
  - Item/Transaction IDs: Type-safe identifiers, generated fresh via UUID

DESIGN PRINCIPLES:
  1. Immutability: Transactions are never edited after creation
  2. Precision: Uses decimal.Decimal to avoid floating-point errors;
     no rounding happens inside the engine, only at display boundaries
  3. Type Safety: Strong typing for IDs prevents mixing item/transaction IDs
  4. Weak references: Transaction.ItemID is a lookup key, not an ownership
     edge - the referenced item may have been deleted since

SEE ALSO:
  - catalog.go: Catalog operations over the store
  - ledger.go: Append-only transaction log
  - reconciler.go: Atomic pairing of a transaction with its stock effect
*/
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ItemID string
type TransactionID string

// NewItemID generates a fresh, never-reused item identifier.
func NewItemID() ItemID { return ItemID(uuid.NewString()) }

// NewTransactionID generates a fresh transaction identifier.
func NewTransactionID() TransactionID { return TransactionID(uuid.NewString()) }

// =============================================================================
// ITEM - One stocked product in the catalog
// =============================================================================

// Item is a catalog entry. Owned exclusively by the catalog store;
// stock is mutated only by catalog edits and the Reconciler.
//
// INVARIANT: Stock >= 0 at all times observable between operations.
type Item struct {
	ID           ItemID
	Name         string
	Category     string
	Stock        int
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
}

// ItemDraft carries the caller-provided fields for a new item.
// The catalog generates the ID.
type ItemDraft struct {
	Name         string
	Category     string
	Stock        int
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
}

// ItemPatch is a partial update. Nil fields are left unchanged.
// Cross-field consistency is NOT re-validated: a selling price below cost
// is permitted (the margin just goes negative).
type ItemPatch struct {
	Name         *string
	Category     *string
	Stock        *int
	CostPrice    *decimal.Decimal
	SellingPrice *decimal.Decimal
}

// Apply merges the patch into item and returns the result.
func (p ItemPatch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Stock != nil {
		item.Stock = *p.Stock
	}
	if p.CostPrice != nil {
		item.CostPrice = *p.CostPrice
	}
	if p.SellingPrice != nil {
		item.SellingPrice = *p.SellingPrice
	}
	return item
}

// =============================================================================
// TRANSACTION - Immutable record of one purchase or sale event
// =============================================================================

type TxType string

const (
	TxPurchase TxType = "purchase" // Stock bought in (stock increases)
	TxSale     TxType = "sale"     // Stock sold (stock decreases)
)

// ParseTxType validates a transaction type from external input.
func ParseTxType(s string) (TxType, bool) {
	switch TxType(s) {
	case TxPurchase, TxSale:
		return TxType(s), true
	}
	return "", false
}

// Transaction records one purchase or sale affecting one item's stock.
//
// INVARIANTS:
//   - Append-only: once written, never modified
//   - TotalAmount = Quantity x PricePerUnit at creation time; it is never
//     recomputed, even if the item's prices change later
//   - ItemName is a snapshot of the item's name at transaction time; it
//     does not track later renames (and survives item deletion in reports
//     that read it before the cascade)
type Transaction struct {
	ID           TransactionID
	ItemID       ItemID // Weak reference; the item may later be deleted
	ItemName     string // Name snapshot at transaction time
	Type         TxType
	Quantity     int
	PricePerUnit decimal.Decimal
	TotalAmount  decimal.Decimal
	Timestamp    time.Time
}
