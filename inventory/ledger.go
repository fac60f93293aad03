/*
ledger.go - Append-only transaction log

PURPOSE:
  The Ledger is the record of every purchase and sale event. Revenue, cost
  of goods, and the top-product ranking are always derived by replaying it;
  there is no separate running total that can drift out of sync.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: No edits. A transaction written is a transaction kept.
  2. IMMUTABLE: TotalAmount is computed once at creation and never again.
  3. ORDERED: Most-recent-first is the canonical presentation order;
     insertion order is preserved internally.

THE ONE EXCEPTION:
  RemoveByItem exists only for the cascade when a catalog item is deleted.
  The item id is a weak reference, and deleting an item must not leave
  dangling transactions behind. Outside of that cascade, nothing is ever
  removed.

VALIDATION:
  None here. The Ledger is dumb storage; stock checks and input validation
  are the Reconciler's job (separation of concerns).

SEE ALSO:
  - reconciler.go: Builds and appends transactions
  - catalog.go: Drives the deletion cascade
*/
package inventory

import "context"

// Ledger exposes the transaction log over a Store.
type Ledger struct {
	Store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{Store: store}
}

// Append inserts a transaction at the head of the record, preserving all
// previously appended entries unmodified. No validation happens here.
func (l *Ledger) Append(ctx context.Context, tx Transaction) error {
	return l.Store.Append(ctx, tx)
}

// RemoveByItem removes every transaction referencing the item. Idempotent.
// Invoked by the catalog's deletion cascade; not part of normal flow.
func (l *Ledger) RemoveByItem(ctx context.Context, id ItemID) error {
	return l.Store.RemoveByItem(ctx, id)
}

// Transactions returns all transactions, most-recent-first.
func (l *Ledger) Transactions(ctx context.Context) ([]Transaction, error) {
	return l.Store.Transactions(ctx)
}
