/*
store.go - Persistence interface for the catalog and the ledger

PURPOSE:
  Defines the interface between the engine and storage. A Store owns both
  collections - the catalog of items and the transaction ledger - because
  cascade deletion must touch both under one atomic step.

LEDGER CONTRACT:
  The transaction side is append-only: Append and RemoveByItem are the only
  write operations, and RemoveByItem exists solely for the cascade when an
  item is deleted. There is no way to edit a transaction.

ATOMIC STEPS:
  WithTx executes a function against the store with all-or-nothing
  semantics. The reconciler uses it to pair a ledger append with the stock
  write-back; the catalog uses it to pair an item deletion with the ledger
  cascade. If fn returns an error, no write inside it survives.

IMPLEMENTATIONS:
  - store/sqlite: Durable SQLite persistence
  - inventory/store: In-memory, for testing and dev

SEE ALSO:
  - catalog.go, ledger.go: Domain operations built on this interface
  - reconciler.go: The only caller that writes to both sides at once
*/
package inventory

import "context"

// Store persists items and transactions.
// Transactions are append-only: corrections would be new transactions,
// never edits. The only transaction removal is the item-deletion cascade.
type Store interface {
	// SaveItem inserts the item, or replaces it when the id already exists.
	SaveItem(ctx context.Context, item Item) error

	// GetItem returns the item, or ErrItemNotFound.
	GetItem(ctx context.Context, id ItemID) (Item, error)

	// ListItems returns all items in insertion order.
	ListItems(ctx context.Context) ([]Item, error)

	// DeleteItem removes the item row only. No-op when absent.
	// Callers wanting the full cascade go through Catalog.DeleteItem.
	DeleteItem(ctx context.Context, id ItemID) error

	// Append persists a transaction at the head of the ledger.
	Append(ctx context.Context, tx Transaction) error

	// RemoveByItem removes every transaction referencing the item.
	// Idempotent; removing for an unknown item is a no-op.
	RemoveByItem(ctx context.Context, id ItemID) error

	// Transactions returns the full ledger, most-recent-first.
	Transactions(ctx context.Context) ([]Transaction, error)

	// WithTx executes fn atomically. If fn returns an error, every write it
	// performed is rolled back and the error is returned unchanged.
	WithTx(ctx context.Context, fn func(Store) error) error
}
