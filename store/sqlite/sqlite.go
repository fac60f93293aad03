/*
Package sqlite provides a SQLite-backed implementation of inventory.Store.

PURPOSE:
  Durable persistence for the catalog and the ledger. The engine itself is
  storage-agnostic; this package is the collaborator that survives process
  restarts (the in-memory store in inventory/store is the dev/test twin).

ROUND-TRIP FIDELITY:
  Loading an item or transaction must reproduce every field exactly:
  - Prices and amounts are stored as TEXT via decimal.String, so no
    float conversion ever touches a money value
  - Timestamps are stored as RFC3339Nano TEXT and come back as proper
    time.Time values, not strings

ORDERING:
  Both tables carry a monotonic seq column (AUTOINCREMENT). Items list in
  insertion order (seq ASC); updates keep their seq, so editing an item
  does not move it. Transactions list most-recent-first (seq DESC), which
  matches the head-insertion order of the in-memory store.

LEDGER CONTRACT:
  No UPDATE statement exists for the transactions table. The only DELETE
  is the item-deletion cascade (RemoveByItem).

TRANSACTIONS:
  WithTx runs a function against a view of the store backed by a SQL
  transaction. All writes inside commit together or roll back together.

WAL MODE:
  Opened with WAL and foreign keys on, same as any small single-writer
  deployment of this kind.

USAGE:
  store, err := sqlite.New("./shop.db")
  if err != nil { log.Fatal(err) }
  defer store.Close()

SEE ALSO:
  - inventory/store.go: Interface definition
  - inventory/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/ember/stock-engine/inventory"
)

// Store implements inventory.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex // Serializes WithTx blocks (SQLite is single-writer)
	q  queryer
}

// queryer abstracts *sql.DB and *sql.Tx so every method works both
// directly and inside WithTx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, q: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Catalog items; seq preserves insertion order across updates
	CREATE TABLE IF NOT EXISTS items (
		seq           INTEGER PRIMARY KEY AUTOINCREMENT,
		id            TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		category      TEXT NOT NULL,
		stock         INTEGER NOT NULL,
		cost_price    TEXT NOT NULL,
		selling_price TEXT NOT NULL
	);

	-- Ledger (append-only; the only DELETE is the item cascade)
	CREATE TABLE IF NOT EXISTS transactions (
		seq            INTEGER PRIMARY KEY AUTOINCREMENT,
		id             TEXT NOT NULL UNIQUE,
		item_id        TEXT NOT NULL,
		item_name      TEXT NOT NULL,
		tx_type        TEXT NOT NULL,
		quantity       INTEGER NOT NULL,
		price_per_unit TEXT NOT NULL,
		total_amount   TEXT NOT NULL,
		timestamp      TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_item
		ON transactions(item_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_type
		ON transactions(tx_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CATALOG
// =============================================================================

func (s *Store) SaveItem(ctx context.Context, item inventory.Item) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO items (id, name, category, stock, cost_price, selling_price)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			stock = excluded.stock,
			cost_price = excluded.cost_price,
			selling_price = excluded.selling_price`,
		string(item.ID), item.Name, item.Category, item.Stock,
		item.CostPrice.String(), item.SellingPrice.String())
	if err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

func (s *Store) GetItem(ctx context.Context, id inventory.ItemID) (inventory.Item, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, category, stock, cost_price, selling_price
		FROM items WHERE id = ?`, string(id))
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return inventory.Item{}, inventory.ErrItemNotFound
	}
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]inventory.Item, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, name, category, stock, cost_price, selling_price
		FROM items ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) DeleteItem(ctx context.Context, id inventory.ItemID) error {
	// No-op when absent: idempotent by construction
	_, err := s.q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// =============================================================================
// LEDGER
// =============================================================================

func (s *Store) Append(ctx context.Context, tx inventory.Transaction) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO transactions
			(id, item_id, item_name, tx_type, quantity, price_per_unit, total_amount, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(tx.ID), string(tx.ItemID), tx.ItemName, string(tx.Type),
		tx.Quantity, tx.PricePerUnit.String(), tx.TotalAmount.String(),
		tx.Timestamp.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

func (s *Store) RemoveByItem(ctx context.Context, id inventory.ItemID) error {
	_, err := s.q.ExecContext(ctx,
		`DELETE FROM transactions WHERE item_id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to remove transactions: %w", err)
	}
	return nil
}

func (s *Store) Transactions(ctx context.Context) ([]inventory.Transaction, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, item_id, item_name, tx_type, quantity, price_per_unit, total_amount, timestamp
		FROM transactions ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []inventory.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// =============================================================================
// TRANSACTION SUPPORT
// =============================================================================

// WithTx executes fn against a transaction-backed view of the store.
func (s *Store) WithTx(ctx context.Context, fn func(inventory.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	view := &Store{db: s.db, q: sqlTx}
	if err := fn(view); err != nil {
		sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (inventory.Item, error) {
	var (
		item              inventory.Item
		id, cost, selling string
	)
	if err := row.Scan(&id, &item.Name, &item.Category, &item.Stock, &cost, &selling); err != nil {
		return inventory.Item{}, err
	}
	item.ID = inventory.ItemID(id)

	var err error
	if item.CostPrice, err = decimal.NewFromString(cost); err != nil {
		return inventory.Item{}, fmt.Errorf("bad cost_price %q: %w", cost, err)
	}
	if item.SellingPrice, err = decimal.NewFromString(selling); err != nil {
		return inventory.Item{}, fmt.Errorf("bad selling_price %q: %w", selling, err)
	}
	return item, nil
}

func scanTransaction(row scanner) (inventory.Transaction, error) {
	var (
		tx                                   inventory.Transaction
		id, itemID, txType, price, total, ts string
	)
	if err := row.Scan(&id, &itemID, &tx.ItemName, &txType, &tx.Quantity, &price, &total, &ts); err != nil {
		return inventory.Transaction{}, err
	}
	tx.ID = inventory.TransactionID(id)
	tx.ItemID = inventory.ItemID(itemID)

	kind, ok := inventory.ParseTxType(txType)
	if !ok {
		return inventory.Transaction{}, fmt.Errorf("bad tx_type %q", txType)
	}
	tx.Type = kind

	var err error
	if tx.PricePerUnit, err = decimal.NewFromString(price); err != nil {
		return inventory.Transaction{}, fmt.Errorf("bad price_per_unit %q: %w", price, err)
	}
	if tx.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return inventory.Transaction{}, fmt.Errorf("bad total_amount %q: %w", total, err)
	}
	if tx.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return inventory.Transaction{}, fmt.Errorf("bad timestamp %q: %w", ts, err)
	}
	return tx, nil
}
