/*
memory_test.go - Contract tests for the in-memory store

These document the storage contract the engine relies on:
ordering, cascade removal, and all-or-nothing WithTx.
*/
package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ember/stock-engine/inventory"
	"github.com/ember/stock-engine/inventory/store"
)

func item(id, name string, stock int) inventory.Item {
	return inventory.Item{
		ID:           inventory.ItemID(id),
		Name:         name,
		Category:     "Misc",
		Stock:        stock,
		CostPrice:    decimal.NewFromInt(1),
		SellingPrice: decimal.NewFromInt(2),
	}
}

func tx(id, itemID string, at time.Time) inventory.Transaction {
	return inventory.Transaction{
		ID:           inventory.TransactionID(id),
		ItemID:       inventory.ItemID(itemID),
		ItemName:     "thing",
		Type:         inventory.TxSale,
		Quantity:     1,
		PricePerUnit: decimal.NewFromInt(2),
		TotalAmount:  decimal.NewFromInt(2),
		Timestamp:    at,
	}
}

func TestMemory_Items_InsertionOrderSurvivesUpdates(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := m.SaveItem(ctx, item(id, id, 0)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	// Updating "a" must not move it to the end
	if err := m.SaveItem(ctx, item("a", "a-renamed", 7)); err != nil {
		t.Fatalf("update: %v", err)
	}

	items, err := m.ListItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if string(items[i].ID) != id {
			t.Fatalf("position %d: got %s, want %s", i, items[i].ID, id)
		}
	}
	if items[0].Name != "a-renamed" || items[0].Stock != 7 {
		t.Fatalf("update not applied: %+v", items[0])
	}
}

func TestMemory_GetItem_NotFound(t *testing.T) {
	m := store.NewMemory()

	_, err := m.GetItem(context.Background(), "nope")
	if !errors.Is(err, inventory.ErrItemNotFound) {
		t.Fatalf("got %v, want ErrItemNotFound", err)
	}
}

func TestMemory_Transactions_NewestFirst(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"t1", "t2", "t3"} {
		if err := m.Append(ctx, tx(id, "a", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	txs, err := m.Transactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"t3", "t2", "t1"}
	for i, id := range want {
		if string(txs[i].ID) != id {
			t.Fatalf("position %d: got %s, want %s", i, txs[i].ID, id)
		}
	}
}

func TestMemory_RemoveByItem_OnlyThatItem(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	now := time.Now()

	m.Append(ctx, tx("t1", "a", now))
	m.Append(ctx, tx("t2", "b", now))
	m.Append(ctx, tx("t3", "a", now))

	if err := m.RemoveByItem(ctx, "a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Idempotent
	if err := m.RemoveByItem(ctx, "a"); err != nil {
		t.Fatalf("second remove: %v", err)
	}

	txs, _ := m.Transactions(ctx)
	if len(txs) != 1 || string(txs[0].ID) != "t2" {
		t.Fatalf("cascade wrong, got %+v", txs)
	}
}

func TestMemory_WithTx_RollsBackEverythingOnError(t *testing.T) {
	// A failing step must leave no trace of any write inside it

	m := store.NewMemory()
	ctx := context.Background()

	if err := m.SaveItem(ctx, item("a", "a", 5)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	boom := errors.New("boom")
	err := m.WithTx(ctx, func(s inventory.Store) error {
		if err := s.Append(ctx, tx("t1", "a", time.Now())); err != nil {
			return err
		}
		if err := s.SaveItem(ctx, item("a", "a", 4)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want the fn error unchanged", err)
	}

	txs, _ := m.Transactions(ctx)
	if len(txs) != 0 {
		t.Fatalf("appended transaction survived rollback: %+v", txs)
	}
	got, err := m.GetItem(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Stock != 5 {
		t.Fatalf("stock write survived rollback: %d", got.Stock)
	}
}

func TestMemory_WithTx_CommitsOnNil(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	err := m.WithTx(ctx, func(s inventory.Store) error {
		if err := s.SaveItem(ctx, item("a", "a", 1)); err != nil {
			return err
		}
		return s.Append(ctx, tx("t1", "a", time.Now()))
	})
	if err != nil {
		t.Fatalf("withtx: %v", err)
	}

	items, _ := m.ListItems(ctx)
	txs, _ := m.Transactions(ctx)
	if len(items) != 1 || len(txs) != 1 {
		t.Fatalf("writes lost: %d items, %d txs", len(items), len(txs))
	}
}
