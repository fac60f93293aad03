// Package store provides the in-memory Store implementation.
package store

import (
	"context"
	"sync"

	"github.com/ember/stock-engine/inventory"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds both collections as slices: items in insertion order,
// transactions most-recent-first (head insertion). Sized for a single
// shop's inventory, so linear scans are fine.
type Memory struct {
	mu           sync.RWMutex
	items        []inventory.Item
	transactions []inventory.Transaction
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveItem(_ context.Context, item inventory.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveItemLocked(item)
}

func (m *Memory) GetItem(_ context.Context, id inventory.ItemID) (inventory.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getItemLocked(id)
}

func (m *Memory) ListItems(_ context.Context) ([]inventory.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]inventory.Item, len(m.items))
	copy(result, m.items)
	return result, nil
}

func (m *Memory) DeleteItem(_ context.Context, id inventory.ItemID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteItemLocked(id)
}

func (m *Memory) Append(_ context.Context, tx inventory.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendLocked(tx)
}

func (m *Memory) RemoveByItem(_ context.Context, id inventory.ItemID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeByItemLocked(id)
}

func (m *Memory) Transactions(_ context.Context) ([]inventory.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]inventory.Transaction, len(m.transactions))
	copy(result, m.transactions)
	return result, nil
}

// =============================================================================
// LOCKED PRIMITIVES - Shared by direct calls and the WithTx view
// =============================================================================

func (m *Memory) saveItemLocked(item inventory.Item) error {
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = item
			return nil
		}
	}
	m.items = append(m.items, item)
	return nil
}

func (m *Memory) getItemLocked(id inventory.ItemID) (inventory.Item, error) {
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return inventory.Item{}, inventory.ErrItemNotFound
}

func (m *Memory) deleteItemLocked(id inventory.ItemID) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil // Idempotent: deleting an unknown id is a no-op
}

func (m *Memory) appendLocked(tx inventory.Transaction) error {
	// Head insertion: newest-first is the canonical order
	m.transactions = append([]inventory.Transaction{tx}, m.transactions...)
	return nil
}

func (m *Memory) removeByItemLocked(id inventory.ItemID) error {
	kept := m.transactions[:0]
	for _, tx := range m.transactions {
		if tx.ItemID != id {
			kept = append(kept, tx)
		}
	}
	m.transactions = kept
	return nil
}

// =============================================================================
// TRANSACTION SUPPORT - Snapshot + rollback on error
// =============================================================================

// WithTx executes fn against a view of the store. On error, the pre-call
// snapshot is restored, so no write inside fn survives.
func (m *Memory) WithTx(_ context.Context, fn func(inventory.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.snapshot()

	if err := fn(&memoryView{parent: m}); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	items        []inventory.Item
	transactions []inventory.Transaction
}

func (m *Memory) snapshot() memorySnapshot {
	return memorySnapshot{
		items:        append([]inventory.Item{}, m.items...),
		transactions: append([]inventory.Transaction{}, m.transactions...),
	}
}

func (m *Memory) restore(s memorySnapshot) {
	m.items = s.items
	m.transactions = s.transactions
}

// memoryView routes store calls to the locked primitives while the parent
// mutex is held by WithTx.
type memoryView struct {
	parent *Memory
}

func (v *memoryView) SaveItem(_ context.Context, item inventory.Item) error {
	return v.parent.saveItemLocked(item)
}

func (v *memoryView) GetItem(_ context.Context, id inventory.ItemID) (inventory.Item, error) {
	return v.parent.getItemLocked(id)
}

func (v *memoryView) ListItems(_ context.Context) ([]inventory.Item, error) {
	result := make([]inventory.Item, len(v.parent.items))
	copy(result, v.parent.items)
	return result, nil
}

func (v *memoryView) DeleteItem(_ context.Context, id inventory.ItemID) error {
	return v.parent.deleteItemLocked(id)
}

func (v *memoryView) Append(_ context.Context, tx inventory.Transaction) error {
	return v.parent.appendLocked(tx)
}

func (v *memoryView) RemoveByItem(_ context.Context, id inventory.ItemID) error {
	return v.parent.removeByItemLocked(id)
}

func (v *memoryView) Transactions(_ context.Context) ([]inventory.Transaction, error) {
	result := make([]inventory.Transaction, len(v.parent.transactions))
	copy(result, v.parent.transactions)
	return result, nil
}

func (v *memoryView) WithTx(_ context.Context, fn func(inventory.Store) error) error {
	// Already inside the outer step; nested calls just run in it
	return fn(v)
}
