/*
catalog.go - Catalog operations over the store

PURPOSE:
  The Catalog owns the set of items. It validates input at the boundary,
  generates fresh ids, and performs the cascade when an item is deleted:
  every transaction referencing the item goes with it, atomically, so no
  dangling reference survives.

VALIDATION POLICY:
  - AddItem rejects empty names, negative stock, negative prices
  - UpdateItem applies a partial merge and does NOT re-validate cross-field
    consistency: selling below cost is permitted (negative margin is a
    business situation, not an error)
  - DeleteItem is idempotent: deleting an unknown id is a silent no-op

SEE ALSO:
  - store.go: Persistence interface
  - reconciler.go: The only other mutator of item stock
*/
package inventory

import "context"

// Catalog exposes item CRUD over a Store.
type Catalog struct {
	Store Store
}

func NewCatalog(store Store) *Catalog {
	return &Catalog{Store: store}
}

// AddItem validates the draft, assigns a fresh id, and inserts the item.
func (c *Catalog) AddItem(ctx context.Context, draft ItemDraft) (Item, error) {
	if draft.Name == "" {
		return Item{}, &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if draft.Stock < 0 {
		return Item{}, &ValidationError{Field: "stock", Message: "must not be negative"}
	}
	if draft.CostPrice.IsNegative() {
		return Item{}, &ValidationError{Field: "costPrice", Message: "must not be negative"}
	}
	if draft.SellingPrice.IsNegative() {
		return Item{}, &ValidationError{Field: "sellingPrice", Message: "must not be negative"}
	}

	item := Item{
		ID:           NewItemID(),
		Name:         draft.Name,
		Category:     draft.Category,
		Stock:        draft.Stock,
		CostPrice:    draft.CostPrice,
		SellingPrice: draft.SellingPrice,
	}
	if err := c.Store.SaveItem(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// UpdateItem merges the patch into the existing item.
// Returns ErrItemNotFound when the id is absent.
func (c *Catalog) UpdateItem(ctx context.Context, id ItemID, patch ItemPatch) (Item, error) {
	item, err := c.Store.GetItem(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return Item{}, &ValidationError{Field: "stock", Message: "must not be negative"}
	}
	updated := patch.Apply(item)
	if err := c.Store.SaveItem(ctx, updated); err != nil {
		return Item{}, err
	}
	return updated, nil
}

// DeleteItem removes the item and cascades to its transactions as one
// atomic step. Deleting an unknown id is a no-op.
func (c *Catalog) DeleteItem(ctx context.Context, id ItemID) error {
	return c.Store.WithTx(ctx, func(s Store) error {
		if err := s.DeleteItem(ctx, id); err != nil {
			return err
		}
		return s.RemoveByItem(ctx, id)
	})
}

// GetItem returns the item, or ErrItemNotFound.
func (c *Catalog) GetItem(ctx context.Context, id ItemID) (Item, error) {
	return c.Store.GetItem(ctx, id)
}

// ListItems returns all items in insertion order.
func (c *Catalog) ListItems(ctx context.Context) ([]Item, error) {
	return c.Store.ListItems(ctx)
}
