package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember/stock-engine/inventory"
	"github.com/ember/stock-engine/inventory/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newEngine() (*inventory.Catalog, *inventory.Ledger, *inventory.Reconciler) {
	mem := store.NewMemory()
	rec := inventory.NewReconciler(mem)
	rec.Now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
	return inventory.NewCatalog(mem), inventory.NewLedger(mem), rec
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func widgetDraft() inventory.ItemDraft {
	return inventory.ItemDraft{
		Name:         "Widget",
		Category:     "Tools",
		Stock:        5,
		CostPrice:    d("10"),
		SellingPrice: d("15"),
	}
}

// =============================================================================
// RECORDING
// =============================================================================

func TestRecord_Sale_DecrementsStockAndAppends(t *testing.T) {
	// GIVEN: A widget with 5 in stock
	// WHEN: Selling 3 at 15 each
	// THEN: Stock drops to 2 and the ledger holds one transaction of 45

	catalog, ledger, rec := newEngine()
	ctx := context.Background()

	item, err := catalog.AddItem(ctx, widgetDraft())
	require.NoError(t, err)

	tx, err := rec.Record(ctx, item.ID, inventory.TxSale, 3, d("15"))
	require.NoError(t, err)

	assert.Equal(t, item.ID, tx.ItemID)
	assert.Equal(t, "Widget", tx.ItemName)
	assert.Equal(t, inventory.TxSale, tx.Type)
	assert.True(t, tx.TotalAmount.Equal(d("45")), "total should be 3 x 15 = 45, got %s", tx.TotalAmount)

	got, err := catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	txs, err := ledger.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, tx.ID, txs[0].ID)
}

func TestRecord_Purchase_IncrementsStock(t *testing.T) {
	// GIVEN: A widget with 5 in stock
	// WHEN: Purchasing 7 more at 9.50 each
	// THEN: Stock rises to 12 and the total is exact (66.50)

	catalog, _, rec := newEngine()
	ctx := context.Background()

	item, err := catalog.AddItem(ctx, widgetDraft())
	require.NoError(t, err)

	tx, err := rec.Record(ctx, item.ID, inventory.TxPurchase, 7, d("9.50"))
	require.NoError(t, err)
	assert.True(t, tx.TotalAmount.Equal(d("66.50")), "got %s", tx.TotalAmount)

	got, err := catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)
}

func TestRecord_InsufficientStock_BlocksEntirely(t *testing.T) {
	// GIVEN: A widget with 2 in stock (after the Scenario A sale)
	// WHEN: Trying to sell 10
	// THEN: The call fails with InsufficientStock; stock and ledger length
	//       are exactly as before - no partial fulfillment

	catalog, ledger, rec := newEngine()
	ctx := context.Background()

	item, err := catalog.AddItem(ctx, widgetDraft())
	require.NoError(t, err)
	_, err = rec.Record(ctx, item.ID, inventory.TxSale, 3, d("15"))
	require.NoError(t, err)

	_, err = rec.Record(ctx, item.ID, inventory.TxSale, 10, d("15"))
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 10, stockErr.Requested)
	assert.Equal(t, "Widget", stockErr.ItemName)

	got, err := catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock, "stock must be unchanged")

	txs, err := ledger.Transactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "ledger length must be unchanged")
}

func TestRecord_SaleOfEntireStock_Allowed(t *testing.T) {
	// Boundary: quantity == stock is allowed and leaves stock at exactly 0

	catalog, _, rec := newEngine()
	ctx := context.Background()

	item, err := catalog.AddItem(ctx, widgetDraft())
	require.NoError(t, err)

	_, err = rec.Record(ctx, item.ID, inventory.TxSale, 5, d("15"))
	require.NoError(t, err)

	got, err := catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestRecord_UnknownItem_NothingRecorded(t *testing.T) {
	catalog, ledger, rec := newEngine()
	ctx := context.Background()

	_, err := catalog.AddItem(ctx, widgetDraft())
	require.NoError(t, err)

	_, err = rec.Record(ctx, "no-such-id", inventory.TxSale, 1, d("15"))
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)

	txs, err := ledger.Transactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestRecord_InvalidInput_NoOps(t *testing.T) {
	catalog, ledger, rec := newEngine()
	ctx := context.Background()

	item, err := catalog.AddItem(ctx, widgetDraft())
	require.NoError(t, err)

	cases := []struct {
		name     string
		txType   inventory.TxType
		quantity int
		price    decimal.Decimal
	}{
		{"zero quantity", inventory.TxSale, 0, d("15")},
		{"negative quantity", inventory.TxPurchase, -2, d("15")},
		{"negative price", inventory.TxSale, 1, d("-1")},
		{"unknown type", inventory.TxType("refund"), 1, d("15")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rec.Record(ctx, item.ID, tc.txType, tc.quantity, tc.price)
			assert.ErrorIs(t, err, inventory.ErrInvalidInput)
		})
	}

	// None of the rejected calls touched any state
	got, err := catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	txs, err := ledger.Transactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestRecord_FreeGiveaway_ZeroPriceAllowed(t *testing.T) {
	// Price 0 is valid (quantity must be positive, price only non-negative)

	catalog, _, rec := newEngine()
	ctx := context.Background()

	item, err := catalog.AddItem(ctx, widgetDraft())
	require.NoError(t, err)

	tx, err := rec.Record(ctx, item.ID, inventory.TxSale, 1, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, tx.TotalAmount.IsZero())
}

// =============================================================================
// SNAPSHOT IMMUTABILITY
// =============================================================================

func TestRecord_Snapshots_SurviveLaterEdits(t *testing.T) {
	// GIVEN: A recorded sale
	// WHEN: The item is renamed and its prices are changed afterwards
	// THEN: The stored transaction keeps its original name and total

	catalog, ledger, rec := newEngine()
	ctx := context.Background()

	item, err := catalog.AddItem(ctx, widgetDraft())
	require.NoError(t, err)

	_, err = rec.Record(ctx, item.ID, inventory.TxSale, 2, d("15"))
	require.NoError(t, err)

	newName := "Gadget"
	newPrice := d("99")
	_, err = catalog.UpdateItem(ctx, item.ID, inventory.ItemPatch{
		Name:         &newName,
		SellingPrice: &newPrice,
		CostPrice:    &newPrice,
	})
	require.NoError(t, err)

	txs, err := ledger.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Widget", txs[0].ItemName, "name snapshot must not track renames")
	assert.True(t, txs[0].TotalAmount.Equal(d("30")), "total must never be recomputed, got %s", txs[0].TotalAmount)
}

// =============================================================================
// STOCK NON-NEGATIVITY OVER SEQUENCES
// =============================================================================

func TestRecord_StockStaysNonNegative_OverAnySequence(t *testing.T) {
	// A mixed sequence of purchases and (sometimes oversized) sales:
	// after every call, accepted or rejected, stock is >= 0

	catalog, _, rec := newEngine()
	ctx := context.Background()

	item, err := catalog.AddItem(ctx, inventory.ItemDraft{
		Name: "Bolt", Category: "Parts", Stock: 0,
		CostPrice: d("1"), SellingPrice: d("2"),
	})
	require.NoError(t, err)

	steps := []struct {
		txType   inventory.TxType
		quantity int
	}{
		{inventory.TxSale, 1}, // rejected: nothing in stock
		{inventory.TxPurchase, 4},
		{inventory.TxSale, 3},
		{inventory.TxSale, 3}, // rejected: only 1 left
		{inventory.TxSale, 1},
		{inventory.TxSale, 1}, // rejected: empty again
		{inventory.TxPurchase, 2},
		{inventory.TxSale, 2},
	}

	for i, step := range steps {
		_, _ = rec.Record(ctx, item.ID, step.txType, step.quantity, d("2"))

		got, err := catalog.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Stock, 0, "step %d left stock negative", i)
	}

	got, err := catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}
