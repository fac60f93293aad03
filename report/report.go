/*
Package report computes dashboard and report metrics.

PURPOSE:
  Pure, stateless functions over a snapshot of (items, transactions).
  Nothing here mutates state or touches storage: callers pass the results
  of Catalog.ListItems and Ledger.Transactions and get metrics back.
  Every function is deterministic, tolerates empty input (zeroed metrics,
  never an error), and is order-independent except where a stable
  tie-break is documented.

TWO MARGINS, TWO DENOMINATORS (intentional, do not unify):
  - ProfitSummary.ProfitMargin divides by revenue: the overall P&L view.
  - ItemMargin divides by cost: the per-item markup view.
  Different audiences, different formulas. Both are kept exactly as the
  business uses them.

ONE KNOWN QUIRK (preserved on purpose):
  Cost of goods sold uses the item's CURRENT cost price, not the cost at
  sale time, while revenue uses the historically snapshotted per-unit
  price. If the item has since been deleted, its sales contribute zero
  cost, because the weak reference no longer resolves.

KEY FUNCTIONS:
  Summarize      Revenue / cost / profit / margin / purchase spend
  Valuate        Inventory valuation and potential revenue/profit
  Activity       Purchase/sale counts, amounts, net flow
  Categories     Per-category rollup (rollup.go)
  TopProducts    Top sellers by revenue (rollup.go)
  Alerts         Out-of-stock / low-stock classification (rollup.go)

SEE ALSO:
  - rollup.go: Grouping-based metrics
*/
package report

import (
	"github.com/shopspring/decimal"

	"github.com/ember/stock-engine/inventory"
)

var oneHundred = decimal.NewFromInt(100)

// =============================================================================
// PROFIT SUMMARY - Revenue, cost of goods, profit, margin
// =============================================================================

type ProfitSummary struct {
	TotalRevenue       decimal.Decimal // Sum of sale totals
	TotalCost          decimal.Decimal // Sale quantities x current cost price
	GrossProfit        decimal.Decimal // Revenue - cost
	ProfitMargin       decimal.Decimal // Percent of revenue; 0 when revenue is 0
	TotalPurchaseSpend decimal.Decimal // Sum of purchase totals
}

// Summarize rolls the ledger into the P&L view.
func Summarize(items []inventory.Item, txs []inventory.Transaction) ProfitSummary {
	byID := itemIndex(items)

	var s ProfitSummary
	for _, tx := range txs {
		switch tx.Type {
		case inventory.TxSale:
			s.TotalRevenue = s.TotalRevenue.Add(tx.TotalAmount)
			// Current cost, not historical; deleted items contribute zero
			if item, ok := byID[tx.ItemID]; ok {
				qty := decimal.NewFromInt(int64(tx.Quantity))
				s.TotalCost = s.TotalCost.Add(qty.Mul(item.CostPrice))
			}
		case inventory.TxPurchase:
			s.TotalPurchaseSpend = s.TotalPurchaseSpend.Add(tx.TotalAmount)
		}
	}

	s.GrossProfit = s.TotalRevenue.Sub(s.TotalCost)
	if s.TotalRevenue.IsPositive() {
		s.ProfitMargin = s.GrossProfit.Div(s.TotalRevenue).Mul(oneHundred)
	}
	return s
}

// =============================================================================
// INVENTORY VALUATION - What the stock on hand is worth
// =============================================================================

type Valuation struct {
	TotalInventoryValue decimal.Decimal // Stock x cost price, summed
	PotentialRevenue    decimal.Decimal // Stock x selling price, summed
	PotentialProfit     decimal.Decimal // Potential revenue - value
}

// Valuate prices the current stock at cost and at selling price.
func Valuate(items []inventory.Item) Valuation {
	var v Valuation
	for _, item := range items {
		stock := decimal.NewFromInt(int64(item.Stock))
		v.TotalInventoryValue = v.TotalInventoryValue.Add(stock.Mul(item.CostPrice))
		v.PotentialRevenue = v.PotentialRevenue.Add(stock.Mul(item.SellingPrice))
	}
	v.PotentialProfit = v.PotentialRevenue.Sub(v.TotalInventoryValue)
	return v
}

// =============================================================================
// ACTIVITY SUMMARY - Transaction counts and money flow
// =============================================================================

type ActivitySummary struct {
	Purchases      int
	Sales          int
	PurchaseAmount decimal.Decimal
	SalesAmount    decimal.Decimal
	NetFlow        decimal.Decimal // Sales amount - purchase amount
}

// Activity counts transactions by kind and nets the money flow.
func Activity(txs []inventory.Transaction) ActivitySummary {
	var a ActivitySummary
	for _, tx := range txs {
		switch tx.Type {
		case inventory.TxPurchase:
			a.Purchases++
			a.PurchaseAmount = a.PurchaseAmount.Add(tx.TotalAmount)
		case inventory.TxSale:
			a.Sales++
			a.SalesAmount = a.SalesAmount.Add(tx.TotalAmount)
		}
	}
	a.NetFlow = a.SalesAmount.Sub(a.PurchaseAmount)
	return a
}

// Recent returns the first n entries of the most-recent-first ledger.
func Recent(txs []inventory.Transaction, n int) []inventory.Transaction {
	if n > len(txs) {
		n = len(txs)
	}
	return txs[:n]
}

func itemIndex(items []inventory.Item) map[inventory.ItemID]inventory.Item {
	byID := make(map[inventory.ItemID]inventory.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID
}
