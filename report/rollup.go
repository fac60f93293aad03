/*
rollup.go - Grouping-based metrics: categories, top products, stock alerts

PURPOSE:
  The metrics here group a snapshot before summing: items by category,
  sales by product, items by stock level. Group order is deterministic -
  first encounter in the input - so repeated calls over the same snapshot
  render identically.

SEE ALSO:
  - report.go: Scalar rollups (revenue, valuation, activity)
*/
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ember/stock-engine/inventory"
)

// =============================================================================
// STOCK ALERTS - Out-of-stock / low-stock classification
// =============================================================================

// LowStockThreshold is the fixed policy constant below which an item with
// stock on hand counts as low.
const LowStockThreshold = 10

type StockStatus string

const (
	StatusOutOfStock  StockStatus = "out_of_stock" // stock == 0
	StatusLowStock    StockStatus = "low_stock"    // 0 < stock < threshold
	StatusWellStocked StockStatus = "well_stocked"
)

// StatusOf classifies one item's stock level.
func StatusOf(item inventory.Item) StockStatus {
	switch {
	case item.Stock == 0:
		return StatusOutOfStock
	case item.Stock < LowStockThreshold:
		return StatusLowStock
	default:
		return StatusWellStocked
	}
}

// StockAlerts lists items needing attention. When both lists are rendered
// together, out-of-stock items come first.
type StockAlerts struct {
	OutOfStock []inventory.Item
	LowStock   []inventory.Item
}

func Alerts(items []inventory.Item) StockAlerts {
	var a StockAlerts
	for _, item := range items {
		switch StatusOf(item) {
		case StatusOutOfStock:
			a.OutOfStock = append(a.OutOfStock, item)
		case StatusLowStock:
			a.LowStock = append(a.LowStock, item)
		}
	}
	return a
}

// =============================================================================
// CATEGORY ROLLUP - Items grouped by their free-form category label
// =============================================================================

type CategoryStats struct {
	Category         string
	Items            int
	Stock            int
	Value            decimal.Decimal // Stock x cost price
	PotentialRevenue decimal.Decimal // Stock x selling price
	PotentialProfit  decimal.Decimal // Potential revenue - value
}

// Categories groups items by category (exact match, case-sensitive) in
// first-encountered order. Categories with zero items never appear.
func Categories(items []inventory.Item) []CategoryStats {
	index := make(map[string]int)
	var stats []CategoryStats

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(stats)
			index[item.Category] = i
			stats = append(stats, CategoryStats{Category: item.Category})
		}
		stock := decimal.NewFromInt(int64(item.Stock))
		stats[i].Items++
		stats[i].Stock += item.Stock
		stats[i].Value = stats[i].Value.Add(stock.Mul(item.CostPrice))
		stats[i].PotentialRevenue = stats[i].PotentialRevenue.Add(stock.Mul(item.SellingPrice))
	}

	for i := range stats {
		stats[i].PotentialProfit = stats[i].PotentialRevenue.Sub(stats[i].Value)
	}
	return stats
}

// =============================================================================
// TOP PRODUCTS - Best sellers by summed revenue
// =============================================================================

// TopProductsLimit caps the ranking length.
const TopProductsLimit = 5

type ProductSales struct {
	ItemID   inventory.ItemID
	Name     string // Denormalized snapshot; ranks even after item deletion
	Quantity int
	Revenue  decimal.Decimal
}

// TopProducts groups sale transactions by item, sums quantity and revenue,
// and returns the top entries by revenue. Ties keep first-encountered
// order (stable sort).
func TopProducts(txs []inventory.Transaction) []ProductSales {
	index := make(map[inventory.ItemID]int)
	var sales []ProductSales

	for _, tx := range txs {
		if tx.Type != inventory.TxSale {
			continue
		}
		i, ok := index[tx.ItemID]
		if !ok {
			i = len(sales)
			index[tx.ItemID] = i
			sales = append(sales, ProductSales{ItemID: tx.ItemID, Name: tx.ItemName})
		}
		sales[i].Quantity += tx.Quantity
		sales[i].Revenue = sales[i].Revenue.Add(tx.TotalAmount)
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Revenue.GreaterThan(sales[j].Revenue)
	})

	if len(sales) > TopProductsLimit {
		sales = sales[:TopProductsLimit]
	}
	return sales
}

// =============================================================================
// PER-ITEM METRICS
// =============================================================================

// ItemPotentialProfit is stock x (selling price - cost price).
func ItemPotentialProfit(item inventory.Item) decimal.Decimal {
	stock := decimal.NewFromInt(int64(item.Stock))
	return stock.Mul(item.SellingPrice.Sub(item.CostPrice))
}

// ItemMargin is (selling price - cost price) / cost price x 100, or 0 when
// the cost price is 0. Cost-based on purpose: this is the markup view, not
// the revenue-based P&L margin in Summarize.
func ItemMargin(item inventory.Item) decimal.Decimal {
	if !item.CostPrice.IsPositive() {
		return decimal.Zero
	}
	return item.SellingPrice.Sub(item.CostPrice).Div(item.CostPrice).Mul(oneHundred)
}
