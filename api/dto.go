/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY FORMATTING:
  Amounts cross the wire as two-decimal strings (margins as one-decimal),
  matching how the UI displays them. Rounding happens HERE and nowhere
  else; the engine works with exact decimals throughout. Incoming amounts
  arrive as json.Number and are parsed with decimal.NewFromString, so no
  float64 conversion ever touches a price.

SEE ALSO:
  - handlers.go: Uses these types
  - report/: The metrics these DTOs carry
*/
package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ember/stock-engine/inventory"
	"github.com/ember/stock-engine/report"
)

// =============================================================================
// ITEMS
// =============================================================================

// ItemDTO represents a catalog item, enriched with the per-item metrics
// the inventory table displays.
type ItemDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Stock           int    `json:"stock"`
	CostPrice       string `json:"cost_price"`
	SellingPrice    string `json:"selling_price"`
	PotentialProfit string `json:"potential_profit"`
	ProfitMargin    string `json:"profit_margin"` // Cost-based markup, one decimal
	StockStatus     string `json:"stock_status"`
}

func toItemDTO(item inventory.Item) ItemDTO {
	return ItemDTO{
		ID:              string(item.ID),
		Name:            item.Name,
		Category:        item.Category,
		Stock:           item.Stock,
		CostPrice:       money(item.CostPrice),
		SellingPrice:    money(item.SellingPrice),
		PotentialProfit: money(report.ItemPotentialProfit(item)),
		ProfitMargin:    percent(report.ItemMargin(item)),
		StockStatus:     string(report.StatusOf(item)),
	}
}

func toItemDTOs(items []inventory.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = toItemDTO(item)
	}
	return dtos
}

// CreateItemRequest is the request to add an item.
type CreateItemRequest struct {
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Stock        int         `json:"stock"`
	CostPrice    json.Number `json:"cost_price"`
	SellingPrice json.Number `json:"selling_price"`
}

// UpdateItemRequest is a partial item update; absent fields stay unchanged.
type UpdateItemRequest struct {
	Name         *string      `json:"name,omitempty"`
	Category     *string      `json:"category,omitempty"`
	Stock        *int         `json:"stock,omitempty"`
	CostPrice    *json.Number `json:"cost_price,omitempty"`
	SellingPrice *json.Number `json:"selling_price,omitempty"`
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// TransactionDTO represents one ledger entry.
type TransactionDTO struct {
	ID           string `json:"id"`
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name"`
	Type         string `json:"type"`
	Quantity     int    `json:"quantity"`
	PricePerUnit string `json:"price_per_unit"`
	TotalAmount  string `json:"total_amount"`
	Timestamp    string `json:"timestamp"`
}

func toTransactionDTO(tx inventory.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:           string(tx.ID),
		ItemID:       string(tx.ItemID),
		ItemName:     tx.ItemName,
		Type:         string(tx.Type),
		Quantity:     tx.Quantity,
		PricePerUnit: money(tx.PricePerUnit),
		TotalAmount:  money(tx.TotalAmount),
		Timestamp:    tx.Timestamp.Format(time.RFC3339),
	}
}

func toTransactionDTOs(txs []inventory.Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}
	return dtos
}

// RecordTransactionRequest is the request to record a purchase or sale.
type RecordTransactionRequest struct {
	ItemID       string      `json:"item_id"`
	Type         string      `json:"type"`
	Quantity     int         `json:"quantity"`
	PricePerUnit json.Number `json:"price_per_unit"`
}

// =============================================================================
// REPORTS
// =============================================================================

type SummaryDTO struct {
	TotalRevenue       string `json:"total_revenue"`
	TotalCost          string `json:"total_cost"`
	GrossProfit        string `json:"gross_profit"`
	ProfitMargin       string `json:"profit_margin"`
	TotalPurchaseSpend string `json:"total_purchase_spend"`
}

func toSummaryDTO(s report.ProfitSummary) SummaryDTO {
	return SummaryDTO{
		TotalRevenue:       money(s.TotalRevenue),
		TotalCost:          money(s.TotalCost),
		GrossProfit:        money(s.GrossProfit),
		ProfitMargin:       percent(s.ProfitMargin),
		TotalPurchaseSpend: money(s.TotalPurchaseSpend),
	}
}

type ValuationDTO struct {
	TotalInventoryValue string `json:"total_inventory_value"`
	PotentialRevenue    string `json:"potential_revenue"`
	PotentialProfit     string `json:"potential_profit"`
}

func toValuationDTO(v report.Valuation) ValuationDTO {
	return ValuationDTO{
		TotalInventoryValue: money(v.TotalInventoryValue),
		PotentialRevenue:    money(v.PotentialRevenue),
		PotentialProfit:     money(v.PotentialProfit),
	}
}

type ActivityDTO struct {
	Purchases      int    `json:"purchases"`
	Sales          int    `json:"sales"`
	PurchaseAmount string `json:"purchase_amount"`
	SalesAmount    string `json:"sales_amount"`
	NetFlow        string `json:"net_flow"`
}

func toActivityDTO(a report.ActivitySummary) ActivityDTO {
	return ActivityDTO{
		Purchases:      a.Purchases,
		Sales:          a.Sales,
		PurchaseAmount: money(a.PurchaseAmount),
		SalesAmount:    money(a.SalesAmount),
		NetFlow:        money(a.NetFlow),
	}
}

type CategoryDTO struct {
	Category         string `json:"category"`
	Items            int    `json:"items"`
	Stock            int    `json:"stock"`
	Value            string `json:"value"`
	PotentialRevenue string `json:"potential_revenue"`
	PotentialProfit  string `json:"potential_profit"`
}

func toCategoryDTOs(stats []report.CategoryStats) []CategoryDTO {
	dtos := make([]CategoryDTO, len(stats))
	for i, s := range stats {
		dtos[i] = CategoryDTO{
			Category:         s.Category,
			Items:            s.Items,
			Stock:            s.Stock,
			Value:            money(s.Value),
			PotentialRevenue: money(s.PotentialRevenue),
			PotentialProfit:  money(s.PotentialProfit),
		}
	}
	return dtos
}

type ProductSalesDTO struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  string `json:"revenue"`
}

func toProductSalesDTOs(sales []report.ProductSales) []ProductSalesDTO {
	dtos := make([]ProductSalesDTO, len(sales))
	for i, s := range sales {
		dtos[i] = ProductSalesDTO{
			ItemID:   string(s.ItemID),
			Name:     s.Name,
			Quantity: s.Quantity,
			Revenue:  money(s.Revenue),
		}
	}
	return dtos
}

type AlertsDTO struct {
	OutOfStock []ItemDTO `json:"out_of_stock"`
	LowStock   []ItemDTO `json:"low_stock"`
}

func toAlertsDTO(a report.StockAlerts) AlertsDTO {
	return AlertsDTO{
		OutOfStock: toItemDTOs(a.OutOfStock),
		LowStock:   toItemDTOs(a.LowStock),
	}
}

// DashboardDTO is the at-a-glance payload.
type DashboardDTO struct {
	TotalProducts      int              `json:"total_products"`
	Summary            SummaryDTO       `json:"summary"`
	Valuation          ValuationDTO     `json:"valuation"`
	Alerts             AlertsDTO        `json:"alerts"`
	RecentTransactions []TransactionDTO `json:"recent_transactions"`
}

// ReportDTO is the full reports-page payload.
type ReportDTO struct {
	Summary     SummaryDTO        `json:"summary"`
	Valuation   ValuationDTO      `json:"valuation"`
	Activity    ActivityDTO       `json:"activity"`
	Categories  []CategoryDTO     `json:"categories"`
	TopProducts []ProductSalesDTO `json:"top_products"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// FORMAT HELPERS
// =============================================================================

// money renders an amount with two decimals (display policy only).
func money(d decimal.Decimal) string { return d.StringFixed(2) }

// percent renders a margin with one decimal, as the UI shows it.
func percent(d decimal.Decimal) string { return d.StringFixed(1) }
