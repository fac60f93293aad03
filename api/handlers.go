/*
handlers.go - HTTP API handlers for the stock engine

PURPOSE:
  Exposes the catalog, ledger, reconciler, and aggregation engine via a
  REST API. Handles HTTP request/response and JSON serialization, and
  delegates every decision to the domain packages.

ENDPOINTS:
  Items:
    GET    /api/items           List catalog (insertion order)
    POST   /api/items           Add an item
    GET    /api/items/{id}      Get one item
    PUT    /api/items/{id}      Partial update
    DELETE /api/items/{id}      Delete + cascade its transactions

  Transactions:
    GET    /api/transactions    Full ledger, most-recent-first
    POST   /api/transactions    Record a purchase or sale

  Reports:
    GET    /api/dashboard       Summary, valuation, alerts, recent activity
    GET    /api/reports         Full report incl. categories, top products

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (bad JSON, non-positive quantity, negative price)
  - 404: Item not found
  - 409: Insufficient stock (the sale is blocked entirely)
  - 500: Storage errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ember/stock-engine/inventory"
	"github.com/ember/stock-engine/report"
)

// recentTransactionCount is how many ledger entries the dashboard shows.
const recentTransactionCount = 5

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog    *inventory.Catalog
	Ledger     *inventory.Ledger
	Reconciler *inventory.Reconciler
}

// NewHandler wires the domain services over one store.
func NewHandler(store inventory.Store) *Handler {
	return &Handler{
		Catalog:    inventory.NewCatalog(store),
		Ledger:     inventory.NewLedger(store),
		Reconciler: inventory.NewReconciler(store),
	}
}

// =============================================================================
// ITEM HANDLERS
// =============================================================================

// ListItems returns the whole catalog.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListItems(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list items", err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

// CreateItem adds a new catalog item.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cost, err := parseAmount(req.CostPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cost_price", err)
		return
	}
	selling, err := parseAmount(req.SellingPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid selling_price", err)
		return
	}

	item, err := h.Catalog.AddItem(r.Context(), inventory.ItemDraft{
		Name:         req.Name,
		Category:     req.Category,
		Stock:        req.Stock,
		CostPrice:    cost,
		SellingPrice: selling,
	})
	if err != nil {
		writeDomainError(w, "Failed to add item", err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemDTO(item))
}

// GetItem returns a single item.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := inventory.ItemID(chi.URLParam(r, "id"))
	item, err := h.Catalog.GetItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get item", err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(item))
}

// UpdateItem applies a partial update to an item.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := inventory.ItemID(chi.URLParam(r, "id"))

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch := inventory.ItemPatch{
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
	}
	if req.CostPrice != nil {
		cost, err := parseAmount(*req.CostPrice)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid cost_price", err)
			return
		}
		patch.CostPrice = &cost
	}
	if req.SellingPrice != nil {
		selling, err := parseAmount(*req.SellingPrice)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid selling_price", err)
			return
		}
		patch.SellingPrice = &selling
	}

	item, err := h.Catalog.UpdateItem(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, "Failed to update item", err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(item))
}

// DeleteItem removes an item and cascades to its transactions.
// Idempotent: deleting an unknown id still returns 204.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := inventory.ItemID(chi.URLParam(r, "id"))
	if err := h.Catalog.DeleteItem(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// ListTransactions returns the ledger, most-recent-first.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Ledger.Transactions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

// RecordTransaction records a purchase or sale through the reconciler.
func (h *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req RecordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	txType, ok := inventory.ParseTxType(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid type: must be purchase or sale", nil)
		return
	}
	price, err := parseAmount(req.PricePerUnit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid price_per_unit", err)
		return
	}

	tx, err := h.Reconciler.Record(r.Context(), inventory.ItemID(req.ItemID), txType, req.Quantity, price)
	if err != nil {
		writeDomainError(w, "Failed to record transaction", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetDashboard returns the at-a-glance metrics.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	items, txs, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	writeJSON(w, http.StatusOK, DashboardDTO{
		TotalProducts:      len(items),
		Summary:            toSummaryDTO(report.Summarize(items, txs)),
		Valuation:          toValuationDTO(report.Valuate(items)),
		Alerts:             toAlertsDTO(report.Alerts(items)),
		RecentTransactions: toTransactionDTOs(report.Recent(txs, recentTransactionCount)),
	})
}

// GetReports returns the full reports payload.
func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	items, txs, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	writeJSON(w, http.StatusOK, ReportDTO{
		Summary:     toSummaryDTO(report.Summarize(items, txs)),
		Valuation:   toValuationDTO(report.Valuate(items)),
		Activity:    toActivityDTO(report.Activity(txs)),
		Categories:  toCategoryDTOs(report.Categories(items)),
		TopProducts: toProductSalesDTOs(report.TopProducts(txs)),
	})
}

// snapshot loads both collections for the aggregation engine.
func (h *Handler) snapshot(r *http.Request) ([]inventory.Item, []inventory.Transaction, error) {
	items, err := h.Catalog.ListItems(r.Context())
	if err != nil {
		return nil, nil, err
	}
	txs, err := h.Ledger.Transactions(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return items, txs, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func parseAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}

// writeDomainError maps engine errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case inventory.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Item not found", err)
	case errors.Is(err, inventory.ErrInsufficientStock):
		writeError(w, http.StatusConflict, "Insufficient stock", err)
	case errors.Is(err, inventory.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
