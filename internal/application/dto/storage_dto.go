package dto

import "github.com/shopspring/decimal"

// CreateItemRequest body para POST /api/storage/items.
// InitialQuantity > 0 genera el asiento IN "Initial Inventory" en el alta.
type CreateItemRequest struct {
	Category        string          `json:"category"`
	Label           string          `json:"label"`
	InitialQuantity decimal.Decimal `json:"initial_quantity,omitempty"`
}

// ItemResponse item con su stock derivado del libro.
type ItemResponse struct {
	ID           string          `json:"id"`
	Category     string          `json:"category"`
	Label        string          `json:"label"`
	DisplayOrder int             `json:"display_order"`
	CurrentStock decimal.Decimal `json:"current_stock"`
}

// RecordTransactionRequest body para POST /api/storage/transactions.
// Date (YYYY-MM-DD) es la fecha de negocio; vacía = hoy.
type RecordTransactionRequest struct {
	ItemID      string          `json:"item_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date,omitempty"`
}

// TransactionResponse asiento del libro.
type TransactionResponse struct {
	ID              string          `json:"id"`
	ItemID          string          `json:"item_id"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Description     string          `json:"description,omitempty"`
	TransactionDate string          `json:"transaction_date"`
	CreatedAt       string          `json:"created_at"`
}

// SetQuantityRequest body para PUT /api/storage/items/{id}/quantity.
type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ReorderItemsRequest body para PUT /api/storage/items/reorder: ids en el orden deseado.
type ReorderItemsRequest struct {
	ItemIDs []string `json:"item_ids"`
}

// StockResponse balance actual de un item.
type StockResponse struct {
	ItemID       string          `json:"item_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
}

// StockLevelResponse entrada de la caché de reconciliación.
type StockLevelResponse struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt string          `json:"updated_at"`
}

// ReconcileResponse resumen de una pasada de reconciliación.
type ReconcileResponse struct {
	Items  int `json:"items"`
	Drifts int `json:"drifts"`
}
