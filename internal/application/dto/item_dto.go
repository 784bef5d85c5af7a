package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
// InitialQuantity > 0 genera la primera entrada del ledger ("initial stock")
// en la misma transacción que crea el artículo.
type CreateItemRequest struct {
	Name            string           `json:"name"`
	SKU             string           `json:"sku"`
	CategoryID      string           `json:"category_id"`
	UnitID          string           `json:"unit_id"`
	ReorderLevel    decimal.Decimal  `json:"reorder_level"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	StorageTag      string           `json:"storage_tag,omitempty"`
	InitialQuantity decimal.Decimal  `json:"initial_quantity"`
}

// UpdateItemRequest body para PUT /api/items/:id. Solo metadatos: la
// cantidad no es actualizable por esta vía.
type UpdateItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	SKU          *string          `json:"sku,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	UnitID       *string          `json:"unit_id,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorder_level,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	StorageTag   *string          `json:"storage_tag,omitempty"`
}

// ItemResponse representación de un artículo en respuestas.
type ItemResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	SKU          string           `json:"sku"`
	CategoryID   string           `json:"category_id"`
	UnitID       string           `json:"unit_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	ReorderLevel decimal.Decimal  `json:"reorder_level"`
	IsActive     bool             `json:"is_active"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	StorageTag   string           `json:"storage_tag,omitempty"`
	LowStock     bool             `json:"low_stock"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
