package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/items/:id/movements.
// Kinds admitidos en ajuste directo: add, remove, adjust (para adjust,
// quantity es el valor absoluto objetivo).
type RegisterMovementRequest struct {
	Kind     string          `json:"kind"`
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note,omitempty"`
}

// MovementResponse resultado de una mutación confirmada: nueva cantidad y
// entrada de ledger creada (para refrescar UI y disparar notificaciones).
type MovementResponse struct {
	ItemID      string          `json:"item_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	EntryID     string          `json:"ledger_entry_id"`
}

// LedgerEntryResponse entrada del ledger en respuestas de historial.
type LedgerEntryResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	Kind           string          `json:"kind"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	LocationID     *string         `json:"location_id,omitempty"`
	UserID         string          `json:"user_id"`
	Note           string          `json:"note,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
