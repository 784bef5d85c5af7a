package dto

import "github.com/shopspring/decimal"

// TransferRequest body para POST /api/transfers.
type TransferRequest struct {
	ItemID         string          `json:"item_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Note           string          `json:"note,omitempty"`
}

// TransferResponse el par de entradas del ledger creado por el traslado.
type TransferResponse struct {
	ItemID      string          `json:"item_id"`
	OutEntryID  string          `json:"out_entry_id"`
	InEntryID   string          `json:"in_entry_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}
