package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRequisitionRequest body para POST /api/requisitions.
type CreateRequisitionRequest struct {
	ItemID     string `json:"item_id"`
	Quantity   int64  `json:"quantity"`
	LocationID string `json:"location_id"`
}

// ReviewRequisitionRequest body para POST /api/requisitions/:id/review.
// Decision: approved | declined.
type ReviewRequisitionRequest struct {
	Decision string `json:"decision"`
	Note     string `json:"note,omitempty"`
}

// RequisitionResponse representación de una requisición.
type RequisitionResponse struct {
	ID          string     `json:"id"`
	RequesterID string     `json:"requester_id"`
	ItemID      string     `json:"item_id"`
	Quantity    int64      `json:"quantity"`
	LocationID  string     `json:"location_id"`
	Status      string     `json:"status"`
	ReviewerID  *string    `json:"reviewer_id,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	AdminNote   string     `json:"admin_note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	// NewQuantity presente en la respuesta de una aprobación.
	NewQuantity *decimal.Decimal `json:"new_quantity,omitempty"`
}
