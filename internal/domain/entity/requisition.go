package entity

import "time"

// RequisitionStatus estado de una requisición. Máquina de estados:
// pending -> approved | declined; approved y declined son terminales.
type RequisitionStatus string

const (
	RequisitionPending  RequisitionStatus = "pending"
	RequisitionApproved RequisitionStatus = "approved"
	RequisitionDeclined RequisitionStatus = "declined"
)

// Valid indica si el estado es uno de los enumerados.
func (s RequisitionStatus) Valid() bool {
	switch s {
	case RequisitionPending, RequisitionApproved, RequisitionDeclined:
		return true
	}
	return false
}

// Terminal indica si el estado ya no admite transiciones.
func (s RequisitionStatus) Terminal() bool {
	return s == RequisitionApproved || s == RequisitionDeclined
}

// CanTransitionTo valida la transición s -> next. Solo pending puede
// transicionar, y solo hacia un estado terminal.
func (s RequisitionStatus) CanTransitionTo(next RequisitionStatus) bool {
	return s == RequisitionPending && next.Terminal()
}

// Requisition solicitud interna de retiro de stock sujeta a aprobación.
// Se crea pending sin efecto sobre el stock; el efecto ocurre al aprobar.
// Una vez revisada (approved/declined) es inmutable y nunca se borra.
type Requisition struct {
	ID          string
	RequesterID string
	ItemID      string
	Quantity    int64 // entero positivo
	LocationID  string
	Status      RequisitionStatus
	ReviewerID  *string
	ReviewedAt  *time.Time
	AdminNote   string
	CreatedAt   time.Time
}
