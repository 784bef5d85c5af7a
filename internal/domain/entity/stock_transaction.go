package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento del ledger de stock.
type MovementKind string

// Tipos de movimiento. add/in suman, remove/out restan, adjust fija un valor
// absoluto. El alta inicial de un artículo se registra como add con nota
// "initial stock".
const (
	MovementAdd    MovementKind = "add"
	MovementRemove MovementKind = "remove"
	MovementAdjust MovementKind = "adjust"
	MovementIn     MovementKind = "in"  // entrada con ubicación (traslados)
	MovementOut    MovementKind = "out" // salida con ubicación (traslados)
)

// Valid indica si el kind es uno de los enumerados.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementAdd, MovementRemove, MovementAdjust, MovementIn, MovementOut:
		return true
	}
	return false
}

// Increments indica si el movimiento suma al saldo.
func (k MovementKind) Increments() bool {
	return k == MovementAdd || k == MovementIn
}

// Decrements indica si el movimiento resta del saldo.
func (k MovementKind) Decrements() bool {
	return k == MovementRemove || k == MovementOut
}

// StockTransaction es una entrada inmutable del ledger: un movimiento de
// cantidad con foto antes/después. Solo se inserta, nunca se edita ni se
// borra; una corrección es una entrada nueva.
type StockTransaction struct {
	ID             string
	ItemID         string
	Kind           MovementKind
	Quantity       decimal.Decimal // cantidad movida, siempre > 0
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	LocationID     *string // presente en in/out de traslados
	UserID         string  // actor que originó el movimiento
	Note           string
	CreatedAt      time.Time
}

// SignedDelta devuelve el delta con signo del movimiento
// (QuantityAfter - QuantityBefore).
func (t *StockTransaction) SignedDelta() decimal.Decimal {
	return t.QuantityAfter.Sub(t.QuantityBefore)
}
