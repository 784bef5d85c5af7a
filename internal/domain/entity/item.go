package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo de inventario de la mesa de soporte TI.
// Quantity es saldo global del artículo y solo se modifica vía el gateway de
// mutación (stock.Gateway); las operaciones CRUD nunca la escriben directo.
type Item struct {
	ID           string
	Name         string
	SKU          string // código único
	CategoryID   string
	UnitID       string
	Quantity     decimal.Decimal // invariante: >= 0
	ReorderLevel decimal.Decimal
	IsActive     bool
	UnitPrice    *decimal.Decimal
	StorageTag   string // etiqueta libre de ubicación física (estante, caja)
	CreatedBy    string
	UpdatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
