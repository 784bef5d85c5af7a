package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// o se confirman cantidad y ledger juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		ledgerRepo repository.LedgerRepository,
		reqRepo repository.RequisitionRepository,
	) error) error
}

// Event evento de stock emitido tras un commit exitoso del gateway.
type Event struct {
	EntryID     string          `json:"entry_id"`
	ItemID      string          `json:"item_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	LocationID  *string         `json:"location_id,omitempty"`
	ActorID     string          `json:"actor_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// Notifier despacha eventos de stock a colaboradores (fire-and-forget).
// Un fallo de notificación jamás revierte la mutación: se invoca después
// del commit y los errores solo se registran.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// NewEvent construye el evento a partir de una entrada de ledger ya confirmada.
func NewEvent(tx *entity.StockTransaction, newQuantity decimal.Decimal) Event {
	return Event{
		EntryID:     tx.ID,
		ItemID:      tx.ItemID,
		Kind:        string(tx.Kind),
		Quantity:    tx.Quantity,
		NewQuantity: newQuantity,
		LocationID:  tx.LocationID,
		ActorID:     tx.UserID,
		OccurredAt:  tx.CreatedAt,
	}
}
