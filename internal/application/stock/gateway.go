package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

// Gateway es el único camino autorizado para modificar Item.Quantity.
// Cada mutación ocurre en una transacción que bloquea la fila del artículo
// (SELECT FOR UPDATE), calcula antes/después, verifica el invariante
// quantity >= 0 y agrega exactamente una entrada al ledger. Si cualquier
// paso falla, la transacción completa se revierte: nunca queda cantidad
// sin entrada de ledger ni entrada sin cantidad.
type Gateway struct {
	txRunner TxRunner
	notifier Notifier
}

// NewGateway construye el gateway. notifier puede ser nil (sin despacho).
func NewGateway(txRunner TxRunner, notifier Notifier) *Gateway {
	return &Gateway{txRunner: txRunner, notifier: notifier}
}

// ApplyInput entrada para una mutación de stock.
// Para adjust, Quantity es el valor absoluto objetivo; para el resto, la
// cantidad a mover (siempre > 0).
type ApplyInput struct {
	ItemID     string
	Kind       entity.MovementKind
	Quantity   decimal.Decimal
	ActorID    string
	LocationID *string
	Note       string
}

// ApplyResult resultado de una mutación confirmada.
type ApplyResult struct {
	NewQuantity decimal.Decimal
	EntryID     string
	Entry       *entity.StockTransaction
}

// validate rechaza entradas malformadas antes de abrir transacción alguna.
func (in ApplyInput) validate() error {
	if in.ItemID == "" || in.ActorID == "" || !in.Kind.Valid() {
		return domain.ErrInvalidInput
	}
	switch in.Kind {
	case entity.MovementAdjust:
		if in.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
	case entity.MovementIn, entity.MovementOut:
		if in.LocationID == nil || *in.LocationID == "" {
			return domain.ErrInvalidInput
		}
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// Apply ejecuta la mutación en su propia transacción y, tras el commit,
// despacha la notificación. Devuelve la nueva cantidad y el ID de la
// entrada de ledger creada.
func (g *Gateway) Apply(ctx context.Context, in ApplyInput) (*ApplyResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	var result *ApplyResult
	err := g.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.RequisitionRepository,
	) error {
		res, err := g.ApplyInTx(itemRepo, ledgerRepo, in, now)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.dispatch(ctx, result)
	return result, nil
}

// ApplyInTx ejecuta la mutación con repositorios atados a la transacción del
// caller (aprobación de requisición, traslado). El caller es responsable del
// commit/rollback y de notificar después del commit.
func (g *Gateway) ApplyInTx(
	itemRepo repository.ItemRepository,
	ledgerRepo repository.LedgerRepository,
	in ApplyInput,
	now time.Time,
) (*ApplyResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	// Bloquea la fila del artículo: un segundo apply concurrente sobre el
	// mismo artículo espera aquí hasta que esta transacción termine.
	item, err := itemRepo.GetForUpdate(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	before := item.Quantity
	var after, moved decimal.Decimal
	switch {
	case in.Kind.Increments():
		after = before.Add(in.Quantity)
		moved = in.Quantity
	case in.Kind.Decrements():
		after = before.Sub(in.Quantity)
		moved = in.Quantity
	default: // adjust: la entrada asevera el valor absoluto objetivo
		after = in.Quantity
		moved = after.Sub(before).Abs()
		if moved.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	}
	if after.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}

	if err := itemRepo.UpdateQuantity(in.ItemID, after, in.ActorID); err != nil {
		return nil, err
	}
	entry := &entity.StockTransaction{
		ID:             uuid.New().String(),
		ItemID:         in.ItemID,
		Kind:           in.Kind,
		Quantity:       moved,
		QuantityBefore: before,
		QuantityAfter:  after,
		LocationID:     in.LocationID,
		UserID:         in.ActorID,
		Note:           in.Note,
		CreatedAt:      now,
	}
	if err := ledgerRepo.Append(entry); err != nil {
		return nil, err
	}
	return &ApplyResult{NewQuantity: after, EntryID: entry.ID, Entry: entry}, nil
}

// dispatch notifica el resultado de una mutación confirmada (best effort).
func (g *Gateway) dispatch(ctx context.Context, res *ApplyResult) {
	if g.notifier == nil || res == nil || res.Entry == nil {
		return
	}
	g.notifier.Notify(ctx, NewEvent(res.Entry, res.NewQuantity))
}

// Dispatch expone el despacho post-commit para los workflows que usan
// ApplyInTx dentro de su propia transacción.
func (g *Gateway) Dispatch(ctx context.Context, res *ApplyResult) {
	g.dispatch(ctx, res)
}
