package transfer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

// UseCase traslado de stock entre sedes: una salida (out) en origen y una
// entrada (in) en destino, en una sola transacción. No existe estado en el
// que persista solo una de las dos entradas.
type UseCase struct {
	txRunner     stock.TxRunner
	gateway      *stock.Gateway
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner stock.TxRunner,
	gateway *stock.Gateway,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, gateway: gateway, itemRepo: itemRepo, locationRepo: locationRepo}
}

// Input datos de un traslado.
type Input struct {
	ItemID         string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	Note           string
}

// Result resultado de un traslado confirmado: el par de entradas del ledger.
type Result struct {
	OutEntryID  string
	InEntryID   string
	NewQuantity decimal.Decimal
	outRes      *stock.ApplyResult
	inRes       *stock.ApplyResult
}

// Transfer ejecuta el traslado. Precondiciones: sedes distintas, cantidad
// positiva, artículo y sedes existentes. Si la segunda pata falla por lo que
// sea, la transacción revierte ambas.
func (uc *UseCase) Transfer(ctx context.Context, actorID string, in Input) (*Result, error) {
	if actorID == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromLocationID == "" || in.ToLocationID == "" ||
		in.FromLocationID == in.ToLocationID ||
		!in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidTransfer
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	for _, locID := range []string{in.FromLocationID, in.ToLocationID} {
		loc, err := uc.locationRepo.GetByID(locID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	result := &Result{}
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.RequisitionRepository,
	) error {
		from, to := in.FromLocationID, in.ToLocationID
		outRes, err := uc.gateway.ApplyInTx(itemRepo, ledgerRepo, stock.ApplyInput{
			ItemID:     in.ItemID,
			Kind:       entity.MovementOut,
			Quantity:   in.Quantity,
			ActorID:    actorID,
			LocationID: &from,
			Note:       in.Note,
		}, now)
		if err != nil {
			return err
		}
		inRes, err := uc.gateway.ApplyInTx(itemRepo, ledgerRepo, stock.ApplyInput{
			ItemID:     in.ItemID,
			Kind:       entity.MovementIn,
			Quantity:   in.Quantity,
			ActorID:    actorID,
			LocationID: &to,
			Note:       in.Note,
		}, now)
		if err != nil {
			return err
		}
		result.OutEntryID = outRes.EntryID
		result.InEntryID = inRes.EntryID
		result.NewQuantity = inRes.NewQuantity
		result.outRes = outRes
		result.inRes = inRes
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.gateway.Dispatch(ctx, result.outRes)
	uc.gateway.Dispatch(ctx, result.inRes)
	return result, nil
}
