package usecase

import (
	"context"
	"time"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/dto"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

// LedgerUseCase lecturas del ledger para las vistas de historial.
// Solo lectura: no existe camino de mutación por aquí.
type LedgerUseCase struct {
	ledgerRepo   repository.LedgerRepository
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	ledgerRepo repository.LedgerRepository,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo, itemRepo: itemRepo, locationRepo: locationRepo}
}

// ListByItem historial de movimientos de un artículo, ordenado por fecha.
func (uc *LedgerUseCase) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*dto.LedgerEntryResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.ListByItem(itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toLedgerResponses(entries), nil
}

// ListByLocation historial de movimientos con ubicación (patas de traslado).
func (uc *LedgerUseCase) ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*dto.LedgerEntryResponse, error) {
	loc, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.ListByLocation(locationID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toLedgerResponses(entries), nil
}

func toLedgerResponses(entries []*entity.StockTransaction) []*dto.LedgerEntryResponse {
	out := make([]*dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.LedgerEntryResponse{
			ID:             e.ID,
			ItemID:         e.ItemID,
			Kind:           string(e.Kind),
			Quantity:       e.Quantity,
			QuantityBefore: e.QuantityBefore,
			QuantityAfter:  e.QuantityAfter,
			LocationID:     e.LocationID,
			UserID:         e.UserID,
			Note:           e.Note,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out
}
