package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/dto"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

// ItemUseCase CRUD de artículos. La cantidad nunca se escribe por aquí:
// el alta con stock inicial delega en el gateway y el resto de mutaciones
// entran por movimientos, requisiciones o traslados.
type ItemUseCase struct {
	txRunner     stock.TxRunner
	gateway      *stock.Gateway
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	txRunner stock.TxRunner,
	gateway *stock.Gateway,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
) *ItemUseCase {
	return &ItemUseCase{
		txRunner:     txRunner,
		gateway:      gateway,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
	}
}

// Create crea un artículo. Si InitialQuantity > 0, el alta y la primera
// entrada del ledger ("initial stock") ocurren en la misma transacción,
// así el historial existe desde el día uno.
func (uc *ItemUseCase) Create(ctx context.Context, actorID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" || in.CategoryID == "" || in.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity.IsNegative() || in.ReorderLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	unit, err := uc.unitRepo.GetByID(in.UnitID)
	if err != nil {
		return nil, err
	}
	if category == nil || unit == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.itemRepo.GetBySKU(sku); existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		Name:         name,
		SKU:          sku,
		CategoryID:   in.CategoryID,
		UnitID:       in.UnitID,
		Quantity:     decimal.Zero,
		ReorderLevel: in.ReorderLevel,
		IsActive:     true,
		UnitPrice:    in.UnitPrice,
		StorageTag:   in.StorageTag,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if in.InitialQuantity.IsZero() {
		if err := uc.itemRepo.Create(item); err != nil {
			return nil, err
		}
		return toItemResponse(item), nil
	}

	var applyRes *stock.ApplyResult
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.RequisitionRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		res, err := uc.gateway.ApplyInTx(itemRepo, ledgerRepo, stock.ApplyInput{
			ItemID:   item.ID,
			Kind:     entity.MovementAdd,
			Quantity: in.InitialQuantity,
			ActorID:  actorID,
			Note:     "initial stock",
		}, now)
		if err != nil {
			return err
		}
		applyRes = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	item.Quantity = applyRes.NewQuantity
	uc.gateway.Dispatch(ctx, applyRes)
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista artículos paginados.
func (uc *ItemUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ItemResponse, error) {
	items, err := uc.itemRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// UpdateMetadata actualiza metadatos (nombre, SKU, referencias, precio).
// La cantidad no es actualizable: solo el gateway la toca.
func (uc *ItemUseCase) UpdateMetadata(ctx context.Context, id, actorID string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !item.IsActive {
		return nil, domain.ErrItemRetired
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if existing, _ := uc.itemRepo.GetBySKU(sku); existing != nil && existing.ID != item.ID {
			return nil, domain.ErrDuplicate
		}
		item.SKU = sku
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		item.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		unit, err := uc.unitRepo.GetByID(*in.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, domain.ErrNotFound
		}
		item.UnitID = *in.UnitID
	}
	if in.ReorderLevel != nil {
		if in.ReorderLevel.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitPrice = in.UnitPrice
	}
	if in.StorageTag != nil {
		item.StorageTag = *in.StorageTag
	}
	item.UpdatedBy = actorID
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.UpdateMetadata(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Retire retira un artículo: is_active = false y renombra nombre y SKU para
// liberar el SKU único. Nunca se borra la fila: el ledger la referencia.
func (uc *ItemUseCase) Retire(ctx context.Context, id, actorID string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !item.IsActive {
		return nil, domain.ErrItemRetired
	}
	suffix := item.ID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	item.IsActive = false
	item.Name = item.Name + " (retired)"
	item.SKU = item.SKU + "-RET-" + suffix
	item.UpdatedBy = actorID
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Retire(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		SKU:          it.SKU,
		CategoryID:   it.CategoryID,
		UnitID:       it.UnitID,
		Quantity:     it.Quantity,
		ReorderLevel: it.ReorderLevel,
		IsActive:     it.IsActive,
		UnitPrice:    it.UnitPrice,
		StorageTag:   it.StorageTag,
		LowStock:     it.Quantity.LessThanOrEqual(it.ReorderLevel),
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}
