package requisition

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

// UseCase flujo de requisiciones: pending -> approved | declined.
// Crear una requisición no toca el stock; el descuento ocurre al aprobar,
// en la misma transacción que fija el estado (ambos o ninguno).
type UseCase struct {
	txRunner     stock.TxRunner
	gateway      *stock.Gateway
	reqRepo      repository.RequisitionRepository
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner stock.TxRunner,
	gateway *stock.Gateway,
	reqRepo repository.RequisitionRepository,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		gateway:      gateway,
		reqRepo:      reqRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
	}
}

// CreateInput datos para crear una requisición.
type CreateInput struct {
	ItemID     string
	Quantity   int64
	LocationID string
}

// Create inserta una requisición pending. Valida cantidad positiva y que
// artículo y sede existan; no hay efecto de stock en la creación.
func (uc *UseCase) Create(ctx context.Context, requesterID string, in CreateInput) (*entity.Requisition, error) {
	if requesterID == "" || in.ItemID == "" || in.LocationID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !item.IsActive {
		return nil, domain.ErrItemRetired
	}
	loc, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	req := &entity.Requisition{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		ItemID:      in.ItemID,
		Quantity:    in.Quantity,
		LocationID:  in.LocationID,
		Status:      entity.RequisitionPending,
		CreatedAt:   time.Now(),
	}
	if err := uc.reqRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ReviewResult resultado de una revisión confirmada.
type ReviewResult struct {
	Requisition *entity.Requisition
	// Apply presente solo cuando la decisión fue approved.
	Apply *stock.ApplyResult
}

// Review resuelve una requisición pending. Declined solo fija el estado.
// Approved además descuenta el stock vía el gateway dentro de la misma
// transacción: si el stock no alcanza, todo se revierte y la requisición
// queda pending para reintentar cuando se reponga.
func (uc *UseCase) Review(ctx context.Context, reviewerID, id string, decision entity.RequisitionStatus, note string) (*ReviewResult, error) {
	if reviewerID == "" || id == "" || !decision.Terminal() {
		return nil, domain.ErrInvalidInput
	}
	req, err := uc.reqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	// Chequeo rápido; la garantía real contra la doble revisión es el
	// ClaimPending condicional dentro de la transacción.
	if !req.Status.CanTransitionTo(decision) {
		return nil, domain.ErrAlreadyReviewed
	}

	now := time.Now()
	var applyRes *stock.ApplyResult
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		ledgerRepo repository.LedgerRepository,
		reqRepo repository.RequisitionRepository,
	) error {
		claimed, err := reqRepo.ClaimPending(id, decision, reviewerID, note, now)
		if err != nil {
			return err
		}
		if !claimed {
			// Otro revisor ganó la carrera.
			return domain.ErrAlreadyReviewed
		}
		if decision != entity.RequisitionApproved {
			return nil
		}
		res, err := uc.gateway.ApplyInTx(itemRepo, ledgerRepo, stock.ApplyInput{
			ItemID:   req.ItemID,
			Kind:     entity.MovementRemove,
			Quantity: decimal.NewFromInt(req.Quantity),
			ActorID:  reviewerID,
			Note:     fmt.Sprintf("requisition #%s", req.ID),
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

	req.Status = decision
	req.ReviewerID = &reviewerID
	req.ReviewedAt = &now
	req.AdminNote = note
	uc.gateway.Dispatch(ctx, applyRes)
	return &ReviewResult{Requisition: req, Apply: applyRes}, nil
}

// GetByID obtiene una requisición.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Requisition, error) {
	req, err := uc.reqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// List lista requisiciones, opcionalmente filtradas por estado.
func (uc *UseCase) List(ctx context.Context, status entity.RequisitionStatus, limit, offset int) ([]*entity.Requisition, error) {
	if status != "" && !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.reqRepo.List(status, limit, offset)
}
