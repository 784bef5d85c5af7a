package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/dto"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/usecase"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
)

// Kinds admitidos en ajuste directo. in/out quedan reservados a traslados:
// una pata suelta violaría el pareo out/in.
var directKinds = map[entity.MovementKind]bool{
	entity.MovementAdd:    true,
	entity.MovementRemove: true,
	entity.MovementAdjust: true,
}

// StockHandler mutaciones directas de cantidad y lectura del ledger.
type StockHandler struct {
	gateway *stock.Gateway
	ledger  *usecase.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(gateway *stock.Gateway, ledger *usecase.LedgerUseCase) *StockHandler {
	return &StockHandler{gateway: gateway, ledger: ledger}
}

// RegisterMovement godoc
// @Summary      Ajuste directo de stock (add, remove, adjust)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.RegisterMovementRequest  true  "kind, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	kind := entity.MovementKind(in.Kind)
	if !directKinds[kind] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind debe ser add, remove o adjust"})
	}
	itemID := c.Params("id")
	res, err := h.gateway.Apply(c.Context(), stock.ApplyInput{
		ItemID:   itemID,
		Kind:     kind,
		Quantity: in.Quantity,
		ActorID:  GetUserID(c),
		Note:     in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ItemID:      itemID,
		NewQuantity: res.NewQuantity,
		EntryID:     res.EntryID,
	})
}

// ListItemTransactions godoc
// @Summary      Historial de movimientos de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del artículo"
// @Param        from   query  string  false  "Fecha inicial (RFC3339)"
// @Param        to     query  string  false  "Fecha final (RFC3339)"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/transactions [get]
func (h *StockHandler) ListItemTransactions(c *fiber.Ctx) error {
	page, from, to, err := parseHistoryQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	entries, err := h.ledger.ListByItem(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "transactions": entries})
}

// ListLocationTransactions historial de movimientos de una sede
// (patas in/out de traslados).
func (h *StockHandler) ListLocationTransactions(c *fiber.Ctx) error {
	page, from, to, err := parseHistoryQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	entries, err := h.ledger.ListByLocation(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "transactions": entries})
}

func parseHistoryQuery(c *fiber.Ctx) (dto.PageRequest, *time.Time, *time.Time, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, nil, nil, err
	}
	page.DefaultPage()
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return page, nil, nil, err
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return page, nil, nil, err
		}
		to = &t
	}
	return page, from, to, nil
}
