package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/dto"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/requisition"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
)

// RequisitionHandler flujo de requisiciones de stock.
type RequisitionHandler struct {
	uc *requisition.UseCase
}

// NewRequisitionHandler construye el handler.
func NewRequisitionHandler(uc *requisition.UseCase) *RequisitionHandler {
	return &RequisitionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear requisición (pending, sin efecto de stock)
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequisitionRequest  true  "item_id, quantity, location_id"
// @Success      201   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), GetUserID(c), requisition.CreateInput{
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		LocationID: in.LocationID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRequisitionResponse(req, nil))
}

// List lista requisiciones, filtrables por estado (?status=pending).
func (h *RequisitionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	status := entity.RequisitionStatus(c.Query("status"))
	list, err := h.uc.List(c.Context(), status, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.RequisitionResponse, 0, len(list))
	for _, req := range list {
		out = append(out, toRequisitionResponse(req, nil))
	}
	return c.JSON(fiber.Map{"total": len(out), "requisitions": out})
}

// GetByID obtiene una requisición.
func (h *RequisitionHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRequisitionResponse(req, nil))
}

// Review godoc
// @Summary      Revisar requisición (approved descuenta stock; declined solo cierra)
// @Description  Una requisición solo se revisa una vez. Si al aprobar no hay
//               stock suficiente, queda pending y se responde 409 para
//               reintentar cuando se reponga.
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la requisición"
// @Param        body  body  dto.ReviewRequisitionRequest  true  "decision: approved | declined"
// @Success      200   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/review [post]
func (h *RequisitionHandler) Review(c *fiber.Ctx) error {
	var in dto.ReviewRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	decision := entity.RequisitionStatus(in.Decision)
	if !decision.Valid() || !decision.Terminal() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "decision debe ser approved o declined"})
	}
	res, err := h.uc.Review(c.Context(), GetUserID(c), c.Params("id"), decision, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRequisitionResponse(res.Requisition, res.Apply))
}

func toRequisitionResponse(req *entity.Requisition, apply *stock.ApplyResult) *dto.RequisitionResponse {
	out := &dto.RequisitionResponse{
		ID:          req.ID,
		RequesterID: req.RequesterID,
		ItemID:      req.ItemID,
		Quantity:    req.Quantity,
		LocationID:  req.LocationID,
		Status:      string(req.Status),
		ReviewerID:  req.ReviewerID,
		ReviewedAt:  req.ReviewedAt,
		AdminNote:   req.AdminNote,
		CreatedAt:   req.CreatedAt,
	}
	if apply != nil {
		q := apply.NewQuantity
		out.NewQuantity = &q
	}
	return out
}
