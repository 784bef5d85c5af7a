package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/auth"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/requisition"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/transfer"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/usecase"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC        *usecase.ItemUseCase
	LedgerUC      *usecase.LedgerUseCase
	LocationUC    *usecase.LocationUseCase
	Gateway       *stock.Gateway
	RequisitionUC *requisition.UseCase
	TransferUC    *transfer.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Las mutaciones directas de stock, la
// revisión de requisiciones y los traslados son solo para admin; el resto de
// las rutas protegidas las usa cualquier usuario autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Retire)

	// Movimientos directos y ledger (protegido; mutación solo admin)
	stockHandler := NewStockHandler(deps.Gateway, deps.LedgerUC)
	items.Post("/:id/movements", adminOnly, stockHandler.RegisterMovement)
	items.Get("/:id/transactions", stockHandler.ListItemTransactions)

	// Requisitions (crear/listar cualquier usuario; revisar solo admin)
	requisitions := protected.Group("/requisitions")
	requisitionHandler := NewRequisitionHandler(deps.RequisitionUC)
	requisitions.Post("/", requisitionHandler.Create)
	requisitions.Get("/", requisitionHandler.List)
	requisitions.Get("/:id", requisitionHandler.GetByID)
	requisitions.Post("/:id/review", adminOnly, requisitionHandler.Review)

	// Transfers (solo admin)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", adminOnly, transferHandler.Transfer)

	// Locations (protegido, lectura)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Get("/:id/transactions", stockHandler.ListLocationTransactions)
}
