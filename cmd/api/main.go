package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/auth"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/requisition"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/transfer"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/usecase"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/infrastructure/notify"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/interfaces/http"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/pkg/config"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	reqRepo := postgres.NewRequisitionRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificación de movimientos: Kafka si hay brokers, si no solo log.
	var notifier stock.Notifier
	if cfg.Notify.Enabled() {
		kafkaNotifier := notify.NewKafkaNotifier(cfg.Notify.Brokers, cfg.Notify.Topic, log)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
		log.Info().Strs("brokers", cfg.Notify.Brokers).Str("topic", cfg.Notify.Topic).Msg("notificador Kafka habilitado")
	} else {
		notifier = notify.NewLogNotifier(log)
	}

	gateway := stock.NewGateway(txRunner, notifier)
	itemUC := usecase.NewItemUseCase(txRunner, gateway, itemRepo, categoryRepo, unitRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, itemRepo, locationRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	requisitionUC := requisition.NewUseCase(txRunner, gateway, reqRepo, itemRepo, locationRepo)
	transferUC := transfer.NewUseCase(txRunner, gateway, itemRepo, locationRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:        itemUC,
		LedgerUC:      ledgerUC,
		LocationUC:    locationUC,
		Gateway:       gateway,
		RequisitionUC: requisitionUC,
		TransferUC:    transferUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
