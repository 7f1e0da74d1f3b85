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

	"github.com/tu-usuario/logistica-api/internal/application/auth"
	"github.com/tu-usuario/logistica-api/internal/application/billing"
	"github.com/tu-usuario/logistica-api/internal/application/documents"
	"github.com/tu-usuario/logistica-api/internal/application/masterdata"
	"github.com/tu-usuario/logistica-api/internal/application/notes"
	"github.com/tu-usuario/logistica-api/internal/application/orders"
	"github.com/tu-usuario/logistica-api/internal/domain/pricing"
	infraexcel "github.com/tu-usuario/logistica-api/internal/infrastructure/excel"
	infrapdf "github.com/tu-usuario/logistica-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/logistica-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/logistica-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/tu-usuario/logistica-api/internal/interfaces/http"
	"github.com/tu-usuario/logistica-api/pkg/config"
	"github.com/tu-usuario/logistica-api/pkg/logger"
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
		log.Component("postgres").Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	teamRepo := postgres.NewTeamRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	itemRepo := postgres.NewCatalogItemRepository(pool)
	orderRepo := postgres.NewDeliveryOrderRepository(pool)
	noteRepo := postgres.NewDeliveryNoteRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	calc := pricing.New(cfg.Doc.Locale, cfg.Doc.CurrencySymbol)

	authUC := auth.NewUseCase(userRepo, teamRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := masterdata.NewCompanyUseCase(companyRepo)
	vehicleUC := masterdata.NewVehicleUseCase(vehicleRepo)
	driverUC := masterdata.NewDriverUseCase(driverRepo)
	itemUC := masterdata.NewCatalogItemUseCase(itemRepo)

	orderUC := orders.NewUseCase(txRunner, orderRepo, companyRepo, vehicleRepo, driverRepo, itemRepo, calc)
	reconcileUC := notes.NewReconcileUseCase(txRunner, noteRepo, orderRepo)
	noteUC := notes.NewUseCase(txRunner, noteRepo)
	invoiceUC := billing.NewBuildInvoiceUseCase(txRunner, invoiceRepo, orderRepo, companyRepo, itemRepo, cfg.Doc.InvoicePrefix)

	documentUC := documents.NewUseCase(
		noteRepo, orderRepo, invoiceRepo, companyRepo, driverRepo, itemRepo,
		infrapdf.NewDeliveryRenderer(),
		infraexcel.NewOrderBookExporter(),
		xmlexport.NewInvoiceExporter(),
	)

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     companyUC,
		VehicleUC:     vehicleUC,
		DriverUC:      driverUC,
		CatalogItemUC: itemUC,
		OrderUC:       orderUC,
		ReconcileUC:   reconcileUC,
		NoteUC:        noteUC,
		InvoiceUC:     invoiceUC,
		DocumentUC:    documentUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	httpLog := log.Component("http")
	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		httpLog.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
