package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/logistica-api/internal/application/auth"
	"github.com/tu-usuario/logistica-api/internal/application/billing"
	"github.com/tu-usuario/logistica-api/internal/application/documents"
	"github.com/tu-usuario/logistica-api/internal/application/masterdata"
	"github.com/tu-usuario/logistica-api/internal/application/notes"
	"github.com/tu-usuario/logistica-api/internal/application/orders"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	CompanyUC     *masterdata.CompanyUseCase
	VehicleUC     *masterdata.VehicleUseCase
	DriverUC      *masterdata.DriverUseCase
	CatalogItemUC *masterdata.CatalogItemUseCase
	OrderUC       *orders.UseCase
	ReconcileUC   *notes.ReconcileUseCase
	NoteUC        *notes.UseCase
	InvoiceUC     *billing.BuildInvoiceUseCase
	DocumentUC    *documents.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Datos maestros (protegido)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)

	drivers := protected.Group("/drivers")
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Post("/", driverHandler.Create)
	drivers.Get("/", driverHandler.List)
	drivers.Get("/:id", driverHandler.GetByID)

	items := protected.Group("/catalog-items")
	itemHandler := NewCatalogItemHandler(deps.CatalogItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)

	documentHandler := NewDocumentHandler(deps.DocumentUC)

	// Órdenes de entrega (protegido)
	ordersGroup := protected.Group("/delivery-orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/export", documentHandler.OrderBook)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Patch("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Get("/:id/pdf", documentHandler.OrderPDF)

	// Vista previa de cálculo (protegido; mutaciones solo por operador o admin)
	pricing := protected.Group("/pricing", RequireRole(entity.RoleAdmin, entity.RoleOperator))
	pricing.Post("/recalculate", orderHandler.PreviewLine)

	// Remisiones (protegido)
	notesGroup := protected.Group("/delivery-notes")
	noteHandler := NewNoteHandler(deps.ReconcileUC, deps.NoteUC)
	notesGroup.Post("/", noteHandler.Create)
	notesGroup.Get("/", noteHandler.List)
	notesGroup.Get("/:id", noteHandler.GetByID)
	notesGroup.Put("/:id", noteHandler.Update)
	notesGroup.Delete("/:id", noteHandler.Delete)
	notesGroup.Patch("/:id/status", noteHandler.UpdateStatus)
	notesGroup.Get("/:id/pdf", documentHandler.NotePDF)

	// Facturas (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC)
	invoices.Post("/", invoiceHandler.Build)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Get("/:id/xml", invoiceHandler.ExportXML)
}
