package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	SupplierUC    *usecase.SupplierUseCase
	ProductUC     *usecase.ProductUseCase
	HistoryUC     *usecase.HistoryUseCase
	CreateProduct *inventory.CreateProductUseCase
	Movements     *inventory.RegisterMovementUseCase
	Alerts        *inventory.LowStockAlertUseCase
	Report        *inventory.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Companies
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Alertas de stock bajo (por empresa)
	alertHandler := NewAlertHandler(deps.Alerts, deps.Report)
	companies.Get("/:companyId/alerts/low-stock", alertHandler.GetLowStock)
	companies.Get("/:companyId/alerts/low-stock/pdf", alertHandler.ExportLowStockPDF)

	// Warehouses
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.ListByCompany)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.ListByCompany)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Products + movimientos de inventario
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CreateProduct, deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.Movements, deps.HistoryUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.ListByCompany)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:productId/sell", inventoryHandler.Sell)
	products.Post("/:productId/restock", inventoryHandler.Restock)
	products.Get("/:productId/history", inventoryHandler.History)
}
