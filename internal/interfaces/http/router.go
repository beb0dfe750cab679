package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AdjustStock *inventory.AdjustStockUseCase
	Items       *inventory.ItemUseCase
	Alerts      *inventory.AlertUseCase
	Reports     *inventory.ReportsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todo el motor de inventario requiere Bearer Token: los movimientos
	// llevan actor y el reconocimiento de alertas también.
	inv := api.Group("/inventory", AuthMiddleware(deps.JWTSecret))

	itemHandler := NewItemHandler(deps.Items)
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.Reports)
	alertHandler := NewAlertHandler(deps.Alerts)
	reportHandler := NewReportHandler(deps.Reports)

	// Reportes (antes de /items/:id para no capturar los literales)
	inv.Get("/low-stock", reportHandler.LowStock)
	inv.Get("/out-of-stock", reportHandler.OutOfStock)
	inv.Get("/valuation", reportHandler.Valuation)

	// Detalle de una entrada del libro
	inv.Get("/movements/:id", inventoryHandler.GetMovement)

	// Alertas
	alerts := inv.Group("/alerts")
	alerts.Get("/low-stock", alertHandler.ListLowStock)
	alerts.Get("/out-of-stock", alertHandler.ListOutOfStock)
	alerts.Patch("/:id/acknowledge", alertHandler.Acknowledge)

	// Items
	items := inv.Group("/items")
	items.Post("/", itemHandler.Register)
	items.Get("/", itemHandler.List)
	items.Get("/sku/:sku", itemHandler.GetBySKU)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Deactivate)

	// Motor de ajustes y reservas
	items.Post("/:id/adjust", inventoryHandler.AdjustStock)
	items.Post("/:id/reserve", inventoryHandler.ReserveStock)
	items.Post("/:id/release", inventoryHandler.ReleaseReservedStock)
	items.Get("/:id/movements", inventoryHandler.ListMovements)
}
