package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// ReportHandler consultas de solo lectura sobre el estado comprometido (protegido).
type ReportHandler struct {
	reports *inventory.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *inventory.ReportsUseCase) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// LowStock godoc
// @Summary      Items activos en o bajo su punto de reorden
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.reports.LowStockItems(c.Context())
	if err != nil {
		return respondInventoryError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewItemResponse(item))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// OutOfStock godoc
// @Summary      Items activos sin stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory/out-of-stock [get]
func (h *ReportHandler) OutOfStock(c *fiber.Ctx) error {
	items, err := h.reports.OutOfStockItems(c.Context())
	if err != nil {
		return respondInventoryError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewItemResponse(item))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Valuation godoc
// @Summary      Valorización del inventario
// @Description  sum(current_stock * unit_cost) sobre items activos con costo conocido.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationResponse
// @Router       /api/inventory/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	v, err := h.reports.Valuation(c.Context())
	if err != nil {
		return respondInventoryError(c, err)
	}
	return c.JSON(dto.ValuationResponse{
		TotalValue: v.TotalValue,
		TotalUnits: v.TotalUnits,
		ItemCount:  v.ItemCount,
	})
}
