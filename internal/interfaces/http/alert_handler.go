package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// AlertHandler maneja la consulta y el reconocimiento de alertas (protegido).
type AlertHandler struct {
	alerts *inventory.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(alerts *inventory.AlertUseCase) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListLowStock godoc
// @Summary      Alertas LOW_STOCK activas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/inventory/alerts/low-stock [get]
func (h *AlertHandler) ListLowStock(c *fiber.Ctx) error {
	return h.listActive(c, entity.AlertTypeLowStock)
}

// ListOutOfStock godoc
// @Summary      Alertas OUT_OF_STOCK activas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/inventory/alerts/out-of-stock [get]
func (h *AlertHandler) ListOutOfStock(c *fiber.Ctx) error {
	return h.listActive(c, entity.AlertTypeOutOfStock)
}

func (h *AlertHandler) listActive(c *fiber.Ctx, alertType string) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	alerts, err := h.alerts.ListActiveByType(c.Context(), alertType, page.Limit, page.Offset)
	if err != nil {
		return respondInventoryError(c, err)
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.NewAlertResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}

// Acknowledge godoc
// @Summary      Reconocer una alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/acknowledge [patch]
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	alert, err := h.alerts.Acknowledge(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondInventoryError(c, err)
	}
	return c.JSON(dto.NewAlertResponse(alert))
}
