package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ItemHandler maneja el registro y mantenimiento de items (protegido).
type ItemHandler struct {
	items *inventory.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(items *inventory.ItemUseCase) *ItemHandler {
	return &ItemHandler{items: items}
}

// Register godoc
// @Summary      Registrar un item de inventario
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterItemRequest  true  "sku, name, initial_stock, umbrales y precios opcionales"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *ItemHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.items.RegisterItem(c.Context(), inventory.RegisterItemInput{
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Supplier:      in.Supplier,
		InitialStock:  in.InitialStock,
		ReorderPoint:  in.ReorderPoint,
		MaxStockLevel: in.MaxStockLevel,
		UnitCost:      in.UnitCost,
		SellingPrice:  in.SellingPrice,
	})
	if err != nil {
		return respondInventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(item))
}

// GetByID godoc
// @Summary      Obtener un item por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.items.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondInventoryError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// GetBySKU godoc
// @Summary      Obtener un item por SKU
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/sku/{sku} [get]
func (h *ItemHandler) GetBySKU(c *fiber.Ctx) error {
	item, err := h.items.GetItemBySKU(c.Context(), c.Params("sku"))
	if err != nil {
		return respondInventoryError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// List godoc
// @Summary      Buscar items con filtros
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q             query  string  false  "Substring de SKU o nombre"
// @Param        category      query  string  false  "Categoría exacta"
// @Param        supplier      query  string  false  "Proveedor exacto"
// @Param        low_stock     query  bool    false  "Solo items en o bajo el punto de reorden"
// @Param        out_of_stock  query  bool    false  "Solo items sin stock"
// @Param        limit         query  int     false  "Tamaño de página"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	items, err := h.items.ListItems(c.Context(), repository.ItemFilter{
		Query:      c.Query("q"),
		Category:   c.Query("category"),
		Supplier:   c.Query("supplier"),
		LowStock:   c.QueryBool("low_stock"),
		OutOfStock: c.QueryBool("out_of_stock"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return respondInventoryError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewItemResponse(item))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Update godoc
// @Summary      Actualizar metadatos, umbrales y precios de un item
// @Description  El stock no se actualiza por aquí; use /adjust.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del item"
// @Param        body  body  dto.UpdateItemRequest  true  "campos actualizables"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.items.UpdateItem(c.Context(), c.Params("id"), inventory.UpdateItemInput{
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Supplier:      in.Supplier,
		ReorderPoint:  in.ReorderPoint,
		MaxStockLevel: in.MaxStockLevel,
		UnitCost:      in.UnitCost,
		SellingPrice:  in.SellingPrice,
	})
	if err != nil {
		return respondInventoryError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// Deactivate godoc
// @Summary      Borrado lógico de un item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *ItemHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.items.DeactivateItem(c.Context(), c.Params("id")); err != nil {
		return respondInventoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "item desactivado"})
}
