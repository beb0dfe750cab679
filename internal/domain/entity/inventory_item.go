package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa el estado actual de un SKU: stock físico, stock
// reservado, umbrales y precios. La verdad vigente del inventario; el
// histórico vive en StockMovement.
// CurrentStock y ReservedStock se mutan únicamente dentro de la transacción
// del coordinador de ajustes (nunca vía Update directo).
type InventoryItem struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	Category      string
	Supplier      string
	CurrentStock  int
	ReservedStock int
	ReorderPoint  *int
	MaxStockLevel *int
	UnitCost      *decimal.Decimal
	SellingPrice  *decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AvailableStock devuelve el stock disponible para nuevas reservas o venta.
func (i *InventoryItem) AvailableStock() int {
	return i.CurrentStock - i.ReservedStock
}

// IsLowStock indica si el stock actual está en o bajo el punto de reorden.
// Sin punto de reorden configurado nunca es bajo stock.
func (i *InventoryItem) IsLowStock() bool {
	return i.ReorderPoint != nil && i.CurrentStock <= *i.ReorderPoint
}

// IsOutOfStock indica si no queda stock físico.
func (i *InventoryItem) IsOutOfStock() bool {
	return i.CurrentStock <= 0
}

// CanReserve indica si es posible reservar la cantidad solicitada.
func (i *InventoryItem) CanReserve(quantity int) bool {
	return i.AvailableStock() >= quantity
}
