package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ItemFilter criterios de búsqueda para el listado de items.
// Query busca por substring en SKU y nombre; los flags filtran por estado de stock.
type ItemFilter struct {
	Query      string
	Category   string
	Supplier   string
	LowStock   bool
	OutOfStock bool
	Limit      int
	Offset     int
}

// InventoryItemRepository define el puerto de persistencia del estado actual
// por SKU. GetForUpdate se usa dentro de transacciones para serializar las
// mutaciones de un mismo item (SELECT FOR UPDATE).
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del item activo para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// UpdateStock persiste CurrentStock y ReservedStock (solo dentro de la tx del coordinador).
	UpdateStock(ctx context.Context, item *entity.InventoryItem) error
	// Update persiste metadatos, umbrales y precios. Nunca toca stock.
	Update(ctx context.Context, item *entity.InventoryItem) error
	// Deactivate marca el item como inactivo (borrado lógico; el libro lo sigue referenciando).
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.InventoryItem, error)
	FindLowStock(ctx context.Context) ([]*entity.InventoryItem, error)
	FindOutOfStock(ctx context.Context) ([]*entity.InventoryItem, error)
	// Valuation devuelve sum(current_stock*unit_cost), unidades totales y número de items
	// sobre items activos con costo conocido.
	Valuation(ctx context.Context) (*InventoryValuation, error)
}

// InventoryValuation resultado agregado de valorización del inventario.
type InventoryValuation struct {
	TotalValue decimal.Decimal
	TotalUnits int
	ItemCount  int
}
