package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ReportsUseCase consultas de solo lectura sobre el estado comprometido.
// Sin bloqueos ni invariantes propios.
type ReportsUseCase struct {
	itemRepo repository.InventoryItemRepository
	movRepo  repository.StockMovementRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(itemRepo repository.InventoryItemRepository, movRepo repository.StockMovementRepository) *ReportsUseCase {
	return &ReportsUseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// LowStockItems items activos con punto de reorden configurado y stock en o
// bajo ese punto.
func (uc *ReportsUseCase) LowStockItems(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.FindLowStock(ctx)
}

// OutOfStockItems items activos sin stock físico.
func (uc *ReportsUseCase) OutOfStockItems(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.FindOutOfStock(ctx)
}

// Valuation valorización del inventario: sum(current_stock * unit_cost) sobre
// items activos con costo conocido, más unidades totales y número de items.
func (uc *ReportsUseCase) Valuation(ctx context.Context) (*repository.InventoryValuation, error) {
	return uc.itemRepo.Valuation(ctx)
}

// ItemMovements historial del libro para un item, en orden de commit, con
// rango de fechas opcional y paginación. El total devuelto es el tamaño
// completo del libro del item, no el de la página.
func (uc *ReportsUseCase) ItemMovements(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, int, error) {
	if itemID == "" {
		return nil, 0, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	movements, err := uc.movRepo.ListByItem(ctx, itemID, from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.movRepo.CountByItem(ctx, itemID)
	if err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// MovementByID obtiene una entrada del libro por su ID.
func (uc *ReportsUseCase) MovementByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}
