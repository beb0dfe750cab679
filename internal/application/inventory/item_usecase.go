package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ItemUseCase registro y mantenimiento de items de inventario. El stock no se
// toca por aquí: toda mutación de CurrentStock/ReservedStock pasa por el
// coordinador de ajustes.
type ItemUseCase struct {
	itemRepo repository.InventoryItemRepository
	now      Clock
}

// NewItemUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewItemUseCase(itemRepo repository.InventoryItemRepository, now Clock) *ItemUseCase {
	if now == nil {
		now = time.Now
	}
	return &ItemUseCase{itemRepo: itemRepo, now: now}
}

// RegisterItemInput entrada para registrar un item nuevo.
type RegisterItemInput struct {
	SKU           string
	Name          string
	Description   string
	Category      string
	Supplier      string
	InitialStock  int
	ReorderPoint  *int
	MaxStockLevel *int
	UnitCost      *decimal.Decimal
	SellingPrice  *decimal.Decimal
}

// RegisterItem crea un item con su stock inicial. La unicidad del SKU la
// garantiza el constraint de la tabla (violación -> ErrDuplicateSKU).
// El stock inicial no genera entrada en el libro: es el punto de partida
// contra el que reconcilia el primer movimiento.
func (uc *ItemUseCase) RegisterItem(ctx context.Context, in RegisterItemInput) (*entity.InventoryItem, error) {
	if in.SKU == "" || in.Name == "" || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.ReorderPoint != nil && *in.ReorderPoint < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MaxStockLevel != nil && *in.MaxStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Supplier:      in.Supplier,
		CurrentStock:  in.InitialStock,
		ReservedStock: 0,
		ReorderPoint:  in.ReorderPoint,
		MaxStockLevel: in.MaxStockLevel,
		UnitCost:      in.UnitCost,
		SellingPrice:  in.SellingPrice,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem obtiene un item activo por ID.
func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsActive {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// GetItemBySKU obtiene un item activo por SKU.
func (uc *ItemUseCase) GetItemBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsActive {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// UpdateItemInput campos actualizables de un item. Stock excluido a propósito.
type UpdateItemInput struct {
	Name          string
	Description   string
	Category      string
	Supplier      string
	ReorderPoint  *int
	MaxStockLevel *int
	UnitCost      *decimal.Decimal
	SellingPrice  *decimal.Decimal
}

// UpdateItem actualiza metadatos, umbrales y precios de un item activo.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, id string, in UpdateItemInput) (*entity.InventoryItem, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ReorderPoint != nil && *in.ReorderPoint < 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.Description = in.Description
	item.Category = in.Category
	item.Supplier = in.Supplier
	item.ReorderPoint = in.ReorderPoint
	item.MaxStockLevel = in.MaxStockLevel
	item.UnitCost = in.UnitCost
	item.SellingPrice = in.SellingPrice
	item.UpdatedAt = uc.now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeactivateItem hace borrado lógico (is_active = false). Nunca se borra la
// fila: el libro de movimientos la referencia.
func (uc *ItemUseCase) DeactivateItem(ctx context.Context, id string) error {
	if _, err := uc.GetItem(ctx, id); err != nil {
		return err
	}
	return uc.itemRepo.Deactivate(ctx, id)
}

// ListItems búsqueda con filtros y paginación.
func (uc *ItemUseCase) ListItems(ctx context.Context, filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.itemRepo.List(ctx, filter)
}
