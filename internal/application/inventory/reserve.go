package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ReserveStock toma una retención blanda sobre el stock disponible del item.
// Usa el mismo bloqueo de fila que AdjustStock (misma fila, debe serializar
// contra ajustes y contra otras reservas). No escribe en el libro de
// movimientos ni dispara alertas: una reserva no es un evento físico.
func (uc *AdjustStockUseCase) ReserveStock(ctx context.Context, itemID string, quantity int) (*entity.InventoryItem, error) {
	if itemID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		_ repository.StockAlertRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.CanReserve(quantity) {
			return domain.ErrInsufficientAvailableStock
		}
		item.ReservedStock += quantity
		item.UpdatedAt = uc.now()
		if err := itemRepo.UpdateStock(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReleaseReservedStock libera una retención. El descuento se trunca en cero:
// liberar más de lo reservado no deja la reserva negativa (protege contra
// releases sin reserve correspondiente).
func (uc *AdjustStockUseCase) ReleaseReservedStock(ctx context.Context, itemID string, quantity int) (*entity.InventoryItem, error) {
	if itemID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		_ repository.StockAlertRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		item.ReservedStock -= quantity
		if item.ReservedStock < 0 {
			item.ReservedStock = 0
		}
		item.UpdatedAt = uc.now()
		if err := itemRepo.UpdateStock(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
