package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// AdjustStockUseCase es el coordinador de ajustes: toda mutación de stock de un
// item pasa por aquí. Abre una transacción, bloquea la fila del item
// (SELECT FOR UPDATE), aplica la aritmética del tipo de movimiento, registra
// exactamente una entrada en el libro, evalúa alertas de umbral y hace
// Commit o Rollback como una sola unidad.
type AdjustStockUseCase struct {
	txRunner TxRunner
	alerts   *AlertEngine
	now      Clock
}

// NewAdjustStockUseCase construye el coordinador. now puede ser nil (usa time.Now).
func NewAdjustStockUseCase(txRunner TxRunner, alerts *AlertEngine, now Clock) *AdjustStockUseCase {
	if now == nil {
		now = time.Now
	}
	return &AdjustStockUseCase{txRunner: txRunner, alerts: alerts, now: now}
}

// AdjustStockInput entrada para registrar un ajuste de stock.
// Quantity es la magnitud entregada por el caller; para ADJUSTMENT es el valor
// absoluto a fijar (no un delta). UserID es el actor autenticado (obligatorio).
type AdjustStockInput struct {
	ItemID          string
	MovementType    string
	Quantity        int
	ReferenceNumber string
	Notes           string
	UserID          string
	IPAddress       string
}

// AdjustStock aplica un movimiento de stock sobre un item y devuelve el item
// actualizado. Dentro de la misma transacción: actualiza CurrentStock, agrega
// una (y solo una) entrada al libro de movimientos y dispara las alertas de
// umbral que correspondan. Cualquier fallo revierte los tres efectos.
//
// Aritmética por tipo:
//   - RECEIPT, RETURN, TRANSFER_IN:            nuevo = anterior + |Quantity|
//   - ISSUE, DAMAGE, EXPIRED, TRANSFER_OUT:    nuevo = anterior - |Quantity| (falla si queda negativo)
//   - ADJUSTMENT:                              nuevo = Quantity (fijación absoluta)
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustStockInput) (*entity.InventoryItem, error) {
	if in.ItemID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	direction, known := entity.MovementDirection(in.MovementType)
	if !known {
		return nil, domain.ErrInvalidMovementType
	}
	if direction != 0 && in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if direction == 0 && in.Quantity < 0 {
		// ADJUSTMENT fija el stock en un valor absoluto; un stock negativo no existe.
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	var updated *entity.InventoryItem

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.StockAlertRepository,
	) error {
		// Bloquea la fila del item; serializa ajustes y reservas concurrentes sobre el mismo item.
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		previous := item.CurrentStock
		newStock, err := computeNewStock(previous, item.ReservedStock, direction, in.Quantity)
		if err != nil {
			return err
		}

		item.CurrentStock = newStock
		item.UpdatedAt = now
		if err := itemRepo.UpdateStock(ctx, item); err != nil {
			return err
		}

		// Exactamente una entrada en el libro por ajuste.
		mov := &entity.StockMovement{
			ID:              uuid.New().String(),
			InventoryItemID: item.ID,
			MovementType:    in.MovementType,
			Quantity:        in.Quantity,
			PreviousStock:   previous,
			NewStock:        newStock,
			ReferenceNumber: in.ReferenceNumber,
			Notes:           in.Notes,
			UserID:          in.UserID,
			IPAddress:       in.IPAddress,
			CreatedAt:       now,
		}
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}

		// Alertas de umbral contra el item ya actualizado, misma transacción.
		if err := uc.alerts.CheckAndTrigger(ctx, alertRepo, item, now); err != nil {
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

// computeNewStock aplica la aritmética del movimiento y valida los invariantes
// antes de cualquier escritura: el stock nunca queda negativo ni por debajo
// de lo reservado.
func computeNewStock(previous, reserved, direction, quantity int) (int, error) {
	magnitude := quantity
	if magnitude < 0 {
		magnitude = -magnitude
	}
	var newStock int
	switch direction {
	case 1:
		newStock = previous + magnitude
	case -1:
		newStock = previous - magnitude
	default:
		newStock = quantity
	}
	if newStock < 0 || newStock < reserved {
		return 0, domain.ErrInsufficientStock
	}
	return newStock, nil
}
