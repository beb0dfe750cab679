package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// AlertEngine evalúa umbrales sobre un item ya actualizado y crea alertas
// persistidas, deduplicadas por existencia de una fila ACTIVE del mismo tipo.
// Se invoca únicamente desde dentro de la transacción de ajuste, con el
// repositorio atado a esa tx, de modo que hereda su serialización.
type AlertEngine struct{}

// NewAlertEngine construye el motor de alertas.
func NewAlertEngine() *AlertEngine {
	return &AlertEngine{}
}

// CheckAndTrigger evalúa, en orden, bajo stock y sin stock. Los chequeos son
// independientes: un item puede tener ambas alertas activas a la vez. Una
// condición que vuelve a cumplirse mientras ya existe una alerta ACTIVE del
// tipo es un no-op.
func (e *AlertEngine) CheckAndTrigger(ctx context.Context, alertRepo repository.StockAlertRepository, item *entity.InventoryItem, now time.Time) error {
	if item.IsLowStock() {
		if err := e.triggerIfAbsent(ctx, alertRepo, item.ID, entity.AlertTypeLowStock, *item.ReorderPoint, now); err != nil {
			return err
		}
	}
	if item.IsOutOfStock() {
		if err := e.triggerIfAbsent(ctx, alertRepo, item.ID, entity.AlertTypeOutOfStock, 0, now); err != nil {
			return err
		}
	}
	return nil
}

// triggerIfAbsent crea la alerta solo si no hay una ACTIVE del mismo tipo.
func (e *AlertEngine) triggerIfAbsent(ctx context.Context, alertRepo repository.StockAlertRepository, itemID, alertType string, threshold int, now time.Time) error {
	existing, err := alertRepo.FindActive(ctx, itemID, alertType)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return alertRepo.Create(ctx, &entity.StockAlert{
		ID:              uuid.New().String(),
		InventoryItemID: itemID,
		AlertType:       alertType,
		ThresholdValue:  threshold,
		Status:          entity.AlertStatusActive,
		LastTriggered:   now,
		CreatedAt:       now,
	})
}

// AlertUseCase operaciones de consulta y reconocimiento de alertas, fuera de
// la transacción de ajuste (repositorio atado al pool).
type AlertUseCase struct {
	alertRepo repository.StockAlertRepository
	now       Clock
}

// NewAlertUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewAlertUseCase(alertRepo repository.StockAlertRepository, now Clock) *AlertUseCase {
	if now == nil {
		now = time.Now
	}
	return &AlertUseCase{alertRepo: alertRepo, now: now}
}

// Acknowledge marca una alerta como reconocida por el operador.
func (uc *AlertUseCase) Acknowledge(ctx context.Context, alertID, userID string) (*entity.StockAlert, error) {
	if alertID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	alert, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	// El mismo instante se persiste y se devuelve: sin divergencia entre la
	// fila y la respuesta.
	now := uc.now()
	if err := uc.alertRepo.Acknowledge(ctx, alertID, userID, now); err != nil {
		return nil, err
	}
	alert.Status = entity.AlertStatusAcknowledged
	alert.AcknowledgedBy = userID
	alert.AcknowledgedAt = &now
	return alert, nil
}

// ListActiveByType lista alertas ACTIVE del tipo indicado.
func (uc *AlertUseCase) ListActiveByType(ctx context.Context, alertType string, limit, offset int) ([]*entity.StockAlert, error) {
	switch alertType {
	case entity.AlertTypeLowStock, entity.AlertTypeOutOfStock, entity.AlertTypeOverstock, entity.AlertTypeExpiryWarning:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.alertRepo.ListActiveByType(ctx, alertType, limit, offset)
}

// ListByItem lista todas las alertas de un item (cualquier estado).
func (uc *AlertUseCase) ListByItem(ctx context.Context, itemID string) ([]*entity.StockAlert, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.alertRepo.ListByItem(ctx, itemID)
}
