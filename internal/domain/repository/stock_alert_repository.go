package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockAlertRepository define el puerto de persistencia de alertas de umbral.
// FindActive soporta la deduplicación: a lo sumo una ACTIVE por (item, tipo).
type StockAlertRepository interface {
	Create(ctx context.Context, alert *entity.StockAlert) error
	GetByID(ctx context.Context, id string) (*entity.StockAlert, error)
	// FindActive devuelve la alerta ACTIVE del tipo dado para el item, o nil si no existe.
	FindActive(ctx context.Context, itemID, alertType string) (*entity.StockAlert, error)
	ListActiveByType(ctx context.Context, alertType string, limit, offset int) ([]*entity.StockAlert, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockAlert, error)
	// Acknowledge marca la alerta como reconocida por el operador en el instante
	// indicado. El caso de uso fija el instante para que lo devuelto y lo
	// persistido sean el mismo valor.
	Acknowledge(ctx context.Context, alertID, userID string, at time.Time) error
}
