package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos.
// Append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Append(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByItem devuelve los movimientos de un item ordenados por fecha de creación
	// ascendente (orden de commit para ese item).
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	CountByItem(ctx context.Context, itemID string) (int, error)
}
