package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo implementación de StockAlertRepository sobre PostgreSQL
// (usable con pool o tx). El índice único parcial sobre
// (inventory_item_id, alert_type) WHERE status = 'ACTIVE' respalda en la BD
// la deduplicación que hace el motor de alertas.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

const alertColumns = `id, inventory_item_id, alert_type, threshold_value, status,
		last_triggered, acknowledged_by, acknowledged_at, created_at`

// Create persiste una alerta nueva.
func (r *StockAlertRepo) Create(ctx context.Context, alert *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, inventory_item_id, alert_type, threshold_value,
			status, last_triggered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		alert.ID, alert.InventoryItemID, alert.AlertType, alert.ThresholdValue,
		alert.Status, alert.LastTriggered, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *StockAlertRepo) GetByID(ctx context.Context, id string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE id = $1`
	a, err := scanAlert(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock alert: %w", err)
	}
	return a, nil
}

// FindActive devuelve la alerta ACTIVE del tipo dado para el item, o nil.
func (r *StockAlertRepo) FindActive(ctx context.Context, itemID, alertType string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + `
		FROM stock_alerts
		WHERE inventory_item_id = $1 AND alert_type = $2 AND status = $3`
	a, err := scanAlert(r.q.QueryRow(ctx, query, itemID, alertType, entity.AlertStatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active alert: %w", err)
	}
	return a, nil
}

// ListActiveByType lista alertas ACTIVE del tipo indicado, más antiguas primero.
func (r *StockAlertRepo) ListActiveByType(ctx context.Context, alertType string, limit, offset int) ([]*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + `
		FROM stock_alerts
		WHERE alert_type = $1 AND status = $2
		ORDER BY last_triggered ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, alertType, entity.AlertStatusActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()
	return collectAlerts(rows)
}

// ListByItem lista todas las alertas de un item, recientes primero.
func (r *StockAlertRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + `
		FROM stock_alerts
		WHERE inventory_item_id = $1
		ORDER BY last_triggered DESC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list alerts by item: %w", err)
	}
	defer rows.Close()
	return collectAlerts(rows)
}

// Acknowledge marca la alerta como reconocida en el instante recibido.
func (r *StockAlertRepo) Acknowledge(ctx context.Context, alertID, userID string, at time.Time) error {
	query := `
		UPDATE stock_alerts
		SET status = $2, acknowledged_by = $3, acknowledged_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, alertID, entity.AlertStatusAcknowledged, userID, at)
	if err != nil {
		return fmt.Errorf("acknowledge alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAlert(row pgx.Row) (*entity.StockAlert, error) {
	var a entity.StockAlert
	var ackBy *string
	err := row.Scan(&a.ID, &a.InventoryItemID, &a.AlertType, &a.ThresholdValue,
		&a.Status, &a.LastTriggered, &ackBy, &a.AcknowledgedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if ackBy != nil {
		a.AcknowledgedBy = *ackBy
	}
	return &a, nil
}

func collectAlerts(rows pgx.Rows) ([]*entity.StockAlert, error) {
	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		var ackBy *string
		if err := rows.Scan(&a.ID, &a.InventoryItemID, &a.AlertType, &a.ThresholdValue,
			&a.Status, &a.LastTriggered, &ackBy, &a.AcknowledgedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		if ackBy != nil {
			a.AcknowledgedBy = *ackBy
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
