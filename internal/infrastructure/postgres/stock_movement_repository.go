package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación append-only del libro de movimientos sobre
// PostgreSQL (usable con pool o tx). No hay UPDATE ni DELETE contra
// stock_movements en todo el código: pista de auditoría.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append persiste una entrada del libro.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, inventory_item_id, movement_type, quantity,
			previous_stock, new_stock, reference_number, notes, user_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	reference := nullable(m.ReferenceNumber)
	notes := nullable(m.Notes)
	ip := nullable(m.IPAddress)
	_, err := r.q.Exec(ctx, query,
		m.ID, m.InventoryItemID, m.MovementType, m.Quantity,
		m.PreviousStock, m.NewStock, reference, notes, m.UserID, ip, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, inventory_item_id, movement_type, quantity, previous_stock, new_stock,
			reference_number, notes, user_id, ip_address, created_at
		FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByItem lista los movimientos de un item en orden de commit (created_at
// ascendente), con rango de fechas opcional.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, inventory_item_id, movement_type, quantity, previous_stock, new_stock,
			reference_number, notes, user_id, ip_address, created_at
		FROM stock_movements WHERE inventory_item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var reference, notes, ip *string
		if err := rows.Scan(&m.ID, &m.InventoryItemID, &m.MovementType, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &reference, &notes, &m.UserID, &ip, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		fillOptional(&m, reference, notes, ip)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByItem número de entradas del libro para un item.
func (r *StockMovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_movements WHERE inventory_item_id = $1`, itemID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements by item: %w", err)
	}
	return count, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var reference, notes, ip *string
	err := row.Scan(&m.ID, &m.InventoryItemID, &m.MovementType, &m.Quantity,
		&m.PreviousStock, &m.NewStock, &reference, &notes, &m.UserID, &ip, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	fillOptional(&m, reference, notes, ip)
	return &m, nil
}

func fillOptional(m *entity.StockMovement, reference, notes, ip *string) {
	if reference != nil {
		m.ReferenceNumber = *reference
	}
	if notes != nil {
		m.Notes = *notes
	}
	if ip != nil {
		m.IPAddress = *ip
	}
}

// nullable convierte string vacío a NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
