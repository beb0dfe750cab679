package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, sku, name, description, category, supplier,
		current_stock, reserved_stock, reorder_point, max_stock_level,
		unit_cost, selling_price, is_active, created_at, updated_at`

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.SKU, &i.Name, &i.Description, &i.Category, &i.Supplier,
		&i.CurrentStock, &i.ReservedStock, &i.ReorderPoint, &i.MaxStockLevel,
		&i.UnitCost, &i.SellingPrice, &i.IsActive, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste un item nuevo. SKU duplicado -> domain.ErrDuplicateSKU.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, sku, name, description, category, supplier,
			current_stock, reserved_stock, reorder_point, max_stock_level,
			unit_cost, selling_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SKU, item.Name, item.Description, item.Category, item.Supplier,
		item.CurrentStock, item.ReservedStock, item.ReorderPoint, item.MaxStockLevel,
		item.UnitCost, item.SellingPrice, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID (activo o no; el caller decide).
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// GetBySKU obtiene un item por SKU.
func (r *InventoryItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE sku = $1`
	item, err := scanItem(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item by sku: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene el item activo y bloquea su fila (SELECT FOR UPDATE).
// lock_timeout agotado -> domain.ErrLockTimeout.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 AND is_active FOR UPDATE`
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockNotAvailable(err) {
			return nil, domain.ErrLockTimeout
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return item, nil
}

// UpdateStock persiste current_stock y reserved_stock. Solo lo llama el
// coordinador dentro de su transacción.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET current_stock = $2, reserved_stock = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, item.ID, item.CurrentStock, item.ReservedStock, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza metadatos, umbrales y precios. No toca current_stock ni
// reserved_stock (se mueven vía movimientos).
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, description = $3, category = $4, supplier = $5,
			reorder_point = $6, max_stock_level = $7, unit_cost = $8, selling_price = $9,
			updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Category, item.Supplier,
		item.ReorderPoint, item.MaxStockLevel, item.UnitCost, item.SellingPrice,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate borrado lógico: is_active = false. La fila permanece porque el
// libro de movimientos la referencia.
func (r *InventoryItemRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET is_active = false, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deactivate inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List búsqueda de items activos con filtros opcionales y paginación.
func (r *InventoryItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE is_active`
	args := []any{}
	pos := 1
	if filter.Query != "" {
		query += fmt.Sprintf(" AND (sku ILIKE $%d OR name ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Query+"%")
		pos++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.Supplier != "" {
		query += fmt.Sprintf(" AND supplier = $%d", pos)
		args = append(args, filter.Supplier)
		pos++
	}
	if filter.LowStock {
		query += " AND reorder_point IS NOT NULL AND current_stock <= reorder_point"
	}
	if filter.OutOfStock {
		query += " AND current_stock <= 0"
	}
	query += fmt.Sprintf(" ORDER BY sku LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// FindLowStock items activos con punto de reorden definido y stock en o bajo ese punto.
func (r *InventoryItemRepo) FindLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE is_active AND reorder_point IS NOT NULL AND current_stock <= reorder_point
		ORDER BY (reorder_point - current_stock) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find low stock items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// FindOutOfStock items activos sin stock físico.
func (r *InventoryItemRepo) FindOutOfStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE is_active AND current_stock <= 0
		ORDER BY sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find out of stock items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// Valuation agrega sum(current_stock*unit_cost), unidades e items sobre
// activos con costo conocido.
func (r *InventoryItemRepo) Valuation(ctx context.Context) (*repository.InventoryValuation, error) {
	query := `
		SELECT COALESCE(SUM(current_stock * unit_cost), 0),
			COALESCE(SUM(current_stock), 0),
			COUNT(*)
		FROM inventory_items
		WHERE is_active AND unit_cost IS NOT NULL`
	var v repository.InventoryValuation
	if err := r.q.QueryRow(ctx, query).Scan(&v.TotalValue, &v.TotalUnits, &v.ItemCount); err != nil {
		return nil, fmt.Errorf("inventory valuation: %w", err)
	}
	return &v, nil
}

func collectItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(
			&i.ID, &i.SKU, &i.Name, &i.Description, &i.Category, &i.Supplier,
			&i.CurrentStock, &i.ReservedStock, &i.ReorderPoint, &i.MaxStockLevel,
			&i.UnitCost, &i.SellingPrice, &i.IsActive, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
