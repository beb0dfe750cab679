package inventory_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Emulan el comportamiento
// relevante de los adaptadores PostgreSQL: GetForUpdate devuelve una copia (la
// mutación solo se ve tras UpdateStock), Create con SKU repetido devuelve
// ErrDuplicateSKU y GetForUpdate excluye items inactivos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	items     map[string]*entity.InventoryItem
	movements []*entity.StockMovement
	alerts    []*entity.StockAlert
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]*entity.InventoryItem)}
}

func (s *fakeStore) put(item *entity.InventoryItem) {
	cp := *item
	s.items[item.ID] = &cp
}

func copyItem(item *entity.InventoryItem) *entity.InventoryItem {
	if item == nil {
		return nil
	}
	cp := *item
	return &cp
}

// ── InventoryItemRepository ──────────────────────────────────────────────────

type fakeItemRepo struct{ store *fakeStore }

func (r *fakeItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	for _, existing := range r.store.items {
		if existing.SKU == item.SKU {
			return domain.ErrDuplicateSKU
		}
	}
	r.store.put(item)
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	return copyItem(r.store.items[id]), nil
}

func (r *fakeItemRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	for _, item := range r.store.items {
		if item.SKU == sku {
			return copyItem(item), nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(_ context.Context, id string) (*entity.InventoryItem, error) {
	item, ok := r.store.items[id]
	if !ok || !item.IsActive {
		return nil, nil
	}
	return copyItem(item), nil
}

func (r *fakeItemRepo) UpdateStock(_ context.Context, item *entity.InventoryItem) error {
	if _, ok := r.store.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.put(item)
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	if _, ok := r.store.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.put(item)
	return nil
}

func (r *fakeItemRepo) Deactivate(_ context.Context, id string) error {
	item, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.IsActive = false
	return nil
}

func (r *fakeItemRepo) List(_ context.Context, filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for _, item := range r.store.items {
		if !item.IsActive {
			continue
		}
		if filter.Query != "" &&
			!strings.Contains(item.SKU, filter.Query) && !strings.Contains(item.Name, filter.Query) {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Supplier != "" && item.Supplier != filter.Supplier {
			continue
		}
		if filter.LowStock && !item.IsLowStock() {
			continue
		}
		if filter.OutOfStock && !item.IsOutOfStock() {
			continue
		}
		list = append(list, copyItem(item))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return list, nil
}

func (r *fakeItemRepo) FindLowStock(_ context.Context) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for _, item := range r.store.items {
		if item.IsActive && item.IsLowStock() {
			list = append(list, copyItem(item))
		}
	}
	return list, nil
}

func (r *fakeItemRepo) FindOutOfStock(_ context.Context) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for _, item := range r.store.items {
		if item.IsActive && item.IsOutOfStock() {
			list = append(list, copyItem(item))
		}
	}
	return list, nil
}

func (r *fakeItemRepo) Valuation(_ context.Context) (*repository.InventoryValuation, error) {
	v := &repository.InventoryValuation{TotalValue: decimal.Zero}
	for _, item := range r.store.items {
		if !item.IsActive || item.UnitCost == nil {
			continue
		}
		v.TotalValue = v.TotalValue.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.CurrentStock))))
		v.TotalUnits += item.CurrentStock
		v.ItemCount++
	}
	return v, nil
}

// ── StockMovementRepository ──────────────────────────────────────────────────

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range r.store.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByItem(_ context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.InventoryItemID != itemID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeMovementRepo) CountByItem(_ context.Context, itemID string) (int, error) {
	count := 0
	for _, m := range r.store.movements {
		if m.InventoryItemID == itemID {
			count++
		}
	}
	return count, nil
}

// ── StockAlertRepository ─────────────────────────────────────────────────────

type fakeAlertRepo struct{ store *fakeStore }

func (r *fakeAlertRepo) Create(_ context.Context, alert *entity.StockAlert) error {
	cp := *alert
	r.store.alerts = append(r.store.alerts, &cp)
	return nil
}

func (r *fakeAlertRepo) GetByID(_ context.Context, id string) (*entity.StockAlert, error) {
	for _, a := range r.store.alerts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) FindActive(_ context.Context, itemID, alertType string) (*entity.StockAlert, error) {
	for _, a := range r.store.alerts {
		if a.InventoryItemID == itemID && a.AlertType == alertType && a.Status == entity.AlertStatusActive {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) ListActiveByType(_ context.Context, alertType string, limit, offset int) ([]*entity.StockAlert, error) {
	var list []*entity.StockAlert
	for _, a := range r.store.alerts {
		if a.AlertType == alertType && a.Status == entity.AlertStatusActive {
			cp := *a
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeAlertRepo) ListByItem(_ context.Context, itemID string) ([]*entity.StockAlert, error) {
	var list []*entity.StockAlert
	for _, a := range r.store.alerts {
		if a.InventoryItemID == itemID {
			cp := *a
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeAlertRepo) Acknowledge(_ context.Context, alertID, userID string, at time.Time) error {
	for _, a := range r.store.alerts {
		if a.ID == alertID {
			a.Status = entity.AlertStatusAcknowledged
			a.AcknowledgedBy = userID
			a.AcknowledgedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta fn contra el mismo store compartido. Los errores de
// negocio del coordinador se detectan antes de cualquier escritura, así que el
// estado queda intacto tras un fallo, igual que con el rollback real.
type fakeTxRunner struct {
	store    *fakeStore
	beginErr error
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	if r.beginErr != nil {
		return r.beginErr
	}
	return fn(&fakeItemRepo{store: r.store}, &fakeMovementRepo{store: r.store}, &fakeAlertRepo{store: r.store})
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func intPtr(n int) *int { return &n }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

// testItem item activo con stock 10 y punto de reorden 5 (el escenario del
// README de pruebas: sku=ABC).
func testItem() *entity.InventoryItem {
	cost := decimal.NewFromFloat(2.50)
	return &entity.InventoryItem{
		ID:           "item-1",
		SKU:          "ABC",
		Name:         "Alimento premium para perro 10kg",
		Category:     "alimentos",
		Supplier:     "acme-pets",
		CurrentStock: 10,
		ReorderPoint: intPtr(5),
		UnitCost:     &cost,
		IsActive:     true,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
