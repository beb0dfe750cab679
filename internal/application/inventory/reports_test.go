package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func newReportsUseCase(store *fakeStore) *inventory.ReportsUseCase {
	return inventory.NewReportsUseCase(&fakeItemRepo{store: store}, &fakeMovementRepo{store: store})
}

func TestValuation_IgnoraSinCostoEInactivos(t *testing.T) {
	store := newFakeStore()

	// 10 unidades a 2.50.
	store.put(testItem())

	// Sin costo conocido: fuera de la valorización.
	noCost := testItem()
	noCost.ID = "item-2"
	noCost.SKU = "DEF"
	noCost.UnitCost = nil
	store.put(noCost)

	// Inactivo: fuera.
	inactive := testItem()
	inactive.ID = "item-3"
	inactive.SKU = "GHI"
	inactive.IsActive = false
	store.put(inactive)

	v, err := newReportsUseCase(store).Valuation(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(25.0).Equal(v.TotalValue), "esperaba 25.0, obtuve %s", v.TotalValue)
	assert.Equal(t, 10, v.TotalUnits)
	assert.Equal(t, 1, v.ItemCount)
}

func TestItemMovements_OrdenYValidacion(t *testing.T) {
	store := newFakeStore()
	store.put(testItem())
	adjustUC := newAdjustUseCase(store)
	reports := newReportsUseCase(store)

	for _, qty := range []int{5, 3} {
		_, err := adjust(t, adjustUC, "item-1", entity.MovementTypeISSUE, qty)
		require.NoError(t, err)
	}

	movements, total, err := reports.ItemMovements(context.Background(), "item-1", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, 10, movements[0].PreviousStock)
	assert.Equal(t, movements[0].NewStock, movements[1].PreviousStock)

	// El total es el tamaño completo del libro aunque la página sea menor.
	page, total, err := reports.ItemMovements(context.Background(), "item-1", nil, nil, 1, 0)
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, 2, total)

	_, _, err = reports.ItemMovements(context.Background(), "", nil, nil, 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementByID(t *testing.T) {
	store := newFakeStore()
	store.put(testItem())
	adjustUC := newAdjustUseCase(store)
	reports := newReportsUseCase(store)

	_, err := adjust(t, adjustUC, "item-1", entity.MovementTypeRECEIPT, 5)
	require.NoError(t, err)
	require.Len(t, store.movements, 1)

	m, err := reports.MovementByID(context.Background(), store.movements[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeRECEIPT, m.MovementType)
	assert.Equal(t, 10, m.PreviousStock)
	assert.Equal(t, 15, m.NewStock)

	_, err = reports.MovementByID(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = reports.MovementByID(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLowStockYOutOfStock(t *testing.T) {
	store := newFakeStore()
	store.put(testItem()) // stock 10, reorden 5: sano
	low := testItem()
	low.ID = "item-2"
	low.SKU = "DEF"
	low.CurrentStock = 5 // exactamente en el punto de reorden cuenta como bajo
	store.put(low)
	empty := testItem()
	empty.ID = "item-3"
	empty.SKU = "GHI"
	empty.CurrentStock = 0
	store.put(empty)

	reports := newReportsUseCase(store)

	lowStock, err := reports.LowStockItems(context.Background())
	require.NoError(t, err)
	assert.Len(t, lowStock, 2)

	outOfStock, err := reports.OutOfStockItems(context.Background())
	require.NoError(t, err)
	require.Len(t, outOfStock, 1)
	assert.Equal(t, "GHI", outOfStock[0].SKU)
}
