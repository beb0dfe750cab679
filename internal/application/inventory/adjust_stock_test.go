package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func newAdjustUseCase(store *fakeStore) *inventory.AdjustStockUseCase {
	return inventory.NewAdjustStockUseCase(
		&fakeTxRunner{store: store},
		inventory.NewAlertEngine(),
		func() time.Time { return testNow },
	)
}

func adjust(t *testing.T, uc *inventory.AdjustStockUseCase, itemID, movementType string, quantity int) (*entity.InventoryItem, error) {
	t.Helper()
	return uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ItemID:       itemID,
		MovementType: movementType,
		Quantity:     quantity,
		UserID:       "user-1",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Aritmética por tipo de movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_AritmeticaPorTipo(t *testing.T) {
	cases := []struct {
		name         string
		movementType string
		quantity     int
		wantStock    int
	}{
		{"RECEIPT suma", entity.MovementTypeRECEIPT, 5, 15},
		{"RETURN suma", entity.MovementTypeRETURN, 2, 12},
		{"TRANSFER_IN suma", entity.MovementTypeTransferIn, 7, 17},
		{"ISSUE resta", entity.MovementTypeISSUE, 4, 6},
		{"DAMAGE resta", entity.MovementTypeDAMAGE, 1, 9},
		{"EXPIRED resta", entity.MovementTypeEXPIRED, 10, 0},
		{"TRANSFER_OUT resta", entity.MovementTypeTransferOut, 3, 7},
		{"ADJUSTMENT fija valor absoluto", entity.MovementTypeADJUSTMENT, 42, 42},
		{"ADJUSTMENT a cero", entity.MovementTypeADJUSTMENT, 0, 0},
		{"magnitud negativa se interpreta como |quantity|", entity.MovementTypeISSUE, -4, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			store.put(testItem())
			uc := newAdjustUseCase(store)

			item, err := adjust(t, uc, "item-1", tc.movementType, tc.quantity)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStock, item.CurrentStock)

			// El libro captura el antes y el después reales.
			require.Len(t, store.movements, 1)
			mov := store.movements[0]
			assert.Equal(t, 10, mov.PreviousStock)
			assert.Equal(t, tc.wantStock, mov.NewStock)
			assert.Equal(t, tc.movementType, mov.MovementType)
			assert.Equal(t, "user-1", mov.UserID)

			// Y el item persistido coincide con el snapshot del movimiento.
			assert.Equal(t, tc.wantStock, store.items["item-1"].CurrentStock)
		})
	}
}

func TestAdjustStock_TipoDesconocido(t *testing.T) {
	store := newFakeStore()
	store.put(testItem())
	uc := newAdjustUseCase(store)

	_, err := adjust(t, uc, "item-1", "TELEPORT", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
	assert.Empty(t, store.movements)
}

func TestAdjustStock_EntradaInvalida(t *testing.T) {
	store := newFakeStore()
	store.put(testItem())
	uc := newAdjustUseCase(store)

	// Cantidad cero en un movimiento direccional no significa nada.
	_, err := adjust(t, uc, "item-1", entity.MovementTypeRECEIPT, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// ADJUSTMENT fija un absoluto; no existe stock negativo.
	_, err = adjust(t, uc, "item-1", entity.MovementTypeADJUSTMENT, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin actor no hay movimiento.
	_, err = uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ItemID:       "item-1",
		MovementType: entity.MovementTypeRECEIPT,
		Quantity:     5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_ItemInexistenteOInactivo(t *testing.T) {
	store := newFakeStore()
	inactive := testItem()
	inactive.ID = "item-2"
	inactive.SKU = "XYZ"
	inactive.IsActive = false
	store.put(inactive)
	uc := newAdjustUseCase(store)

	_, err := adjust(t, uc, "no-existe", entity.MovementTypeRECEIPT, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = adjust(t, uc, "item-2", entity.MovementTypeRECEIPT, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia: sku=ABC, stock 10, punto de reorden 5
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_EscenarioABC(t *testing.T) {
	store := newFakeStore()
	store.put(testItem())
	uc := newAdjustUseCase(store)

	// ISSUE 6: 10 -> 4, cruza el punto de reorden.
	item, err := adjust(t, uc, "item-1", entity.MovementTypeISSUE, 6)
	require.NoError(t, err)
	assert.Equal(t, 4, item.CurrentStock)

	require.Len(t, store.movements, 1)
	assert.Equal(t, 10, store.movements[0].PreviousStock)
	assert.Equal(t, 4, store.movements[0].NewStock)

	require.Len(t, store.alerts, 1)
	alert := store.alerts[0]
	assert.Equal(t, entity.AlertTypeLowStock, alert.AlertType)
	assert.Equal(t, entity.AlertStatusActive, alert.Status)
	assert.Equal(t, 5, alert.ThresholdValue)
	assert.Equal(t, testNow, alert.LastTriggered)

	// ISSUE 10 sobre stock 4: falla sin tocar nada.
	_, err = adjust(t, uc, "item-1", entity.MovementTypeISSUE, 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 4, store.items["item-1"].CurrentStock)
	assert.Len(t, store.movements, 1)
	assert.Len(t, store.alerts, 1)
}

// Regresión: la implementación de origen escribía el movimiento dos veces por
// ajuste. Aquí debe haber exactamente una entrada del libro por llamada.
func TestAdjustStock_UnSoloMovimientoPorAjuste(t *testing.T) {
	store := newFakeStore()
	store.put(testItem())
	uc := newAdjustUseCase(store)

	for _, mt := range []string{
		entity.MovementTypeRECEIPT,
		entity.MovementTypeISSUE,
		entity.MovementTypeADJUSTMENT,
	} {
		before := len(store.movements)
		_, err := adjust(t, uc, "item-1", mt, 5)
		require.NoError(t, err)
		assert.Equal(t, before+1, len(store.movements), "tipo %s debe agregar exactamente un movimiento", mt)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación del libro
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_ReconciliacionDelLibro(t *testing.T) {
	store := newFakeStore()
	item := testItem()
	store.put(item)
	uc := newAdjustUseCase(store)
	initialStock := item.CurrentStock

	steps := []struct {
		movementType string
		quantity     int
	}{
		{entity.MovementTypeRECEIPT, 20},
		{entity.MovementTypeISSUE, 8},
		{entity.MovementTypeDAMAGE, 2},
		{entity.MovementTypeADJUSTMENT, 25},
		{entity.MovementTypeTransferOut, 5},
		{entity.MovementTypeRETURN, 1},
	}
	for _, s := range steps {
		_, err := adjust(t, uc, "item-1", s.movementType, s.quantity)
		require.NoError(t, err)
	}

	// Reproducir el libro desde el stock inicial debe reconstruir el actual.
	require.Len(t, store.movements, len(steps))
	replayed := initialStock
	for n, mov := range store.movements {
		assert.Equal(t, replayed, mov.PreviousStock, "movimiento %d no encadena", n)
		replayed = mov.NewStock
	}
	assert.Equal(t, store.items["item-1"].CurrentStock, replayed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante reservado <= actual y fallos de infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_NoBajaDeLoReservado(t *testing.T) {
	store := newFakeStore()
	item := testItem()
	item.CurrentStock = 5
	item.ReservedStock = 3
	store.put(item)
	uc := newAdjustUseCase(store)

	// 5 - 3 = 2 físico quedaría bajo los 3 reservados.
	_, err := adjust(t, uc, "item-1", entity.MovementTypeISSUE, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Un ADJUSTMENT tampoco puede dejar el stock bajo lo reservado.
	_, err = adjust(t, uc, "item-1", entity.MovementTypeADJUSTMENT, 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Descontar dentro del margen disponible sí procede.
	updated, err := adjust(t, uc, "item-1", entity.MovementTypeISSUE, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.CurrentStock)
	assert.Equal(t, 3, updated.ReservedStock)
}

func TestAdjustStock_FalloDeTransaccion(t *testing.T) {
	store := newFakeStore()
	store.put(testItem())
	uc := inventory.NewAdjustStockUseCase(
		&fakeTxRunner{store: store, beginErr: domain.ErrTransactionFailure},
		inventory.NewAlertEngine(),
		func() time.Time { return testNow },
	)

	_, err := adjust(t, uc, "item-1", entity.MovementTypeRECEIPT, 5)
	assert.ErrorIs(t, err, domain.ErrTransactionFailure)
	assert.Equal(t, 10, store.items["item-1"].CurrentStock)
	assert.Empty(t, store.movements)
}
