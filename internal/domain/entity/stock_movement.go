package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeRECEIPT     = "RECEIPT"      // entrada por recepción de compra
	MovementTypeRETURN      = "RETURN"       // entrada por devolución de cliente
	MovementTypeTransferIn  = "TRANSFER_IN"  // entrada por traslado
	MovementTypeISSUE       = "ISSUE"        // salida por venta/consumo
	MovementTypeDAMAGE      = "DAMAGE"       // salida por daño
	MovementTypeEXPIRED     = "EXPIRED"      // salida por vencimiento
	MovementTypeTransferOut = "TRANSFER_OUT" // salida por traslado
	MovementTypeADJUSTMENT  = "ADJUSTMENT"   // ajuste absoluto (conteo físico/corrección)
)

// MovementDirection clasifica un tipo de movimiento: +1 entrada, -1 salida,
// 0 ajuste absoluto. Tipo desconocido devuelve false.
func MovementDirection(movementType string) (int, bool) {
	switch movementType {
	case MovementTypeRECEIPT, MovementTypeRETURN, MovementTypeTransferIn:
		return 1, true
	case MovementTypeISSUE, MovementTypeDAMAGE, MovementTypeEXPIRED, MovementTypeTransferOut:
		return -1, true
	case MovementTypeADJUSTMENT:
		return 0, true
	}
	return 0, false
}

// StockMovement es una entrada del libro de movimientos: un cambio de stock
// ya comprometido, con snapshot del antes y el después. Inmutable una vez
// escrita (nunca se actualiza ni se borra; es la pista de auditoría).
// Para cualquier item, la secuencia por CreatedAt debe encadenar:
// PreviousStock del movimiento n igual a NewStock del n-1.
type StockMovement struct {
	ID              string
	InventoryItemID string
	MovementType    string
	Quantity        int // magnitud según la entregó el caller; en ADJUSTMENT es el valor absoluto fijado
	PreviousStock   int
	NewStock        int
	ReferenceNumber string // correlación externa: orden de compra, factura, etc.
	Notes           string
	UserID          string
	IPAddress       string
	CreatedAt       time.Time
}
