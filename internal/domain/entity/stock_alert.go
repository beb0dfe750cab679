package entity

import "time"

// Tipos de alerta de umbral.
const (
	AlertTypeLowStock      = "LOW_STOCK"
	AlertTypeOutOfStock    = "OUT_OF_STOCK"
	AlertTypeOverstock     = "OVERSTOCK"
	AlertTypeExpiryWarning = "EXPIRY_WARNING"
)

// Estados de una alerta.
const (
	AlertStatusActive       = "ACTIVE"
	AlertStatusAcknowledged = "ACKNOWLEDGED"
	AlertStatusResolved     = "RESOLVED"
)

// StockAlert es una notificación de cruce de umbral, persistida y
// deduplicada: a lo sumo una alerta ACTIVE por (item, tipo) a la vez.
// La crea el motor de alertas dentro de la transacción de ajuste; un
// operador la pasa a ACKNOWLEDGED; RESOLVED es responsabilidad de consumidores
// aguas abajo.
type StockAlert struct {
	ID              string
	InventoryItemID string
	AlertType       string
	ThresholdValue  int
	Status          string
	LastTriggered   time.Time
	AcknowledgedBy  string
	AcknowledgedAt  *time.Time
	CreatedAt       time.Time
}
