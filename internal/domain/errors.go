package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los mapean a códigos estables; la infraestructura los
// produce a partir de SQLSTATE cuando aplica (23505, 55P03).
var (
	ErrNotFound                   = errors.New("recurso no encontrado")
	ErrInvalidInput               = errors.New("entrada inválida")
	ErrDuplicateSKU               = errors.New("el SKU ya está registrado")
	ErrInsufficientStock          = errors.New("stock insuficiente")
	ErrInsufficientAvailableStock = errors.New("stock disponible insuficiente")
	ErrInvalidMovementType        = errors.New("tipo de movimiento inválido")
	ErrLockTimeout                = errors.New("timeout esperando el bloqueo de la fila")
	ErrTransactionFailure         = errors.New("fallo de transacción")
)
