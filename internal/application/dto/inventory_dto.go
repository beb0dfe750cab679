package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// RegisterItemRequest body para POST /api/inventory/items.
type RegisterItemRequest struct {
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	Supplier      string           `json:"supplier,omitempty"`
	InitialStock  int              `json:"initial_stock"`
	ReorderPoint  *int             `json:"reorder_point,omitempty"`
	MaxStockLevel *int             `json:"max_stock_level,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
}

// UpdateItemRequest body para PUT /api/inventory/items/:id.
// Sin campos de stock: el stock solo se mueve vía ajustes.
type UpdateItemRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	Supplier      string           `json:"supplier,omitempty"`
	ReorderPoint  *int             `json:"reorder_point,omitempty"`
	MaxStockLevel *int             `json:"max_stock_level,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/items/:id/adjust.
type AdjustStockRequest struct {
	MovementType    string `json:"movement_type"`
	Quantity        int    `json:"quantity"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// ReserveStockRequest body para POST /api/inventory/items/:id/reserve y /release.
type ReserveStockRequest struct {
	Quantity int `json:"quantity"`
}

// ItemResponse representación de un item en respuestas, con derivados calculados.
type ItemResponse struct {
	ID             string           `json:"id"`
	SKU            string           `json:"sku"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Category       string           `json:"category,omitempty"`
	Supplier       string           `json:"supplier,omitempty"`
	CurrentStock   int              `json:"current_stock"`
	ReservedStock  int              `json:"reserved_stock"`
	AvailableStock int              `json:"available_stock"`
	ReorderPoint   *int             `json:"reorder_point,omitempty"`
	MaxStockLevel  *int             `json:"max_stock_level,omitempty"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	SellingPrice   *decimal.Decimal `json:"selling_price,omitempty"`
	IsLowStock     bool             `json:"is_low_stock"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// NewItemResponse mapea la entidad a su representación HTTP.
func NewItemResponse(item *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:             item.ID,
		SKU:            item.SKU,
		Name:           item.Name,
		Description:    item.Description,
		Category:       item.Category,
		Supplier:       item.Supplier,
		CurrentStock:   item.CurrentStock,
		ReservedStock:  item.ReservedStock,
		AvailableStock: item.AvailableStock(),
		ReorderPoint:   item.ReorderPoint,
		MaxStockLevel:  item.MaxStockLevel,
		UnitCost:       item.UnitCost,
		SellingPrice:   item.SellingPrice,
		IsLowStock:     item.IsLowStock(),
		IsActive:       item.IsActive,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// MovementResponse entrada del libro en respuestas.
type MovementResponse struct {
	ID              string    `json:"id"`
	InventoryItemID string    `json:"inventory_item_id"`
	MovementType    string    `json:"movement_type"`
	Quantity        int       `json:"quantity"`
	PreviousStock   int       `json:"previous_stock"`
	NewStock        int       `json:"new_stock"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	UserID          string    `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewMovementResponse mapea la entidad a su representación HTTP.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		InventoryItemID: m.InventoryItemID,
		MovementType:    m.MovementType,
		Quantity:        m.Quantity,
		PreviousStock:   m.PreviousStock,
		NewStock:        m.NewStock,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		UserID:          m.UserID,
		CreatedAt:       m.CreatedAt,
	}
}

// AlertResponse alerta de umbral en respuestas.
type AlertResponse struct {
	ID              string     `json:"id"`
	InventoryItemID string     `json:"inventory_item_id"`
	AlertType       string     `json:"alert_type"`
	ThresholdValue  int        `json:"threshold_value"`
	Status          string     `json:"status"`
	LastTriggered   time.Time  `json:"last_triggered"`
	AcknowledgedBy  string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt  *time.Time `json:"acknowledged_at,omitempty"`
}

// NewAlertResponse mapea la entidad a su representación HTTP.
func NewAlertResponse(a *entity.StockAlert) AlertResponse {
	return AlertResponse{
		ID:              a.ID,
		InventoryItemID: a.InventoryItemID,
		AlertType:       a.AlertType,
		ThresholdValue:  a.ThresholdValue,
		Status:          a.Status,
		LastTriggered:   a.LastTriggered,
		AcknowledgedBy:  a.AcknowledgedBy,
		AcknowledgedAt:  a.AcknowledgedAt,
	}
}

// ValuationResponse resultado de GET /api/inventory/valuation.
type ValuationResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
	TotalUnits int             `json:"total_units"`
	ItemCount  int             `json:"item_count"`
}
