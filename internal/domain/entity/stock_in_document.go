package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un documento de entrada de mercancía.
// Máquina de estados de una sola vía: draft -> completed. No existe completed -> draft.
const (
	StockInStatusDraft     = "draft"
	StockInStatusCompleted = "completed"
)

// StockInItem es una línea de un documento de entrada (compra a proveedor).
type StockInItem struct {
	ProductID string
	Quantity  int // > 0
	UnitCost  decimal.Decimal
}

// StockInDocument representa una entrada de mercancía.
// Mientras está en draft no toca stock; al pasar a completed se registra exactamente
// una entrada de libro tipo purchase por línea, dentro de una transacción.
type StockInDocument struct {
	ID             string
	DocumentNumber string
	SupplierID     string
	Items          []StockInItem
	Status         string
	CreatedBy      string
	CreatedAt      time.Time
	CompletedAt    *time.Time
}
