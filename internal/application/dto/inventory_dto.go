package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// StockInItemRequest línea de un documento de entrada.
type StockInItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreateStockInRequest body para POST /api/stock-in. El documento nace en draft;
// si Complete es true se completa en la misma llamada (y ahí sí toca stock).
type CreateStockInRequest struct {
	DocumentNumber string               `json:"document_number"`
	SupplierID     string               `json:"supplier_id"`
	Items          []StockInItemRequest `json:"items"`
	Complete       bool                 `json:"complete,omitempty"`
}

// StockInResponse documento de entrada.
type StockInResponse struct {
	ID             string               `json:"id"`
	DocumentNumber string               `json:"document_number"`
	SupplierID     string               `json:"supplier_id"`
	Items          []StockInItemRequest `json:"items"`
	Status         string               `json:"status"`
	CreatedBy      string               `json:"created_by"`
	CreatedAt      time.Time            `json:"created_at"`
	CompletedAt    *time.Time           `json:"completed_at,omitempty"`
}

// StockInToResponse convierte la entidad al DTO de respuesta.
func StockInToResponse(d *entity.StockInDocument) *StockInResponse {
	resp := &StockInResponse{
		ID:             d.ID,
		DocumentNumber: d.DocumentNumber,
		SupplierID:     d.SupplierID,
		Items:          make([]StockInItemRequest, 0, len(d.Items)),
		Status:         d.Status,
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
		CompletedAt:    d.CompletedAt,
	}
	for _, it := range d.Items {
		resp.Items = append(resp.Items, StockInItemRequest{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	return resp
}

// AdjustStockRequest body para POST /api/stock-ledger/adjustments
// (ajuste manual, devolución o merma; el signo va en quantity).
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // adjustment, return, damage
	Quantity  int    `json:"quantity"`
	Reference string `json:"reference"`
}

// LedgerEntryResponse entrada del libro de movimientos.
type LedgerEntryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Balance   int       `json:"balance"`
	Reference string    `json:"reference"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LedgerEntryToResponse convierte la entidad al DTO de respuesta.
func LedgerEntryToResponse(e *entity.StockLedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:        e.ID,
		ProductID: e.ProductID,
		Type:      e.Type,
		Quantity:  e.Quantity,
		Balance:   e.Balance,
		Reference: e.Reference,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}
