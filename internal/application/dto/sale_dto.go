package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// SaleLineRequest línea del carrito: el cliente solo envía producto y cantidad;
// nombre y precio se toman del catálogo al momento del commit.
type SaleLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CommitSaleRequest body para POST /api/sales.
type CommitSaleRequest struct {
	Items          []SaleLineRequest `json:"items"`
	PaymentMethod  string            `json:"payment_method"`
	MemberID       string            `json:"member_id,omitempty"`
	MemberPhone    string            `json:"member_phone,omitempty"`
	Discount       decimal.Decimal   `json:"discount"`
	PointsToUse    int               `json:"points_to_use"`
	CashReceived   *decimal.Decimal  `json:"cash_received,omitempty"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
}

// SaleItemResponse línea de venta con snapshots.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleResponse venta confirmada (respuesta 201 del commit y elemento de listados).
type SaleResponse struct {
	ID            string             `json:"id"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CashierID     string             `json:"cashier_id"`
	CashierName   string             `json:"cashier_name"`
	MemberID      string             `json:"member_id,omitempty"`
	MemberPhone   string             `json:"member_phone,omitempty"`
	PointsUsed    int                `json:"points_used"`
	PointsEarned  int                `json:"points_earned"`
	CashReceived  *decimal.Decimal   `json:"cash_received,omitempty"`
	Change        *decimal.Decimal   `json:"change,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleToResponse convierte la entidad al DTO de respuesta.
func SaleToResponse(s *entity.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:            s.ID,
		Items:         make([]SaleItemResponse, 0, len(s.Items)),
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CashierID:     s.CashierID,
		CashierName:   s.CashierName,
		MemberID:      s.MemberID,
		MemberPhone:   s.MemberPhone,
		PointsUsed:    s.PointsUsed,
		PointsEarned:  s.PointsEarned,
		CashReceived:  s.CashReceived,
		Change:        s.Change,
		CreatedAt:     s.CreatedAt,
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return resp
}
