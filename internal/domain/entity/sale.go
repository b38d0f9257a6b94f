package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados. cash se liquida localmente (efectivo recibido/cambio);
// el resto se delega al colaborador externo de pagos antes de aplicar la venta.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodPromptPay    = "promptpay"
)

// ValidPaymentMethod indica si el método de pago es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodPromptPay:
		return true
	}
	return false
}

// DelegatedPaymentMethod indica si el método requiere autorización del gateway externo.
func DelegatedPaymentMethod(m string) bool {
	return m == PaymentMethodCard || m == PaymentMethodBankTransfer || m == PaymentMethodPromptPay
}

// SaleItem es una línea de venta con snapshot de nombre y precio unitario al momento
// de la venta: cambios posteriores de precio no alteran ventas históricas.
type SaleItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Sale es el registro inmutable de una venta confirmada.
// Se crea exactamente una vez en un commit exitoso; las correcciones se hacen con
// entradas compensatorias en el libro de movimientos, nunca editando la venta.
type Sale struct {
	ID             string
	Items          []SaleItem
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal // Subtotal - Discount - PointsUsed
	PaymentMethod  string
	CashierID      string
	CashierName    string
	MemberID       string // vacío = venta sin miembro
	MemberPhone    string
	PointsUsed     int
	PointsEarned   int
	CashReceived   *decimal.Decimal // solo pago en efectivo
	Change         *decimal.Decimal
	IdempotencyKey string // opcional; reenvíos con la misma clave devuelven la venta ya creada
	CreatedAt      time.Time
}
