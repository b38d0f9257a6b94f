package sale

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Es la frontera de atomicidad del commit de venta: o se aplican
// stock + libro + miembro + venta completos, o no queda ningún efecto observable.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		memberRepo repository.MemberRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// PaymentRequest solicitud de autorización al colaborador externo de pagos.
type PaymentRequest struct {
	Reference string          // id de la venta en curso
	Method    string          // card, bank_transfer, promptpay
	Amount    decimal.Decimal // total a cobrar
}

// PaymentGateway colaborador externo de pagos. Authorize debe respetar el ctx
// (timeout/cancelación) y devolver domain.ErrPaymentDeclined en rechazo explícito.
// El motor nunca reintenta una autorización: un reintento es una solicitud nueva
// del cliente (riesgo de doble cobro).
type PaymentGateway interface {
	Authorize(ctx context.Context, req PaymentRequest) error
}
