package inventory

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repositorios
// de inventario atados a esa tx. Garantiza que stock y libro se mueven juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
	) error) error

	// RunStockIn añade el repositorio de documentos para la transición draft -> completed.
	RunStockIn(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		stockInRepo repository.StockInRepository,
	) error) error
}
