package repository

import (
	"time"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// LedgerQuery filtros para consultar el libro de movimientos.
type LedgerQuery struct {
	ProductID string // vacío = todos los productos
	From      *time.Time
	To        *time.Time
	Ascending bool // orden por fecha de creación; false = descendente
	Limit     int
	Offset    int
}

// StockLedgerRepository define el puerto del libro de movimientos de stock.
// Append-only: no existen Update ni Delete; las correcciones son entradas compensatorias.
type StockLedgerRepository interface {
	Create(entry *entity.StockLedgerEntry) error
	List(q LedgerQuery) ([]*entity.StockLedgerEntry, error)
	// SumQuantity reproduce el libro: suma de Quantity de todas las entradas del producto.
	SumQuantity(productID string) (int, error)
	// LastEntry devuelve la entrada más reciente del producto (nil si no hay).
	LastEntry(productID string) (*entity.StockLedgerEntry, error)
}
