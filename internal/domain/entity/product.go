package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es el campo cacheado del inventario: el libro de movimientos (StockLedgerEntry)
// es la fuente de auditoría y ambos deben coincidir en todo momento.
// El núcleo de ventas solo muta Stock dentro de una transacción con bloqueo de fila,
// escribiendo siempre la entrada de libro correspondiente.
type Product struct {
	ID          string
	Name        string
	Barcode     string
	QRCode      string
	Price       decimal.Decimal // precio de venta (unidad monetaria, >= 0)
	Stock       int             // invariante: >= 0
	Category    string
	Supplier    string
	Description string
	ImageURL    string
	Tags        []string
	Rating      float64
	Reviews     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
