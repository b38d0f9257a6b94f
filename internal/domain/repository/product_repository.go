package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// ProductQuery filtros de búsqueda del catálogo.
type ProductQuery struct {
	Search   string // texto libre: nombre, descripción, barcode, qr, tags
	Category string
	Barcode  string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  bool // true = solo stock > 0
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock solo deben usarse dentro de una transacción del TxRunner:
// son la única vía por la que el núcleo muta el campo Stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(q ProductQuery) ([]*entity.Product, int, error)

	// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock fija el stock resultante; siempre va acompañado de una entrada de libro.
	UpdateStock(id string, stock int, updatedAt time.Time) error
}
