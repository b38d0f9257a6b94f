package repository

import (
	"time"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// SaleRepository define el puerto del almacén de ventas.
// Append-only: no hay Update ni Delete en el contrato del núcleo.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// GetByIdempotencyKey devuelve la venta asociada a la clave (nil si no existe).
	GetByIdempotencyKey(key string) (*entity.Sale, error)
	// List filtra por CreatedAt con límites inclusivos, más reciente primero.
	List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
}
