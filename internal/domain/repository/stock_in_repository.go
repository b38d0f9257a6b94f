package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// StockInRepository define el puerto de los documentos de entrada de mercancía.
type StockInRepository interface {
	Create(doc *entity.StockInDocument) error
	GetByID(id string) (*entity.StockInDocument, error)
	List(limit, offset int) ([]*entity.StockInDocument, error)

	// GetForUpdate obtiene el documento y bloquea la fila para la transición de estado.
	GetForUpdate(id string) (*entity.StockInDocument, error)
	// MarkCompleted fija status=completed y completed_at. La transición es de una sola vía.
	MarkCompleted(doc *entity.StockInDocument) error
}
