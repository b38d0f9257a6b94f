package memory

import (
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.StockInRepository = (*stockInRepo)(nil)

type stockInRepo struct {
	s      *Store
	locked bool
}

func cloneStockIn(d *entity.StockInDocument) *entity.StockInDocument {
	cp := *d
	cp.Items = append([]entity.StockInItem(nil), d.Items...)
	if d.CompletedAt != nil {
		t := *d.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

func (r *stockInRepo) Create(doc *entity.StockInDocument) error {
	defer r.s.wlock(r.locked)()
	if _, ok := r.s.stockIns[doc.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.stockIns[doc.ID] = cloneStockIn(doc)
	r.s.stockInOrder = append(r.s.stockInOrder, doc.ID)
	return nil
}

func (r *stockInRepo) GetByID(id string) (*entity.StockInDocument, error) {
	defer r.s.rlock(r.locked)()
	d, ok := r.s.stockIns[id]
	if !ok {
		return nil, nil
	}
	return cloneStockIn(d), nil
}

// GetForUpdate: el lock de escritura de la transacción ya serializa.
func (r *stockInRepo) GetForUpdate(id string) (*entity.StockInDocument, error) {
	return r.GetByID(id)
}

func (r *stockInRepo) MarkCompleted(doc *entity.StockInDocument) error {
	defer r.s.wlock(r.locked)()
	old, ok := r.s.stockIns[doc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// La transición es de una sola vía: si ya no está en draft, conflicto.
	if old.Status != entity.StockInStatusDraft {
		return domain.ErrConflict
	}
	r.s.stockIns[doc.ID] = cloneStockIn(doc)
	return nil
}

func (r *stockInRepo) List(limit, offset int) ([]*entity.StockInDocument, error) {
	defer r.s.rlock(r.locked)()
	out := make([]*entity.StockInDocument, 0, len(r.s.stockInOrder))
	for i := len(r.s.stockInOrder) - 1; i >= 0; i-- {
		out = append(out, cloneStockIn(r.s.stockIns[r.s.stockInOrder[i]]))
	}
	return page(out, limit, offset), nil
}
