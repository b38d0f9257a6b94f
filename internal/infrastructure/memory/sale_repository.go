package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*saleRepo)(nil)

type saleRepo struct {
	s      *Store
	locked bool
}

func cloneSale(s *entity.Sale) *entity.Sale {
	cp := *s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	cp.CashReceived = cloneDecimal(s.CashReceived)
	cp.Change = cloneDecimal(s.Change)
	return &cp
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}

func (r *saleRepo) Create(sale *entity.Sale) error {
	defer r.s.wlock(r.locked)()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	if sale.IdempotencyKey != "" {
		if _, ok := r.s.saleByIdemKey[sale.IdempotencyKey]; ok {
			return domain.ErrDuplicate
		}
		r.s.saleByIdemKey[sale.IdempotencyKey] = sale.ID
	}
	r.s.sales[sale.ID] = cloneSale(sale)
	r.s.saleOrder = append(r.s.saleOrder, sale.ID)
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	defer r.s.rlock(r.locked)()
	s, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(s), nil
}

func (r *saleRepo) GetByIdempotencyKey(key string) (*entity.Sale, error) {
	defer r.s.rlock(r.locked)()
	id, ok := r.s.saleByIdemKey[key]
	if !ok {
		return nil, nil
	}
	return cloneSale(r.s.sales[id]), nil
}

func (r *saleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	defer r.s.rlock(r.locked)()
	var matched []*entity.Sale
	// saleOrder va en orden de inserción; se recorre al revés (más reciente primero).
	for i := len(r.s.saleOrder) - 1; i >= 0; i-- {
		s := r.s.sales[r.s.saleOrder[i]]
		if from != nil && s.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && s.CreatedAt.After(*to) {
			continue
		}
		matched = append(matched, cloneSale(s))
	}
	return page(matched, limit, offset), nil
}
