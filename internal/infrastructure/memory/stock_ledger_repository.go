package memory

import (
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*ledgerRepo)(nil)

// ledgerRepo libro de movimientos en memoria. El slice subyacente es append-only
// y las entradas nunca se mutan, así que el snapshot de transacción solo copia
// la cabecera del slice.
type ledgerRepo struct {
	s      *Store
	locked bool
}

func (r *ledgerRepo) Create(entry *entity.StockLedgerEntry) error {
	defer r.s.wlock(r.locked)()
	cp := *entry
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

func (r *ledgerRepo) List(q repository.LedgerQuery) ([]*entity.StockLedgerEntry, error) {
	defer r.s.rlock(r.locked)()
	var matched []*entity.StockLedgerEntry
	for _, e := range r.s.ledger {
		if q.ProductID != "" && e.ProductID != q.ProductID {
			continue
		}
		if q.From != nil && e.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && e.CreatedAt.After(*q.To) {
			continue
		}
		cp := *e
		matched = append(matched, &cp)
	}
	// El slice fuente ya está en orden de inserción (ascendente).
	if !q.Ascending {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	return page(matched, q.Limit, q.Offset), nil
}

func (r *ledgerRepo) SumQuantity(productID string) (int, error) {
	defer r.s.rlock(r.locked)()
	sum := 0
	for _, e := range r.s.ledger {
		if e.ProductID == productID {
			sum += e.Quantity
		}
	}
	return sum, nil
}

func (r *ledgerRepo) LastEntry(productID string) (*entity.StockLedgerEntry, error) {
	defer r.s.rlock(r.locked)()
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		if r.s.ledger[i].ProductID == productID {
			cp := *r.s.ledger[i]
			return &cp, nil
		}
	}
	return nil, nil
}
