package memory

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	s      *Store
	locked bool
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	return &cp
}

func (r *productRepo) Create(product *entity.Product) error {
	defer r.s.wlock(r.locked)()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	if product.Barcode != "" {
		for _, p := range r.s.products {
			if p.Barcode == product.Barcode {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	defer r.s.rlock(r.locked)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *productRepo) GetByBarcode(code string) (*entity.Product, error) {
	defer r.s.rlock(r.locked)()
	for _, p := range r.s.products {
		if p.Barcode == code || p.QRCode == code {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// GetForUpdate: dentro de la transacción el lock de escritura ya serializa;
// no hay bloqueo de fila que tomar.
func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) Update(product *entity.Product) error {
	defer r.s.wlock(r.locked)()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	if product.Barcode != "" {
		for id, p := range r.s.products {
			if id != product.ID && p.Barcode == product.Barcode {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepo) UpdateStock(id string, stock int, updatedAt time.Time) error {
	defer r.s.wlock(r.locked)()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := cloneProduct(p)
	cp.Stock = stock
	cp.UpdatedAt = updatedAt
	r.s.products[id] = cp
	return nil
}

func (r *productRepo) Delete(id string) error {
	defer r.s.wlock(r.locked)()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *productRepo) List(q repository.ProductQuery) ([]*entity.Product, int, error) {
	defer r.s.rlock(r.locked)()
	var matched []*entity.Product
	needle := fold(q.Search)
	for _, p := range r.s.products {
		if !matchesQuery(p, q, needle) {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := len(matched)
	if q.Offset > 0 {
		if q.Offset >= total {
			return nil, total, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func matchesQuery(p *entity.Product, q repository.ProductQuery, needle string) bool {
	if needle != "" {
		hay := fold(p.Name) + " " + fold(p.Description) + " " + p.Barcode + " " + p.QRCode
		for _, t := range p.Tags {
			hay += " " + fold(t)
		}
		if !strings.Contains(hay, needle) {
			return false
		}
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Barcode != "" && p.Barcode != q.Barcode && p.QRCode != q.Barcode {
		return false
	}
	if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}
	if q.InStock && p.Stock <= 0 {
		return false
	}
	return true
}

// fold normaliza para búsqueda: minúsculas y sin diacríticos ("café" ~ "cafe").
func fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
