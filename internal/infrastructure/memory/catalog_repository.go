package memory

import (
	"sort"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.CategoryRepository = (*categoryRepo)(nil)
var _ repository.SupplierRepository = (*supplierRepo)(nil)
var _ repository.UserRepository = (*userRepo)(nil)

type categoryRepo struct {
	s      *Store
	locked bool
}

func (r *categoryRepo) Create(category *entity.Category) error {
	defer r.s.wlock(r.locked)()
	for _, c := range r.s.categories {
		if c.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) GetByID(id string) (*entity.Category, error) {
	defer r.s.rlock(r.locked)()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) List() ([]*entity.Category, error) {
	defer r.s.rlock(r.locked)()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type supplierRepo struct {
	s      *Store
	locked bool
}

func (r *supplierRepo) Create(supplier *entity.Supplier) error {
	defer r.s.wlock(r.locked)()
	cp := *supplier
	r.s.suppliers[supplier.ID] = &cp
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	defer r.s.rlock(r.locked)()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r *supplierRepo) List() ([]*entity.Supplier, error) {
	defer r.s.rlock(r.locked)()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sp := range r.s.suppliers {
		cp := *sp
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type userRepo struct {
	s      *Store
	locked bool
}

func (r *userRepo) Create(user *entity.User) error {
	defer r.s.wlock(r.locked)()
	if _, ok := r.s.userByUsername[user.Username]; ok {
		return domain.ErrDuplicate
	}
	cp := *user
	r.s.users[user.ID] = &cp
	r.s.userByUsername[user.Username] = user.ID
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	defer r.s.rlock(r.locked)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByUsername(username string) (*entity.User, error) {
	defer r.s.rlock(r.locked)()
	id, ok := r.s.userByUsername[username]
	if !ok {
		return nil, nil
	}
	cp := *r.s.users[id]
	return &cp, nil
}
