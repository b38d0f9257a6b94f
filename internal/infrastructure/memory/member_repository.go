package memory

import (
	"sort"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.MemberRepository = (*memberRepo)(nil)

type memberRepo struct {
	s      *Store
	locked bool
}

func cloneMember(m *entity.Member) *entity.Member {
	cp := *m
	return &cp
}

func (r *memberRepo) Create(member *entity.Member) error {
	defer r.s.wlock(r.locked)()
	if _, ok := r.s.members[member.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.memberByPhone[member.Phone]; ok {
		return domain.ErrDuplicate
	}
	r.s.members[member.ID] = cloneMember(member)
	r.s.memberByPhone[member.Phone] = member.ID
	return nil
}

func (r *memberRepo) GetByID(id string) (*entity.Member, error) {
	defer r.s.rlock(r.locked)()
	m, ok := r.s.members[id]
	if !ok {
		return nil, nil
	}
	return cloneMember(m), nil
}

func (r *memberRepo) GetByPhone(phone string) (*entity.Member, error) {
	defer r.s.rlock(r.locked)()
	id, ok := r.s.memberByPhone[phone]
	if !ok {
		return nil, nil
	}
	return cloneMember(r.s.members[id]), nil
}

// GetForUpdate: el lock de escritura de la transacción ya serializa.
func (r *memberRepo) GetForUpdate(id string) (*entity.Member, error) {
	return r.GetByID(id)
}

func (r *memberRepo) Update(member *entity.Member) error {
	defer r.s.wlock(r.locked)()
	old, ok := r.s.members[member.ID]
	if !ok {
		return domain.ErrMemberNotFound
	}
	if old.Phone != member.Phone {
		if _, taken := r.s.memberByPhone[member.Phone]; taken {
			return domain.ErrDuplicate
		}
		delete(r.s.memberByPhone, old.Phone)
		r.s.memberByPhone[member.Phone] = member.ID
	}
	r.s.members[member.ID] = cloneMember(member)
	return nil
}

func (r *memberRepo) List(limit, offset int) ([]*entity.Member, error) {
	defer r.s.rlock(r.locked)()
	out := make([]*entity.Member, 0, len(r.s.members))
	for _, m := range r.s.members {
		out = append(out, cloneMember(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), nil
}

// page aplica limit/offset a un slice ya ordenado. Limit <= 0 = sin límite.
func page[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && len(in) > limit {
		in = in[:limit]
	}
	return in
}
