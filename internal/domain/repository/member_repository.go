package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// MemberRepository define el puerto de persistencia para Member.
// El núcleo de ventas solo usa GetByPhone/GetByID para validar y
// GetForUpdate + Update dentro de la transacción para acreditar/debitar puntos.
// La edición de perfil es responsabilidad del colaborador de membresías.
type MemberRepository interface {
	Create(member *entity.Member) error
	GetByID(id string) (*entity.Member, error)
	GetByPhone(phone string) (*entity.Member, error)
	List(limit, offset int) ([]*entity.Member, error)

	// GetForUpdate obtiene el miembro y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Member, error)
	Update(member *entity.Member) error
}
