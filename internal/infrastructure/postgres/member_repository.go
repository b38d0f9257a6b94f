package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.MemberRepository = (*MemberRepo)(nil)

const memberColumns = `id, phone, name, points, total_spent, created_at, last_visit`

// MemberRepo implementación del puerto MemberRepository sobre PostgreSQL (usable con pool o tx).
type MemberRepo struct {
	q Querier
}

// NewMemberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMemberRepository(q Querier) *MemberRepo {
	return &MemberRepo{q: q}
}

// Create persiste una nueva membresía. Teléfono duplicado devuelve ErrDuplicate.
func (r *MemberRepo) Create(member *entity.Member) error {
	query := `INSERT INTO members (` + memberColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		member.ID, member.Phone, member.Name, member.Points, member.TotalSpent,
		member.CreatedAt, member.LastVisit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// GetByID obtiene una membresía por ID. Devuelve nil sin error si no existe.
func (r *MemberRepo) GetByID(id string) (*entity.Member, error) {
	return r.getOne(`SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
}

// GetByPhone obtiene una membresía por su teléfono exacto.
func (r *MemberRepo) GetByPhone(phone string) (*entity.Member, error) {
	return r.getOne(`SELECT `+memberColumns+` FROM members WHERE phone = $1`, phone)
}

// GetForUpdate obtiene la membresía bloqueando la fila. Solo dentro de una tx del TxRunner.
func (r *MemberRepo) GetForUpdate(id string) (*entity.Member, error) {
	return r.getOne(`SELECT `+memberColumns+` FROM members WHERE id = $1 FOR UPDATE`, id)
}

func (r *MemberRepo) getOne(query string, args ...any) (*entity.Member, error) {
	var m entity.Member
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&m.ID, &m.Phone, &m.Name, &m.Points, &m.TotalSpent, &m.CreatedAt, &m.LastVisit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

// Update persiste los campos mutables (puntos, gasto acumulado, última visita, nombre).
func (r *MemberRepo) Update(member *entity.Member) error {
	query := `
		UPDATE members SET phone = $2, name = $3, points = $4, total_spent = $5, last_visit = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		member.ID, member.Phone, member.Name, member.Points, member.TotalSpent, member.LastVisit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update member: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// List lista membresías paginadas, más recientes primero.
func (r *MemberRepo) List(limit, offset int) ([]*entity.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []*entity.Member
	for rows.Next() {
		var m entity.Member
		if err := rows.Scan(&m.ID, &m.Phone, &m.Name, &m.Points, &m.TotalSpent, &m.CreatedAt, &m.LastVisit); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}
