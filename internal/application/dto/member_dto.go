package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// RegisterMemberRequest body para POST /api/members.
type RegisterMemberRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// MemberResponse representación pública de una membresía.
type MemberResponse struct {
	ID         string          `json:"id"`
	Phone      string          `json:"phone"`
	Name       string          `json:"name"`
	Points     int             `json:"points"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	CreatedAt  time.Time       `json:"created_at"`
	LastVisit  time.Time       `json:"last_visit"`
}

// MemberToResponse convierte la entidad al DTO de respuesta.
func MemberToResponse(m *entity.Member) *MemberResponse {
	return &MemberResponse{
		ID:         m.ID,
		Phone:      m.Phone,
		Name:       m.Name,
		Points:     m.Points,
		TotalSpent: m.TotalSpent,
		CreatedAt:  m.CreatedAt,
		LastVisit:  m.LastVisit,
	}
}
