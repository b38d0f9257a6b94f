package member

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/ports"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// UseCase gestiona el padrón de membresías. Los puntos no se tocan aquí:
// acreditar y debitar es competencia exclusiva del motor de ventas.
type UseCase struct {
	memberRepo repository.MemberRepository
	events     ports.EventPublisher
}

// NewUseCase construye el caso de uso.
func NewUseCase(memberRepo repository.MemberRepository, events ports.EventPublisher) *UseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &UseCase{memberRepo: memberRepo, events: events}
}

// Register da de alta una membresía. El teléfono es la clave natural:
// un teléfono ya registrado devuelve ErrDuplicate.
func (uc *UseCase) Register(in dto.RegisterMemberRequest) (*dto.MemberResponse, error) {
	phone := strings.TrimSpace(in.Phone)
	name := strings.TrimSpace(in.Name)
	if phone == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.memberRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	m := &entity.Member{
		ID:         uuid.New().String(),
		Phone:      phone,
		Name:       name,
		Points:     0,
		TotalSpent: decimal.Zero,
		CreatedAt:  now,
		LastVisit:  now,
	}
	if err := uc.memberRepo.Create(m); err != nil {
		return nil, err
	}

	uc.events.Publish(ports.EventMemberJoined, ports.MemberJoinedPayload{
		MemberID: m.ID,
		Phone:    m.Phone,
	})
	return dto.MemberToResponse(m), nil
}

// FindByPhone busca una membresía por su teléfono exacto.
func (uc *UseCase) FindByPhone(phone string) (*dto.MemberResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.memberRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMemberNotFound
	}
	return dto.MemberToResponse(m), nil
}

// Get devuelve una membresía por id.
func (uc *UseCase) Get(id string) (*dto.MemberResponse, error) {
	m, err := uc.memberRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMemberNotFound
	}
	return dto.MemberToResponse(m), nil
}

// List lista membresías paginadas.
func (uc *UseCase) List(page dto.PageRequest) ([]*dto.MemberResponse, error) {
	limit, offset := page.LimitOffset()
	members, err := uc.memberRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.MemberToResponse(m))
	}
	return out, nil
}
