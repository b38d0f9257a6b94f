package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/member"
)

// MemberHandler maneja las peticiones HTTP del programa de lealtad.
type MemberHandler struct {
	uc *member.UseCase
}

// NewMemberHandler construye el handler.
func NewMemberHandler(uc *member.UseCase) *MemberHandler {
	return &MemberHandler{uc: uc}
}

// Register da de alta una membresía (teléfono único).
// POST /api/members
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Register(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista membresías paginadas.
// GET /api/members
func (h *MemberHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	members, err := h.uc.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"members": members})
}

// FindByPhone busca una membresía por teléfono exacto (lookup en caja).
// GET /api/members/phone/:phone
func (h *MemberHandler) FindByPhone(c *fiber.Ctx) error {
	resp, err := h.uc.FindByPhone(c.Params("phone"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID obtiene una membresía.
// GET /api/members/:id
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
