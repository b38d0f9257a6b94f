package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/sale"
	"github.com/tu-usuario/retail-pos/internal/domain"
)

// ReceiptGenerator genera el comprobante PDF de una venta confirmada.
type ReceiptGenerator interface {
	GenerateReceipt(sale *dto.SaleResponse) ([]byte, error)
}

// SaleHandler maneja las peticiones HTTP del punto de venta.
type SaleHandler struct {
	uc       *sale.CommitSaleUseCase
	receipts ReceiptGenerator
}

// NewSaleHandler construye el handler. receipts puede ser nil: en ese caso
// la ruta del recibo responde 404.
func NewSaleHandler(uc *sale.CommitSaleUseCase, receipts ReceiptGenerator) *SaleHandler {
	return &SaleHandler{uc: uc, receipts: receipts}
}

// Commit confirma una venta: valida carrito, descuenta stock, liquida el pago
// y acredita puntos, todo o nada.
// POST /api/sales
func (h *SaleHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = c.Get("Idempotency-Key")
	}
	resp, err := h.uc.CommitSale(c.Context(), GetUserID(c), GetUsername(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista ventas con filtro opcional de fechas (RFC 3339).
// GET /api/sales?from=...&to=...
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}
	limit, offset := page.LimitOffset()
	sales, err := h.uc.ListSales(from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"sales": sales,
		"page":  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// GetByID obtiene una venta con sus líneas.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetSale(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Receipt genera el comprobante PDF de la venta.
// GET /api/sales/:id/receipt
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	if h.receipts == nil {
		return respondError(c, domain.ErrNotFound)
	}
	resp, err := h.uc.GetSale(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.receipts.GenerateReceipt(resp)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recibo-`+resp.ID+`.pdf"`)
	return c.Send(pdfBytes)
}

func parseTimeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
