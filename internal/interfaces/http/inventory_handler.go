package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// InventoryHandler maneja el libro de movimientos y los documentos de entrada.
type InventoryHandler struct {
	ledger  *inventory.LedgerUseCase
	stockIn *inventory.StockInUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, stockIn *inventory.StockInUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, stockIn: stockIn}
}

// Adjust registra un movimiento manual (adjustment, return o damage).
// POST /api/stock-ledger/adjustments
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.ledger.RecordAdjustment(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// History devuelve el libro de un producto, más reciente primero.
// GET /api/stock-ledger/:productId
func (h *InventoryHandler) History(c *fiber.Ctx) error {
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
	entries, err := h.ledger.History(repository.LedgerQuery{
		ProductID: c.Params("productId"),
		From:      from,
		To:        to,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries})
}

// Verify comprueba la conciliación libro vs stock de un producto.
// GET /api/stock-ledger/:productId/verify
func (h *InventoryHandler) Verify(c *fiber.Ctx) error {
	if err := h.ledger.VerifyProduct(c.Params("productId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"consistent": true})
}

// CreateStockIn crea un documento de entrada (draft, o completado si complete=true).
// POST /api/stock-in
func (h *InventoryHandler) CreateStockIn(c *fiber.Ctx) error {
	var in dto.CreateStockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.stockIn.CreateDocument(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// CompleteStockIn ejecuta la transición draft -> completed (aplica stock y libro).
// POST /api/stock-in/:id/complete
func (h *InventoryHandler) CompleteStockIn(c *fiber.Ctx) error {
	doc, err := h.stockIn.CompleteDocument(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

// ListStockIn lista documentos de entrada.
// GET /api/stock-in
func (h *InventoryHandler) ListStockIn(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	docs, err := h.stockIn.ListDocuments(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"documents": docs})
}

// GetStockIn obtiene un documento de entrada.
// GET /api/stock-in/:id
func (h *InventoryHandler) GetStockIn(c *fiber.Ctx) error {
	doc, err := h.stockIn.GetDocument(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}
