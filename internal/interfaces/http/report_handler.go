package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
)

// ReportHandler maneja el dashboard y los reportes (solo owner/admin).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard métricas del día.
// GET /api/dashboard/stats
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.uc.DashboardStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Sales reporte de ventas en un rango de fechas.
// GET /api/reports/sales?from=...&to=...
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}
	report, err := h.uc.SalesReport(from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Inventory reporte del estado del inventario.
// GET /api/reports/inventory
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	report, err := h.uc.InventoryReport()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
