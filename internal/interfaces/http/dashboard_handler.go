package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/epharma-api/internal/application/analytics"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

// DashboardHandler resumen de ventas y alertas de inventario (protegido).
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Summary godoc
// @Summary      Dashboard
// @Description  Ventas y margen de hoy y del mes (UTC), items más vendidos, vencidos, próximos a vencer y con existencia baja.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
