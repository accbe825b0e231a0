package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/application/usecase"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

// ReportHandler reportes de ventas (protegido).
type ReportHandler struct {
	uc  *usecase.SalesReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.SalesReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Agrupa por fecha, nombre y marca del item (fecha descendente). format=pdf devuelve el reporte en PDF.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        start   query  string  true   "Fecha inicial YYYY-MM-DD"
// @Param        end     query  string  true   "Fecha final YYYY-MM-DD"
// @Param        name    query  string  false  "Filtro por nombre (subcadena)"
// @Param        brand   query  string  false  "Filtro por marca (subcadena)"
// @Param        format  query  string  false  "json (por defecto) | pdf"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var q dto.SalesReportQuery
	if err := bindQuery(c, &q); err != nil {
		return respondError(c, h.log, err)
	}
	if q.Format == "pdf" {
		pdfBytes, filename, err := h.uc.GetPDF(c.Context(), q)
		if err != nil {
			return respondError(c, h.log, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(pdfBytes)
	}
	out, err := h.uc.Get(c.Context(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
