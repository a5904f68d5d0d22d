package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// ReportHandler expone el resumen y la planilla de stock.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de funcionarios, empresas y productos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        companyId  query  string  false  "Incluye totales de productos de esta empresa"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), companyIDQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Planilla de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        companyId  query  string  true  "ID de la empresa"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.StockReport(c.UserContext(), GetClaim(c), companyIDQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
