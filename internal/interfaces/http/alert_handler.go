package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
)

// AlertHandler maneja las peticiones HTTP del reporte de alertas de stock bajo.
type AlertHandler struct {
	alerts *inventory.LowStockAlertUseCase
	report *inventory.ReportUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(alerts *inventory.LowStockAlertUseCase, report *inventory.ReportUseCase) *AlertHandler {
	return &AlertHandler{alerts: alerts, report: report}
}

// GetLowStock godoc
// @Summary      Alertas de stock bajo
// @Description  Productos con ventas recientes cuyo stock por bodega está por
//
//	debajo de su umbral, con la proyección de días hasta agotarse y
//	el contacto del proveedor (null si no tiene). Ordenadas de más a
//	menos urgentes.
//
// @Tags         alerts
// @Produce      json
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/alerts/low-stock [get]
func (h *AlertHandler) GetLowStock(c *fiber.Ctx) error {
	out, err := h.alerts.GetLowStockAlerts(c.Context(), c.Params("companyId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportLowStockPDF godoc
// @Summary      Exportar alertas de stock bajo en PDF
// @Tags         alerts
// @Produce      application/pdf
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/alerts/low-stock/pdf [get]
func (h *AlertHandler) ExportLowStockPDF(c *fiber.Ctx) error {
	companyID := c.Params("companyId")
	pdfBytes, err := h.report.ExportLowStockReport(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="stock-bajo-%s.pdf"`, companyID))
	return c.Send(pdfBytes)
}
