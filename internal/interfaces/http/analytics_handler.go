package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/analytics"
)

// AnalyticsHandler maneja el dashboard y las alertas de stock bajo.
type AnalyticsHandler struct {
	uc *analytics.DashboardUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetStats godoc
// @Summary      Estadísticas del inventario
// @Description  Totales de stock, valor, costo, ganancia estimada y desglose por categoría (2 decimales).
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *AnalyticsHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context(), GetMerchantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetLowStockAlerts godoc
// @Summary      Alertas de stock bajo
// @Description  Productos con stock menor o igual a su umbral.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockAlertDTO
// @Router       /api/alerts/low-stock [get]
func (h *AnalyticsHandler) GetLowStockAlerts(c *fiber.Ctx) error {
	out, err := h.uc.GetLowStockAlerts(c.Context(), GetMerchantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
