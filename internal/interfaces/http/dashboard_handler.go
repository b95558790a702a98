package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-solidario/internal/application/analytics"
)

// DashboardHandler expone las vistas operativas de solo lectura.
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// CriticalStock godoc
// @Summary      Productos en o bajo su stock mínimo, mayor faltante primero
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"  default(5)
// @Success      200    {array}  dto.CriticalStockDTO
// @Router       /api/dashboard/critical-stock [get]
func (h *DashboardHandler) CriticalStock(c *fiber.Ctx) error {
	out, err := h.uc.CriticalStock(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NearExpiration godoc
// @Summary      Lotes de entrada próximos a vencer (o vencidos), más urgentes primero
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"  default(5)
// @Success      200    {array}  dto.ExpiringItemDTO
// @Router       /api/dashboard/near-expiration [get]
func (h *DashboardHandler) NearExpiration(c *fiber.Ctx) error {
	out, err := h.uc.NearExpiration(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Tarjetas del dashboard (stock total, productos, alertas)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.StockSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
