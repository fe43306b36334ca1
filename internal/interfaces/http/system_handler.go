package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain/catalog"
)

// SystemHandler endpoints públicos sin tenant: salud, taxonomía y búsqueda pública.
type SystemHandler struct {
	taxonomy *catalog.Taxonomy
	now      func() time.Time
}

// NewSystemHandler construye el handler.
func NewSystemHandler(taxonomy *catalog.Taxonomy) *SystemHandler {
	return &SystemHandler{taxonomy: taxonomy, now: time.Now}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", Timestamp: h.now().UTC().Format(time.RFC3339)})
}

// Categories godoc
// @Summary      Categorías y subcategorías permitidas
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.CategoriesResponse
// @Router       /api/categories [get]
func (h *SystemHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(dto.CategoriesResponse{
		Categories:    h.taxonomy.Categories(),
		Subcategories: h.taxonomy.Subcategories(),
	})
}

// PublicSearch godoc
// @Summary      Búsqueda pública de comercios por radio
// @Description  Sin implementar: requiere un índice espacial propio.
// @Tags         system
// @Produce      json
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/public/search [get]
func (h *SystemHandler) PublicSearch(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "búsqueda pública no disponible"})
}
