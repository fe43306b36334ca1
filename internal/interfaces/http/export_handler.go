package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/export"
)

// ExportHandler maneja la exportación del catálogo.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ExportProducts godoc
// @Summary      Exportar catálogo
// @Description  Todos los productos del comercio con metadatos de exportación. json (default), xml canónico o pdf.
// @Tags         export
// @Security     Bearer
// @Produce      json
// @Produce      xml
// @Produce      application/pdf
// @Param        format  query  string  false  "json | xml | pdf"  default(json)
// @Success      200     {object}  dto.ExportEnvelope
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/export/products [get]
func (h *ExportHandler) ExportProducts(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", export.FormatJSON))
	if format == export.FormatJSON {
		env, err := h.uc.Export(c.Context(), GetMerchantID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(env)
	}

	body, contentType, err := h.uc.Render(c.Context(), GetMerchantID(c), format)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalog.`+format+`"`)
	return c.Send(body)
}
