package ports

import "github.com/jhoicas/stock-api/internal/application/dto"

// CatalogRenderer serializa el sobre de exportación a un formato binario (XML, PDF).
type CatalogRenderer interface {
	Render(env *dto.ExportEnvelope) ([]byte, error)
	// ContentType devuelve el MIME del resultado.
	ContentType() string
}
