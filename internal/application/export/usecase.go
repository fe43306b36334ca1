// Package export serializa el catálogo completo de un comercio en un sobre estable.
package export

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/ports"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
)

// Formatos soportados además de JSON.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatPDF  = "pdf"
)

// ExportUseCase arma el sobre de exportación y lo entrega a los renderizadores.
type ExportUseCase struct {
	guard     *tenancy.Guard
	merchants repository.MerchantRepository
	renderers map[string]ports.CatalogRenderer
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso. renderers indexa por formato (FormatXML, FormatPDF).
func NewExportUseCase(guard *tenancy.Guard, merchants repository.MerchantRepository, renderers map[string]ports.CatalogRenderer) *ExportUseCase {
	return &ExportUseCase{guard: guard, merchants: merchants, renderers: renderers, now: time.Now}
}

// Export devuelve todos los productos del comercio, sin filtros ni paginación, más los metadatos.
// Comercio y productos se cargan en paralelo.
func (uc *ExportUseCase) Export(ctx context.Context, tenantID string) (*dto.ExportEnvelope, error) {
	scope, err := uc.guard.Scope(tenantID)
	if err != nil {
		return nil, err
	}

	var (
		merchant *entity.Merchant
		products []*entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := uc.merchants.GetByID(gctx, tenantID)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("comercio %s: %w", tenantID, domain.ErrNotFound)
		}
		merchant = m
		return nil
	})
	g.Go(func() error {
		list, err := scope.Find(gctx, tenancy.Filter{})
		if err != nil {
			return err
		}
		products = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("exportar catálogo: %w", err)
	}

	return &dto.ExportEnvelope{
		ExportInfo: dto.ExportInfo{
			Timestamp:     uc.now().UTC().Format(time.RFC3339),
			TotalProducts: len(products),
			FormatVersion: dto.ExportFormatVersion,
			Standard:      dto.ExportStandard,
			Merchant: dto.ExportMerchant{
				ID:           merchant.ID,
				BusinessName: merchant.BusinessName,
				Email:        merchant.Email,
				Address:      dto.NewAddressDTO(merchant.Address),
				Location:     dto.NewGeoPointDTO(merchant.Location),
			},
		},
		Products: dto.NewProductList(products),
	}, nil
}

// Render exporta en un formato binario registrado. Devuelve el cuerpo y su MIME.
func (uc *ExportUseCase) Render(ctx context.Context, tenantID, format string) ([]byte, string, error) {
	r, ok := uc.renderers[format]
	if !ok {
		return nil, "", domain.NewValidationError("format", "formato no soportado: "+format)
	}
	env, err := uc.Export(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}
	body, err := r.Render(env)
	if err != nil {
		return nil, "", fmt.Errorf("render %s: %w", format, err)
	}
	return body, r.ContentType(), nil
}
