package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/catalog"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// ProductUseCase casos de uso CRUD del catálogo de un comercio.
// Todo acceso al almacén pasa por el Scope del tenant; el margen se recalcula en cada escritura.
type ProductUseCase struct {
	guard     *tenancy.Guard
	taxonomy  *catalog.Taxonomy
	merchants repository.MerchantRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	guard *tenancy.Guard,
	taxonomy *catalog.Taxonomy,
	merchants repository.MerchantRepository,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{guard: guard, taxonomy: taxonomy, merchants: merchants, log: log, now: time.Now}
}

// Create crea un producto para el comercio. El comercio debe existir y estar activo.
func (uc *ProductUseCase) Create(ctx context.Context, tenantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	scope, err := uc.guard.Scope(tenantID)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureActiveMerchant(ctx, tenantID); err != nil {
		return nil, err
	}

	if in.StockQuantity == nil {
		return nil, domain.NewValidationError("stock_quantity", "es requerido")
	}
	threshold := entity.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	now := uc.now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Barcode:           in.Barcode,
		Price:             in.Price,
		CostPrice:         in.CostPrice,
		StockQuantity:     *in.StockQuantity,
		LowStockThreshold: threshold,
		Category:          in.Category,
		Subcategory:       in.Subcategory,
		Description:       in.Description,
		Supplier:          in.Supplier,
		IsAvailable:       available,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := inventory.Prepare(uc.taxonomy, product); err != nil {
		return nil, err
	}
	if err := scope.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	uc.log.Tenant(tenantID).Info().Str("product_id", product.ID).Msg("producto creado")
	out := dto.NewProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto del comercio; ErrNotFound si no existe o es ajeno.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenantID, productID string) (*dto.ProductResponse, error) {
	scope, err := uc.guard.Scope(tenantID)
	if err != nil {
		return nil, err
	}
	p, err := scope.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// List lista el catálogo completo del comercio (sin paginación) en orden de creación.
func (uc *ProductUseCase) List(ctx context.Context, tenantID string, f dto.ProductFilter) ([]dto.ProductResponse, error) {
	scope, err := uc.guard.Scope(tenantID)
	if err != nil {
		return nil, err
	}
	list, err := scope.Find(ctx, tenancy.Filter{Category: f.Category, Search: f.Search})
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return dto.NewProductList(list), nil
}

// Update aplica solo los campos presentes. El margen se recalcula con el precio y costo efectivos.
// Un patch vacío solo avanza updated_at.
func (uc *ProductUseCase) Update(ctx context.Context, tenantID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	scope, err := uc.guard.Scope(tenantID)
	if err != nil {
		return nil, err
	}
	product, err := scope.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	patch := entity.ProductPatch{
		Name:              in.Name,
		Barcode:           in.Barcode,
		Price:             in.Price,
		CostPrice:         in.CostPrice,
		StockQuantity:     in.StockQuantity,
		LowStockThreshold: in.LowStockThreshold,
		Category:          in.Category,
		Subcategory:       in.Subcategory,
		Description:       in.Description,
		Supplier:          in.Supplier,
		IsAvailable:       in.IsAvailable,
	}
	patch.Apply(product)
	if err := inventory.Prepare(uc.taxonomy, product); err != nil {
		return nil, err
	}
	product.UpdatedAt = uc.now().UTC()

	if err := scope.Replace(ctx, product); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	uc.log.Tenant(tenantID).Info().Str("product_id", productID).Bool("empty_patch", patch.IsEmpty()).Msg("producto actualizado")
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Delete elimina físicamente el producto; ErrNotFound si no se borró nada.
func (uc *ProductUseCase) Delete(ctx context.Context, tenantID, productID string) error {
	scope, err := uc.guard.Scope(tenantID)
	if err != nil {
		return err
	}
	if err := scope.Delete(ctx, productID); err != nil {
		return err
	}
	uc.log.Tenant(tenantID).Info().Str("product_id", productID).Msg("producto eliminado")
	return nil
}

func (uc *ProductUseCase) ensureActiveMerchant(ctx context.Context, tenantID string) error {
	m, err := uc.merchants.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("comercio %s: %w", tenantID, domain.ErrNotFound)
	}
	if !m.Active {
		return domain.ErrForbidden
	}
	return nil
}
