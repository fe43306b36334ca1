// Package tenancy aísla los datos de cada comercio.
//
// El CatalogStore solo acepta un Query, y el predicado de tenant de un Query es un campo
// no exportado: únicamente un Scope obtenido de Guard puede construir consultas con tenant.
// Los adaptadores rechazan cualquier Query sin tenant con domain.ErrMissingTenant.
package tenancy

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// Filter criterios opcionales de búsqueda dentro de un tenant.
type Filter struct {
	Category     string // igualdad exacta
	Search       string // subcadena sin distinguir mayúsculas en name, barcode o description
	LowStockOnly bool   // stock_quantity <= low_stock_threshold
}

// Query consulta contra el CatalogStore, siempre acotada a un tenant.
type Query struct {
	Filter
	tenantID  string
	productID string
}

// TenantID devuelve el tenant de la consulta.
func (q Query) TenantID() string { return q.tenantID }

// ProductID devuelve el producto buscado ("" si la consulta no es puntual).
func (q Query) ProductID() string { return q.productID }

// Check devuelve domain.ErrMissingTenant si la consulta no trae tenant.
// Todo adaptador debe llamarlo antes de tocar el almacenamiento.
func (q Query) Check() error {
	if q.tenantID == "" {
		return domain.ErrMissingTenant
	}
	return nil
}

// GroupTotals totales crudos de una categoría. Precisión completa, sin redondear.
type GroupTotals struct {
	Key           string // categoría
	Count         int
	LowStockCount int
	StockValue    decimal.Decimal // Σ price × stock_quantity
	CostValue     decimal.Decimal // Σ cost_price × stock_quantity (sin costo aporta 0)
}

// CatalogStore puerto de persistencia de productos: CRUD por clave y predicado más
// agregaciones agrupadas. Solo Guard lo recibe; los casos de uso nunca lo ven.
type CatalogStore interface {
	// Insert persiste p; p.TenantID debe coincidir con el tenant de q.
	Insert(ctx context.Context, q Query, p *entity.Product) error
	// FindOne devuelve (nil, nil) si no hay coincidencia.
	FindOne(ctx context.Context, q Query) (*entity.Product, error)
	// Find devuelve las coincidencias en orden de creación.
	Find(ctx context.Context, q Query) ([]*entity.Product, error)
	// Replace sobrescribe el documento identificado por q; false si no coincidió ninguno.
	Replace(ctx context.Context, q Query, p *entity.Product) (bool, error)
	// Delete borra físicamente; false si no se borró nada.
	Delete(ctx context.Context, q Query) (bool, error)
	// Aggregate cuenta y suma sobre las coincidencias agrupando por categoría,
	// ordenado por categoría. Sin coincidencias devuelve un slice vacío.
	Aggregate(ctx context.Context, q Query) ([]GroupTotals, error)
}
