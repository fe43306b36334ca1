package tenancy

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// Guard única puerta de entrada al CatalogStore.
type Guard struct {
	store CatalogStore
}

// NewGuard envuelve el almacén. Es el único lugar donde se entrega un CatalogStore.
func NewGuard(store CatalogStore) *Guard {
	return &Guard{store: store}
}

// Scope devuelve la vista del catálogo restringida a tenantID.
func (g *Guard) Scope(tenantID string) (*Scope, error) {
	if tenantID == "" {
		return nil, domain.ErrMissingTenant
	}
	return &Scope{store: g.store, tenantID: tenantID}, nil
}

// Scope catálogo de un único tenant. Un producto de otro tenant es indistinguible de uno
// inexistente: ambos producen domain.ErrNotFound.
type Scope struct {
	store    CatalogStore
	tenantID string
}

// TenantID devuelve el tenant de la vista.
func (s *Scope) TenantID() string { return s.tenantID }

func (s *Scope) query(f Filter) Query {
	return Query{Filter: f, tenantID: s.tenantID}
}

func (s *Scope) item(productID string) Query {
	return Query{tenantID: s.tenantID, productID: productID}
}

// Insert fija el tenant del producto y lo persiste.
func (s *Scope) Insert(ctx context.Context, p *entity.Product) error {
	p.TenantID = s.tenantID
	return s.store.Insert(ctx, s.query(Filter{}), p)
}

// Get busca un producto del tenant por ID.
func (s *Scope) Get(ctx context.Context, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.ErrNotFound
	}
	p, err := s.store.FindOne(ctx, s.item(productID))
	if err != nil {
		return nil, err
	}
	if p == nil || p.TenantID != s.tenantID {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return p, nil
}

// Find lista los productos del tenant que cumplen f.
func (s *Scope) Find(ctx context.Context, f Filter) ([]*entity.Product, error) {
	list, err := s.store.Find(ctx, s.query(f))
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		// Un adaptador defectuoso no debe filtrar datos de otro tenant.
		if p.TenantID == s.tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Replace sobrescribe el producto p.ID del tenant.
func (s *Scope) Replace(ctx context.Context, p *entity.Product) error {
	p.TenantID = s.tenantID
	ok, err := s.store.Replace(ctx, s.item(p.ID), p)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete borra físicamente el producto del tenant.
func (s *Scope) Delete(ctx context.Context, productID string) error {
	if productID == "" {
		return domain.ErrNotFound
	}
	ok, err := s.store.Delete(ctx, s.item(productID))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return nil
}

// Aggregate agrega por categoría los productos del tenant que cumplen f.
func (s *Scope) Aggregate(ctx context.Context, f Filter) ([]GroupTotals, error) {
	return s.store.Aggregate(ctx, s.query(f))
}
