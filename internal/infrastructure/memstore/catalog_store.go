// Package memstore implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory (desarrollo local) y en los tests de casos de uso.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
)

var _ tenancy.CatalogStore = (*CatalogStore)(nil)

// CatalogStore catálogo en memoria. Cada operación es atómica sobre un documento.
type CatalogStore struct {
	mu    sync.RWMutex
	docs  map[string]*entity.Product
	order []string // orden de inserción = orden de descubrimiento
}

// NewCatalogStore construye un catálogo vacío.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{docs: make(map[string]*entity.Product)}
}

// Insert guarda una copia del producto.
func (s *CatalogStore) Insert(_ context.Context, q tenancy.Query, p *entity.Product) error {
	if err := q.Check(); err != nil {
		return err
	}
	if p.TenantID != q.TenantID() {
		return fmt.Errorf("memstore insert: tenant %q no coincide con la consulta: %w", p.TenantID, domain.ErrMissingTenant)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[p.ID]; exists {
		return domain.ErrDuplicate
	}
	s.docs[p.ID] = p.Clone()
	s.order = append(s.order, p.ID)
	return nil
}

// FindOne devuelve la primera coincidencia o (nil, nil).
func (s *CatalogStore) FindOne(_ context.Context, q tenancy.Query) (*entity.Product, error) {
	if err := q.Check(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id := q.ProductID(); id != "" {
		p, ok := s.docs[id]
		if !ok || !matches(q, p) {
			return nil, nil
		}
		return p.Clone(), nil
	}
	for _, id := range s.order {
		if p := s.docs[id]; matches(q, p) {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

// Find devuelve todas las coincidencias en orden de inserción.
func (s *CatalogStore) Find(_ context.Context, q tenancy.Query) ([]*entity.Product, error) {
	if err := q.Check(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Product, 0)
	for _, id := range s.order {
		if p := s.docs[id]; matches(q, p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// Replace sobrescribe el documento q.ProductID() si pertenece al tenant.
func (s *CatalogStore) Replace(_ context.Context, q tenancy.Query, p *entity.Product) (bool, error) {
	if err := q.Check(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.docs[q.ProductID()]
	if !ok || !matches(q, cur) {
		return false, nil
	}
	next := p.Clone()
	next.ID = cur.ID
	next.TenantID = cur.TenantID
	s.docs[cur.ID] = next
	return true, nil
}

// Delete borra el documento q.ProductID() si pertenece al tenant.
func (s *CatalogStore) Delete(_ context.Context, q tenancy.Query) (bool, error) {
	if err := q.Check(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := q.ProductID()
	cur, ok := s.docs[id]
	if !ok || !matches(q, cur) {
		return false, nil
	}
	delete(s.docs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Aggregate agrupa en una sola pasada bajo el mismo lock (instantánea consistente).
func (s *CatalogStore) Aggregate(_ context.Context, q tenancy.Query) ([]tenancy.GroupTotals, error) {
	if err := q.Check(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[string]*tenancy.GroupTotals)
	for _, id := range s.order {
		p := s.docs[id]
		if !matches(q, p) {
			continue
		}
		g, ok := groups[p.Category]
		if !ok {
			g = &tenancy.GroupTotals{Key: p.Category, StockValue: decimal.Zero, CostValue: decimal.Zero}
			groups[p.Category] = g
		}
		g.Count++
		if p.IsLowStock() {
			g.LowStockCount++
		}
		g.StockValue = g.StockValue.Add(p.StockValue())
		g.CostValue = g.CostValue.Add(p.CostValue())
	}

	out := make([]tenancy.GroupTotals, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func matches(q tenancy.Query, p *entity.Product) bool {
	if p.TenantID != q.TenantID() {
		return false
	}
	if q.ProductID() != "" && p.ID != q.ProductID() {
		return false
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.LowStockOnly && !p.IsLowStock() {
		return false
	}
	if q.Search != "" {
		needle := fold(q.Search)
		if !strings.Contains(fold(p.Name), needle) &&
			!strings.Contains(fold(p.Barcode), needle) &&
			!strings.Contains(fold(p.Description), needle) {
			return false
		}
	}
	return true
}

// fold normaliza para comparar sin distinguir mayúsculas (incluye acentuadas: "Épicé" ~ "épicé").
// cases.Caser no es seguro entre goroutines: se crea uno por llamada.
func fold(s string) string {
	return cases.Fold().String(s)
}
