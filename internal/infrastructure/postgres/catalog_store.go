package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
)

var _ tenancy.CatalogStore = (*CatalogStore)(nil)

const productColumns = `id, tenant_id, name, barcode, price, cost_price, stock_quantity, low_stock_threshold,
	category, subcategory, description, supplier, is_available, margin, created_at, updated_at`

// CatalogStore implementación del CatalogStore sobre PostgreSQL (usable con pool o tx).
// Toda sentencia empieza por tenant_id = $1.
type CatalogStore struct {
	q Querier
}

// NewCatalogStore construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogStore(q Querier) *CatalogStore {
	return &CatalogStore{q: q}
}

// where traduce el Query a una cláusula WHERE con argumentos posicionales.
func where(q tenancy.Query) (string, []any) {
	conds := []string{"tenant_id = $1"}
	args := []any{q.TenantID()}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if q.ProductID() != "" {
		add("id = $%d", q.ProductID())
	}
	if q.Category != "" {
		add("category = $%d", q.Category)
	}
	if q.LowStockOnly {
		conds = append(conds, "stock_quantity <= low_stock_threshold")
	}
	if q.Search != "" {
		args = append(args, likePattern(q.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR barcode ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	return strings.Join(conds, " AND "), args
}

// Insert persiste un producto nuevo.
func (s *CatalogStore) Insert(ctx context.Context, q tenancy.Query, p *entity.Product) error {
	if err := q.Check(); err != nil {
		return err
	}
	if p.TenantID != q.TenantID() {
		return fmt.Errorf("insert product: tenant %q no coincide con la consulta: %w", p.TenantID, domain.ErrMissingTenant)
	}
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := s.q.Exec(ctx, query,
		p.ID, p.TenantID, p.Name, p.Barcode, p.Price, p.CostPrice, p.StockQuantity, p.LowStockThreshold,
		p.Category, p.Subcategory, p.Description, p.Supplier, p.IsAvailable, p.Margin, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.Persistence("insert product", err)
	}
	return nil
}

// FindOne devuelve la primera coincidencia o (nil, nil).
func (s *CatalogStore) FindOne(ctx context.Context, q tenancy.Query) (*entity.Product, error) {
	if err := q.Check(); err != nil {
		return nil, err
	}
	cond, args := where(q)
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + cond + ` ORDER BY created_at, id LIMIT 1`
	p, err := scanProduct(s.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.Persistence("get product", err)
	}
	return p, nil
}

// Find lista las coincidencias en orden de creación.
func (s *CatalogStore) Find(ctx context.Context, q tenancy.Query) ([]*entity.Product, error) {
	if err := q.Check(); err != nil {
		return nil, err
	}
	cond, args := where(q)
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + cond + ` ORDER BY created_at, id`
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list products", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Persistence("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list products", err)
	}
	return list, nil
}

// Replace sobrescribe los campos mutables del producto identificado por q.
func (s *CatalogStore) Replace(ctx context.Context, q tenancy.Query, p *entity.Product) (bool, error) {
	if err := q.Check(); err != nil {
		return false, err
	}
	query := `
		UPDATE products SET name = $3, barcode = $4, price = $5, cost_price = $6, stock_quantity = $7,
			low_stock_threshold = $8, category = $9, subcategory = $10, description = $11, supplier = $12,
			is_available = $13, margin = $14, updated_at = $15
		WHERE tenant_id = $1 AND id = $2`
	cmd, err := s.q.Exec(ctx, query,
		q.TenantID(), q.ProductID(), p.Name, p.Barcode, p.Price, p.CostPrice, p.StockQuantity,
		p.LowStockThreshold, p.Category, p.Subcategory, p.Description, p.Supplier,
		p.IsAvailable, p.Margin, p.UpdatedAt,
	)
	if err != nil {
		return false, domain.Persistence("update product", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete borra físicamente el producto identificado por q.
func (s *CatalogStore) Delete(ctx context.Context, q tenancy.Query) (bool, error) {
	if err := q.Check(); err != nil {
		return false, err
	}
	cond, args := where(q)
	cmd, err := s.q.Exec(ctx, `DELETE FROM products WHERE `+cond, args...)
	if err != nil {
		return false, domain.Persistence("delete product", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Aggregate resuelve conteos y sumas en una sola sentencia (instantánea consistente).
func (s *CatalogStore) Aggregate(ctx context.Context, q tenancy.Query) ([]tenancy.GroupTotals, error) {
	if err := q.Check(); err != nil {
		return nil, err
	}
	cond, args := where(q)
	query := `
		SELECT category,
			COUNT(*),
			COUNT(*) FILTER (WHERE stock_quantity <= low_stock_threshold),
			COALESCE(SUM(price * stock_quantity), 0),
			COALESCE(SUM(COALESCE(cost_price, 0) * stock_quantity), 0)
		FROM products WHERE ` + cond + `
		GROUP BY 1 ORDER BY 1`
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("aggregate products", err)
	}
	defer rows.Close()

	out := make([]tenancy.GroupTotals, 0)
	for rows.Next() {
		var g tenancy.GroupTotals
		if err := rows.Scan(&g.Key, &g.Count, &g.LowStockCount, &g.StockValue, &g.CostValue); err != nil {
			return nil, domain.Persistence("scan aggregate", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("aggregate products", err)
	}
	return out, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var cost, margin decimal.NullDecimal
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Barcode, &p.Price, &cost, &p.StockQuantity, &p.LowStockThreshold,
		&p.Category, &p.Subcategory, &p.Description, &p.Supplier, &p.IsAvailable, &margin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if cost.Valid {
		p.CostPrice = &cost.Decimal
	}
	if margin.Valid {
		p.Margin = &margin.Decimal
	}
	return &p, nil
}
