package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
)

var errOffline = errors.New("offline")

// recorder registra la última sentencia y falla siempre, como una base caída.
type recorder struct {
	sql  string
	args []any
}

func (r *recorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql, r.args = sql, args
	return pgconn.CommandTag{}, errOffline
}

func (r *recorder) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.sql, r.args = sql, args
	return nil, errOffline
}

func (r *recorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("no usado")
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%café%`, likePattern("café"))
	assert.Equal(t, `%50\%\_off\\%`, likePattern(`50%_off\`))
}

func TestWhere_ConFiltros(t *testing.T) {
	q := tenancy.Query{Filter: tenancy.Filter{Category: "BOISSONS", Search: "thé", LowStockOnly: true}}
	cond, args := where(q)
	assert.Equal(t, "tenant_id = $1 AND category = $2 AND stock_quantity <= low_stock_threshold AND "+
		"(name ILIKE $3 OR barcode ILIKE $3 OR description ILIKE $3)", cond)
	assert.Equal(t, []any{"", "BOISSONS", "%thé%"}, args)
}

func TestCatalogStore_TenantPrimerArgumento(t *testing.T) {
	rec := &recorder{}
	scope, err := tenancy.NewGuard(NewCatalogStore(rec)).Scope("t1")
	require.NoError(t, err)

	_, err = scope.Find(context.Background(), tenancy.Filter{Category: "AUTRE"})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errOffline)
	assert.Contains(t, rec.sql, "WHERE tenant_id = $1 AND category = $2")
	assert.Equal(t, []any{"t1", "AUTRE"}, rec.args)

	err = scope.Delete(context.Background(), "p9")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, []any{"t1", "p9"}, rec.args)

	_, err = scope.Aggregate(context.Background(), tenancy.Filter{})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, rec.sql, "GROUP BY 1")
}

func TestCatalogStore_SinTenantNoTocaLaBase(t *testing.T) {
	rec := &recorder{}
	_, err := NewCatalogStore(rec).Find(context.Background(), tenancy.Query{})
	assert.ErrorIs(t, err, domain.ErrMissingTenant)
	assert.Empty(t, rec.sql)
}

func TestMigracionesEmbebidas(t *testing.T) {
	script, err := migrations.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS products")
	assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS merchants")
}
