package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/catalog"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
	"github.com/jhoicas/stock-api/pkg/config"
)

// Estas pruebas necesitan una base real: DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(ctx, pool))
	require.NoError(t, EnsureSchema(ctx, pool), "las migraciones son idempotentes")
	return pool
}

// newTestMerchant crea un comercio con id y email únicos y lo borra (en cascada) al terminar.
func newTestMerchant(t *testing.T, pool *pgxpool.Pool) *entity.Merchant {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	id := uuid.NewString()
	m := &entity.Merchant{
		ID: id, Email: id + "@shop.fr", PasswordHash: "x", BusinessName: "Boutique " + id[:8],
		Address:  entity.Address{City: "Lyon", Country: "France"},
		Location: &entity.GeoPoint{Latitude: 45.764, Longitude: 4.8357},
		Active:   true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewMerchantRepository(pool).Create(context.Background(), m))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM merchants WHERE id = $1`, id)
	})
	return m
}

func prepared(t *testing.T, p *entity.Product) *entity.Product {
	t.Helper()
	require.NoError(t, inventory.Prepare(catalog.Default(), p))
	return p
}

func TestIntegracion_MerchantRepo(t *testing.T) {
	pool := openTestPool(t)
	repo := NewMerchantRepository(pool)
	ctx := context.Background()
	m := newTestMerchant(t, pool)

	got, err := repo.GetByEmail(ctx, m.Email)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, "Lyon", got.Address.City)
	require.NotNil(t, got.Location)
	assert.InDelta(t, 45.764, got.Location.Latitude, 1e-9)
	assert.True(t, m.CreatedAt.Equal(got.CreatedAt))

	dup := *m
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	require.NoError(t, repo.SetActive(ctx, m.ID, false, time.Now().UTC()))
	got, err = repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegracion_CatalogStore(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	alice, bob := newTestMerchant(t, pool), newTestMerchant(t, pool)

	guard := tenancy.NewGuard(NewCatalogStore(pool))
	a, err := guard.Scope(alice.ID)
	require.NoError(t, err)
	b, err := guard.Scope(bob.ID)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	cost := decimal.RequireFromString("0.80")
	baguette := prepared(t, &entity.Product{
		ID: uuid.NewString(), Name: "Baguette", Barcode: "3017620422003",
		Price: decimal.RequireFromString("1.20"), CostPrice: &cost,
		StockQuantity: 25, LowStockThreshold: 30, Category: "ALIMENTAIRE", Subcategory: "BOULANGERIE",
		IsAvailable: true, CreatedAt: now, UpdatedAt: now,
	})
	eau := prepared(t, &entity.Product{
		ID: uuid.NewString(), Name: "Eau minérale", Price: decimal.RequireFromString("0.5"),
		StockQuantity: 2, LowStockThreshold: 10, Category: "BOISSONS",
		IsAvailable: true, CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second),
	})
	require.NoError(t, a.Insert(ctx, baguette))
	require.NoError(t, a.Insert(ctx, eau))

	// NUMERIC <-> decimal, margen y costo opcionales.
	got, err := a.Get(ctx, baguette.ID)
	require.NoError(t, err)
	assert.True(t, baguette.Price.Equal(got.Price))
	require.NotNil(t, got.CostPrice)
	assert.True(t, cost.Equal(*got.CostPrice))
	require.NotNil(t, got.Margin)
	assert.Equal(t, "33.33", got.Margin.StringFixed(2))
	assert.True(t, baguette.CreatedAt.Equal(got.CreatedAt))

	got, err = a.Get(ctx, eau.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CostPrice)
	assert.Nil(t, got.Margin)

	list, err := a.Find(ctx, tenancy.Filter{LowStockOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 2, "25 <= 30 y 2 <= 10")
	assert.Equal(t, baguette.ID, list[0].ID, "orden de creación")

	list, err = a.Find(ctx, tenancy.Filter{Search: "EAU"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, eau.ID, list[0].ID)

	groups, err := a.Aggregate(ctx, tenancy.Filter{})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "ALIMENTAIRE", groups[0].Key)
	assert.Equal(t, 1, groups[0].LowStockCount)
	assert.True(t, decimal.NewFromInt(30).Equal(groups[0].StockValue))
	assert.True(t, decimal.NewFromInt(20).Equal(groups[0].CostValue))
	assert.Equal(t, "BOISSONS", groups[1].Key)
	assert.True(t, decimal.NewFromInt(1).Equal(groups[1].StockValue))
	assert.True(t, groups[1].CostValue.IsZero(), "sin costo aporta 0")

	// Aislamiento: el otro comercio no ve ni toca nada.
	_, err = b.Get(ctx, baguette.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, b.Delete(ctx, baguette.ID), domain.ErrNotFound)
	groups, err = b.Aggregate(ctx, tenancy.Filter{})
	require.NoError(t, err)
	assert.Empty(t, groups)

	baguette.StockQuantity = 40
	require.NoError(t, a.Replace(ctx, prepared(t, baguette)))
	got, err = a.Get(ctx, baguette.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.StockQuantity)

	require.NoError(t, a.Delete(ctx, eau.ID))
	_, err = a.Get(ctx, eau.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegracion_PrecioCeroRechazadoPorLaBase(t *testing.T) {
	pool := openTestPool(t)
	m := newTestMerchant(t, pool)
	now := time.Now().UTC()

	scope, err := tenancy.NewGuard(NewCatalogStore(pool)).Scope(m.ID)
	require.NoError(t, err)

	// Sin pasar por Prepare: la restricción CHECK es la última barrera.
	err = scope.Insert(context.Background(), &entity.Product{
		ID: uuid.NewString(), Name: "Gratuit", Price: decimal.Zero,
		StockQuantity: 1, Category: "AUTRE", CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
