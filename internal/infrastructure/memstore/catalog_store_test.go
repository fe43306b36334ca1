package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
	"github.com/jhoicas/stock-api/internal/infrastructure/memstore"
)

func seed(t *testing.T) *tenancy.Scope {
	t.Helper()
	scope, err := tenancy.NewGuard(memstore.NewCatalogStore()).Scope("t1")
	require.NoError(t, err)
	cost := decimal.RequireFromString("2")
	products := []*entity.Product{
		{ID: "1", Name: "Café moulu", Barcode: "3017620422003", Price: decimal.NewFromInt(5), CostPrice: &cost, StockQuantity: 3, LowStockThreshold: 10, Category: "BOISSONS"},
		{ID: "2", Name: "Thé vert", Description: "Infusion CAFÉINÉE", Price: decimal.NewFromInt(4), StockQuantity: 50, LowStockThreshold: 10, Category: "BOISSONS"},
		{ID: "3", Name: "Savon", Price: decimal.NewFromInt(2), StockQuantity: 10, LowStockThreshold: 10, Category: "HYGIENE_BEAUTE"},
	}
	for _, p := range products {
		p.CreatedAt = time.Now()
		require.NoError(t, scope.Insert(context.Background(), p))
	}
	return scope
}

func ids(list []*entity.Product) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestFind_BusquedaSinMayusculas(t *testing.T) {
	scope := seed(t)
	ctx := context.Background()

	list, err := scope.Find(ctx, tenancy.Filter{Search: "CAFÉ"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(list), "coincide en name y en description")

	list, err = scope.Find(ctx, tenancy.Filter{Search: "4220"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(list), "coincide en barcode")

	list, err = scope.Find(ctx, tenancy.Filter{Category: "BOISSONS", Search: "savon"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFind_StockBajoIncluyeIgualdad(t *testing.T) {
	scope := seed(t)
	list, err := scope.Find(context.Background(), tenancy.Filter{LowStockOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(list))
}

func TestAggregate_PorCategoria(t *testing.T) {
	scope := seed(t)
	groups, err := scope.Aggregate(context.Background(), tenancy.Filter{})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "BOISSONS", groups[0].Key)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, 1, groups[0].LowStockCount)
	assert.True(t, decimal.NewFromInt(215).Equal(groups[0].StockValue))
	assert.True(t, decimal.NewFromInt(6).Equal(groups[0].CostValue), "sin costo aporta 0")

	assert.Equal(t, "HYGIENE_BEAUTE", groups[1].Key)
	assert.True(t, decimal.NewFromInt(20).Equal(groups[1].StockValue))
}

func TestReplace_NoCambiaIdentidad(t *testing.T) {
	scope := seed(t)
	ctx := context.Background()

	p, err := scope.Get(ctx, "3")
	require.NoError(t, err)
	p.Name = "Savon de Marseille"
	require.NoError(t, scope.Replace(ctx, p))

	got, err := scope.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Savon de Marseille", got.Name)
	assert.Equal(t, "t1", got.TenantID)
}

func TestDelete_Fisico(t *testing.T) {
	scope := seed(t)
	ctx := context.Background()

	require.NoError(t, scope.Delete(ctx, "2"))
	assert.ErrorIs(t, scope.Delete(ctx, "2"), domain.ErrNotFound)

	list, err := scope.Find(ctx, tenancy.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(list))
}

func TestCopiasDefensivas(t *testing.T) {
	scope := seed(t)
	ctx := context.Background()

	p, err := scope.Get(ctx, "1")
	require.NoError(t, err)
	*p.CostPrice = decimal.NewFromInt(999)

	again, err := scope.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(*again.CostPrice))
}

func TestMerchantRepo_EmailUnico(t *testing.T) {
	repo := memstore.NewMerchantRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Merchant{ID: "m1", Email: "shop@example.fr"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Merchant{ID: "m2", Email: "shop@example.fr"}), domain.ErrEmailAlreadyExists)
	assert.NoError(t, repo.Create(ctx, &entity.Merchant{ID: "m3", Email: "Shop@example.fr"}), "unicidad sensible a mayúsculas")

	require.NoError(t, repo.SetActive(ctx, "m1", false, time.Now()))
	m, err := repo.GetByEmail(ctx, "shop@example.fr")
	require.NoError(t, err)
	assert.False(t, m.Active)

	assert.ErrorIs(t, repo.SetActive(ctx, "nope", true, time.Now()), domain.ErrNotFound)
}
