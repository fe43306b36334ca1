package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/analytics"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
	"github.com/jhoicas/stock-api/internal/infrastructure/memstore"
)

func seed(t *testing.T, guard *tenancy.Guard, tenantID string, products ...*entity.Product) {
	t.Helper()
	scope, err := guard.Scope(tenantID)
	require.NoError(t, err)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range products {
		p.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, scope.Insert(context.Background(), p))
	}
}

func product(id, category, price, cost string, stock, threshold int) *entity.Product {
	p := &entity.Product{
		ID: id, Name: "P" + id, Category: category, Price: decimal.RequireFromString(price),
		StockQuantity: stock, LowStockThreshold: threshold,
	}
	if cost != "" {
		c := decimal.RequireFromString(cost)
		p.CostPrice = &c
	}
	return p
}

func TestGetStats_ScenarioE_CatalogoVacio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(tenancy.NewGuard(memstore.NewCatalogStore()))
	stats, err := uc.GetStats(context.Background(), "vacio")
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalProducts)
	assert.Equal(t, 0, stats.LowStockAlerts)
	assert.True(t, stats.TotalStockValue.IsZero())
	assert.True(t, stats.TotalCostValue.IsZero())
	assert.True(t, stats.EstimatedProfit.IsZero())
	require.NotNil(t, stats.CategoryBreakdown)
	assert.Empty(t, stats.CategoryBreakdown)
}

func TestGetStats_Totales(t *testing.T) {
	guard := tenancy.NewGuard(memstore.NewCatalogStore())
	seed(t, guard, "t1",
		product("a", "ALIMENTAIRE", "1.20", "0.80", 25, 30),
		product("b", "ELECTRONIQUE", "299.99", "150.00", 3, 2),
		product("c", "ALIMENTAIRE", "0.333", "", 3, 10),
	)
	seed(t, guard, "t2", product("z", "AUTRE", "1000", "1", 1000, 0))

	stats, err := analytics.NewDashboardUseCase(guard).GetStats(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.LowStockAlerts)
	// 30 + 899.97 + 0.999 = 930.969
	assert.Equal(t, "930.97", stats.TotalStockValue.StringFixed(2))
	// 20 + 450 (sin costo aporta 0)
	assert.Equal(t, "470.00", stats.TotalCostValue.StringFixed(2))
	assert.Equal(t, "460.97", stats.EstimatedProfit.StringFixed(2))

	require.Len(t, stats.CategoryBreakdown, 2)
	assert.Equal(t, "ALIMENTAIRE", stats.CategoryBreakdown[0].Category)
	assert.Equal(t, 2, stats.CategoryBreakdown[0].Count)
	assert.Equal(t, "31.00", stats.CategoryBreakdown[0].Value.StringFixed(2))
	assert.Equal(t, "ELECTRONIQUE", stats.CategoryBreakdown[1].Category)
}

func TestGetStats_RedondeoSoloAlFinal(t *testing.T) {
	guard := tenancy.NewGuard(memstore.NewCatalogStore())
	// Tres productos de 0.005: redondear cada uno daría 0.03; el total exacto es 0.015 -> 0.02.
	seed(t, guard, "t1",
		product("a", "AUTRE", "0.005", "", 1, 0),
		product("b", "AUTRE", "0.005", "", 1, 0),
		product("c", "AUTRE", "0.005", "", 1, 0),
	)
	stats, err := analytics.NewDashboardUseCase(guard).GetStats(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "0.02", stats.TotalStockValue.StringFixed(2))
}

func TestGetLowStockAlerts_ParidadConStats(t *testing.T) {
	guard := tenancy.NewGuard(memstore.NewCatalogStore())
	seed(t, guard, "t1",
		product("a", "ALIMENTAIRE", "1.20", "0.80", 25, 30),
		product("b", "ELECTRONIQUE", "299.99", "150.00", 3, 2),
		product("c", "AUTRE", "5", "", 10, 10),
		product("d", "AUTRE", "5", "", 0, 0),
	)
	uc := analytics.NewDashboardUseCase(guard)

	alerts, err := uc.GetLowStockAlerts(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, "a", alerts[0].ProductID, "escenario A aparece")
	assert.Equal(t, 25, alerts[0].CurrentStock)
	assert.Equal(t, 30, alerts[0].Threshold)
	assert.Equal(t, "c", alerts[1].ProductID, "stock igual al umbral cuenta")
	assert.Equal(t, "d", alerts[2].ProductID)
	for _, a := range alerts {
		assert.NotEqual(t, "b", a.ProductID, "escenario B no aparece")
	}

	stats, err := uc.GetStats(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, len(alerts), stats.LowStockAlerts)
}

func TestGetLowStockAlerts_SinTenant(t *testing.T) {
	uc := analytics.NewDashboardUseCase(tenancy.NewGuard(memstore.NewCatalogStore()))
	_, err := uc.GetLowStockAlerts(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingTenant)

	alerts, err := uc.GetLowStockAlerts(context.Background(), "t1")
	require.NoError(t, err)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}
