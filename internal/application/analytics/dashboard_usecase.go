// Package analytics contiene los casos de uso de métricas del catálogo:
// estadísticas del dashboard y alertas de stock bajo.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
)

// DashboardUseCase deriva las métricas del catálogo de un comercio.
//
// Fuente de datos: el Scope del tenant (consultas read-only). Las estadísticas salen de una
// única agregación agrupada por categoría, de modo que todos los totales corresponden a la
// misma instantánea.
type DashboardUseCase struct {
	guard *tenancy.Guard
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(guard *tenancy.Guard) *DashboardUseCase {
	return &DashboardUseCase{guard: guard}
}

// GetStats construye el DashboardStatsDTO del comercio.
// Un catálogo vacío devuelve ceros y un desglose vacío (nunca nil).
func (uc *DashboardUseCase) GetStats(ctx context.Context, tenantID string) (*dto.DashboardStatsDTO, error) {
	scope, err := uc.guard.Scope(tenantID)
	if err != nil {
		return nil, err
	}
	groups, err := scope.Aggregate(ctx, tenancy.Filter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard: agregación por categoría: %w", err)
	}

	// ── Totales con precisión completa ────────────────────────────────────────
	total, lowStock := 0, 0
	stockValue, costValue := decimal.Zero, decimal.Zero
	breakdown := make([]dto.CategoryBreakdownDTO, 0, len(groups))
	for _, g := range groups {
		total += g.Count
		lowStock += g.LowStockCount
		stockValue = stockValue.Add(g.StockValue)
		costValue = costValue.Add(g.CostValue)
		breakdown = append(breakdown, dto.CategoryBreakdownDTO{
			Category: g.Key,
			Count:    g.Count,
			Value:    g.StockValue.Round(2),
		})
	}

	// ── Redondeo solo en la salida ────────────────────────────────────────────
	return &dto.DashboardStatsDTO{
		TotalProducts:     total,
		LowStockAlerts:    lowStock,
		TotalStockValue:   stockValue.Round(2),
		TotalCostValue:    costValue.Round(2),
		EstimatedProfit:   stockValue.Sub(costValue).Round(2),
		CategoryBreakdown: breakdown,
	}, nil
}

// GetLowStockAlerts devuelve un aviso por cada producto con stock <= su propio umbral,
// en orden de descubrimiento (creación).
func (uc *DashboardUseCase) GetLowStockAlerts(ctx context.Context, tenantID string) ([]dto.LowStockAlertDTO, error) {
	scope, err := uc.guard.Scope(tenantID)
	if err != nil {
		return nil, err
	}
	list, err := scope.Find(ctx, tenancy.Filter{LowStockOnly: true})
	if err != nil {
		return nil, fmt.Errorf("alertas de stock: %w", err)
	}
	alerts := make([]dto.LowStockAlertDTO, 0, len(list))
	for _, p := range list {
		alerts = append(alerts, dto.LowStockAlertDTO{
			ProductID:    p.ID,
			Name:         p.Name,
			CurrentStock: p.StockQuantity,
			Threshold:    p.LowStockThreshold,
		})
	}
	return alerts, nil
}
