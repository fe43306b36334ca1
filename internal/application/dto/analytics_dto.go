package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Los montos se redondean a 2 decimales solo aquí; internamente se acumulan con precisión completa.
type DashboardStatsDTO struct {
	TotalProducts     int                    `json:"total_products"`
	LowStockAlerts    int                    `json:"low_stock_alerts"` // mismo criterio que GET /api/alerts/low-stock
	TotalStockValue   decimal.Decimal        `json:"total_stock_value"`
	TotalCostValue    decimal.Decimal        `json:"total_cost_value"`
	EstimatedProfit   decimal.Decimal        `json:"estimated_profit"`
	CategoryBreakdown []CategoryBreakdownDTO `json:"category_breakdown"`
}

// CategoryBreakdownDTO conteo y valor de stock de una categoría.
type CategoryBreakdownDTO struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Value    decimal.Decimal `json:"value"`
}

// LowStockAlertDTO un producto en o por debajo de su umbral.
type LowStockAlertDTO struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	Threshold    int    `json:"threshold"`
}
