package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ComputeMargin implementa el margen comercial sobre precio de venta (servicio de dominio).
// Margen = (Precio - Costo) / Precio × 100, redondeado a 2 decimales.
// Devuelve nil si no hay costo o si Costo >= Precio: solo se informa un margen positivo.
func ComputeMargin(price decimal.Decimal, cost *decimal.Decimal) *decimal.Decimal {
	if cost == nil || !price.GreaterThan(*cost) || !price.IsPositive() {
		return nil
	}
	m := price.Sub(*cost).Div(price).Mul(hundred).Round(2)
	return &m
}
