package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral de alerta cuando el producto no define uno propio.
const DefaultLowStockThreshold = 10

// Product representa un producto vendible; pertenece a un único comercio (tenant).
// Margin es derivado: nunca se acepta como entrada, se recalcula en cada escritura.
type Product struct {
	ID                string
	TenantID          string
	Name              string
	Barcode           string
	Price             decimal.Decimal
	CostPrice         *decimal.Decimal // nil = sin precio de costo
	StockQuantity     int
	LowStockThreshold int
	Category          string
	Subcategory       string
	Description       string
	Supplier          string
	IsAvailable       bool
	Margin            *decimal.Decimal // nil = margen ausente (sin costo o no positivo)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock informa si el stock cayó al umbral propio del producto o por debajo.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// StockValue = precio × cantidad.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

// CostValue = costo × cantidad; sin costo aporta 0.
func (p *Product) CostValue() decimal.Decimal {
	if p.CostPrice == nil {
		return decimal.Zero
	}
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

// Clone copia el producto, incluidos los punteros decimales.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	if p.CostPrice != nil {
		v := *p.CostPrice
		c.CostPrice = &v
	}
	if p.Margin != nil {
		v := *p.Margin
		c.Margin = &v
	}
	return &c
}

// ProductPatch actualización parcial: solo los campos no-nil se aplican.
type ProductPatch struct {
	Name              *string
	Barcode           *string
	Price             *decimal.Decimal
	CostPrice         *decimal.Decimal
	StockQuantity     *int
	LowStockThreshold *int
	Category          *string
	Subcategory       *string
	Description       *string
	Supplier          *string
	IsAvailable       *bool
}

// Apply mezcla el patch sobre p. No toca ID, TenantID, CreatedAt, UpdatedAt ni Margin.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Barcode != nil {
		p.Barcode = *pp.Barcode
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.CostPrice != nil {
		v := *pp.CostPrice
		p.CostPrice = &v
	}
	if pp.StockQuantity != nil {
		p.StockQuantity = *pp.StockQuantity
	}
	if pp.LowStockThreshold != nil {
		p.LowStockThreshold = *pp.LowStockThreshold
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Subcategory != nil {
		p.Subcategory = *pp.Subcategory
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Supplier != nil {
		p.Supplier = *pp.Supplier
	}
	if pp.IsAvailable != nil {
		p.IsAvailable = *pp.IsAvailable
	}
}

// IsEmpty informa si el patch no trae ningún campo.
func (pp ProductPatch) IsEmpty() bool {
	return pp == ProductPatch{}
}
