package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
// StockQuantity es obligatorio; LowStockThreshold e IsAvailable son punteros para distinguir
// "ausente" (default) de cero/false.
type CreateProductRequest struct {
	Name              string           `json:"name"`
	Barcode           string           `json:"barcode"`
	Price             decimal.Decimal  `json:"price"`
	CostPrice         *decimal.Decimal `json:"cost_price"`
	StockQuantity     *int             `json:"stock_quantity"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Category          string           `json:"category"`
	Subcategory       string           `json:"subcategory"`
	Description       string           `json:"description"`
	Supplier          string           `json:"supplier"`
	IsAvailable       *bool            `json:"is_available"`
}

// UpdateProductRequest actualización parcial: solo los campos presentes se aplican.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Barcode           *string          `json:"barcode"`
	Price             *decimal.Decimal `json:"price"`
	CostPrice         *decimal.Decimal `json:"cost_price"`
	StockQuantity     *int             `json:"stock_quantity"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Category          *string          `json:"category"`
	Subcategory       *string          `json:"subcategory"`
	Description       *string          `json:"description"`
	Supplier          *string          `json:"supplier"`
	IsAvailable       *bool            `json:"is_available"`
}

// ProductFilter filtros de listado (query string).
type ProductFilter struct {
	Category string `query:"category"`
	Search   string `query:"search"`
}

// ProductResponse salida de un producto. Margin se omite cuando no es positivo o no hay costo.
type ProductResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Barcode           string           `json:"barcode,omitempty"`
	Price             decimal.Decimal  `json:"price"`
	CostPrice         *decimal.Decimal `json:"cost_price,omitempty"`
	StockQuantity     int              `json:"stock_quantity"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	Category          string           `json:"category"`
	Subcategory       string           `json:"subcategory,omitempty"`
	Description       string           `json:"description,omitempty"`
	Supplier          string           `json:"supplier,omitempty"`
	IsAvailable       bool             `json:"is_available"`
	Margin            *decimal.Decimal `json:"margin,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// NewProductResponse mapea la entidad a su representación de salida.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Barcode:           p.Barcode,
		Price:             p.Price,
		CostPrice:         p.CostPrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		Category:          p.Category,
		Subcategory:       p.Subcategory,
		Description:       p.Description,
		Supplier:          p.Supplier,
		IsAvailable:       p.IsAvailable,
		Margin:            p.Margin,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// NewProductList mapea una lista; nunca devuelve nil.
func NewProductList(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}
