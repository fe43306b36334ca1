package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/catalog"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// Precio y costo se almacenan como NUMERIC(14,4): 4 decimales y valor absoluto menor que 10^10.
const amountScale = 4

var amountLimit = decimal.New(1, 10)

// fitsAmount indica si d se almacena sin redondeo ni desbordamiento.
func fitsAmount(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(amountScale)) && d.Abs().LessThan(amountLimit)
}

// ValidateProduct comprueba los invariantes de entrada de un producto contra la taxonomía.
// Devuelve el primer *domain.ValidationError encontrado, o nil.
func ValidateProduct(tx *catalog.Taxonomy, p *entity.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return domain.NewValidationError("name", "es requerido")
	case !p.Price.IsPositive():
		return domain.NewValidationError("price", "debe ser mayor que 0")
	case !fitsAmount(p.Price):
		return domain.NewValidationError("price", "máximo 4 decimales y menor que 10000000000")
	case p.CostPrice != nil && p.CostPrice.IsNegative():
		return domain.NewValidationError("cost_price", "no puede ser negativo")
	case p.CostPrice != nil && !fitsAmount(*p.CostPrice):
		return domain.NewValidationError("cost_price", "máximo 4 decimales y menor que 10000000000")
	case p.StockQuantity < 0:
		return domain.NewValidationError("stock_quantity", "no puede ser negativo")
	case p.LowStockThreshold < 0:
		return domain.NewValidationError("low_stock_threshold", "no puede ser negativo")
	case !tx.HasCategory(p.Category):
		return domain.NewValidationError("category", "categoría desconocida: "+p.Category)
	case !tx.AllowsSubcategory(p.Category, p.Subcategory):
		return domain.NewValidationError("subcategory", "subcategoría "+p.Subcategory+" no pertenece a "+p.Category)
	}
	return nil
}

// Prepare valida p y recalcula su margen a partir del precio y costo actuales.
// Es el único camino por el que un producto llega al almacén.
func Prepare(tx *catalog.Taxonomy, p *entity.Product) error {
	if err := ValidateProduct(tx, p); err != nil {
		return err
	}
	p.Margin = ComputeMargin(p.Price, p.CostPrice)
	return nil
}
