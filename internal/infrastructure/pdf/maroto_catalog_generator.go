// Package pdf genera la hoja de catálogo imprimible de la exportación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre comercial + email │ Fecha de exportación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UBICACIÓN: Dirección + coordenadas                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Código | Categoría | Stock | Precio | Mg  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos + versión del formato            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/ports"
)

var _ ports.CatalogRenderer = (*MarotoCatalogGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// MarotoCatalogGenerator implementa ports.CatalogRenderer usando Maroto v2.
type MarotoCatalogGenerator struct{}

// NewMarotoCatalogGenerator construye el generador.
func NewMarotoCatalogGenerator() *MarotoCatalogGenerator { return &MarotoCatalogGenerator{} }

// ContentType MIME del documento.
func (g *MarotoCatalogGenerator) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoCatalogGenerator) Render(env *dto.ExportEnvelope) ([]byte, error) {
	info := env.ExportInfo
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo "+info.Merchant.BusinessName, true).
		WithAuthor(info.Merchant.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(info))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(locationRow(info.Merchant))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(env.Products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(info))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(info dto.ExportInfo) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(info.Merchant.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(info.Merchant.Email, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("CATÁLOGO DE PRODUCTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(info.Timestamp, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func locationRow(mr dto.ExportMerchant) core.Row {
	a := mr.Address
	addr := strings.Join(nonEmptyParts(a.Street, a.PostalCode, a.City, a.Country), ", ")
	coords := "-"
	if mr.Location != nil {
		coords = fmt.Sprintf("%.5f, %.5f", mr.Location.Latitude, mr.Location.Longitude)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("UBICACIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Dirección: %s   |   Coordenadas: %s", nonEmpty(addr, "-"), coords),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Código", 2, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Margen", 1, align.Right),
	)
}

// productRows: una fila por producto; el stock se resalta cuando está en alerta.
func productRows(products []dto.ProductResponse) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		stockProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if p.StockQuantity <= p.LowStockThreshold {
			stockProps.Style = fontstyle.Bold
			stockProps.Color = colorAlert
		}
		margin := "-"
		if p.Margin != nil {
			margin = p.Margin.StringFixed(2) + "%"
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(p.Barcode, "-"), props.Text{Size: 7, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New(p.Category, props.Text{Size: 7, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", p.StockQuantity), stockProps)),
			col.New(2).Add(text.New(p.Price.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(margin, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func footerRow(info dto.ExportInfo) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d productos   |   formato %s v%s", info.TotalProducts, info.Standard, info.FormatVersion),
			props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Right}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonEmptyParts(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
