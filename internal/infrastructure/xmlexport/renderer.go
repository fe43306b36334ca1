// Package xmlexport serializa la exportación del catálogo como XML canónico (C14N).
package xmlexport

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/ports"
)

// Namespace del documento de exportación.
const Namespace = "urn:stock-api:catalog-export:1"

const header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

var _ ports.CatalogRenderer = (*Renderer)(nil)

// Renderer implementa ports.CatalogRenderer con etree + canonicalización C14N.
type Renderer struct{}

// NewRenderer construye el renderer XML.
func NewRenderer() *Renderer { return &Renderer{} }

// ContentType MIME del documento.
func (r *Renderer) ContentType() string { return "application/xml" }

// Render construye el árbol y lo canonicaliza; el mismo envelope produce siempre los mismos bytes.
func (r *Renderer) Render(env *dto.ExportEnvelope) ([]byte, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("CatalogExport")
	root.CreateAttr("xmlns", Namespace)

	info := env.ExportInfo
	ei := root.CreateElement("ExportInfo")
	ei.CreateAttr("formatVersion", info.FormatVersion)
	ei.CreateAttr("standard", info.Standard)
	text(ei, "Timestamp", info.Timestamp)
	text(ei, "TotalProducts", strconv.Itoa(info.TotalProducts))
	writeMerchant(ei, info.Merchant)

	products := root.CreateElement("Products")
	for _, p := range env.Products {
		writeProduct(products, p)
	}

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	canonical, err := canonicalize(raw)
	if err != nil {
		return nil, fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	return append([]byte(header), canonical...), nil
}

func writeMerchant(parent *etree.Element, m dto.ExportMerchant) {
	el := parent.CreateElement("Merchant")
	el.CreateAttr("id", m.ID)
	text(el, "BusinessName", m.BusinessName)
	text(el, "Email", m.Email)

	addr := el.CreateElement("Address")
	optional(addr, "Street", m.Address.Street)
	optional(addr, "PostalCode", m.Address.PostalCode)
	optional(addr, "City", m.Address.City)
	optional(addr, "Country", m.Address.Country)

	if m.Location != nil {
		loc := el.CreateElement("Location")
		loc.CreateAttr("latitude", strconv.FormatFloat(m.Location.Latitude, 'f', -1, 64))
		loc.CreateAttr("longitude", strconv.FormatFloat(m.Location.Longitude, 'f', -1, 64))
	}
}

func writeProduct(parent *etree.Element, p dto.ProductResponse) {
	el := parent.CreateElement("Product")
	el.CreateAttr("id", p.ID)
	text(el, "Name", p.Name)
	optional(el, "Barcode", p.Barcode)
	text(el, "Price", p.Price.String())
	if p.CostPrice != nil {
		text(el, "CostPrice", p.CostPrice.String())
	}
	if p.Margin != nil {
		text(el, "Margin", p.Margin.String())
	}
	text(el, "StockQuantity", strconv.Itoa(p.StockQuantity))
	text(el, "LowStockThreshold", strconv.Itoa(p.LowStockThreshold))
	text(el, "Category", p.Category)
	optional(el, "Subcategory", p.Subcategory)
	optional(el, "Description", p.Description)
	optional(el, "Supplier", p.Supplier)
	text(el, "IsAvailable", strconv.FormatBool(p.IsAvailable))
	text(el, "CreatedAt", p.CreatedAt.UTC().Format(time.RFC3339))
	text(el, "UpdatedAt", p.UpdatedAt.UTC().Format(time.RFC3339))
}

func text(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}

func optional(parent *etree.Element, tag, value string) {
	if value != "" {
		text(parent, tag, value)
	}
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
