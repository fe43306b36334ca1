package dto

// Valores fijos del sobre de exportación.
const (
	ExportFormatVersion = "1.0"
	ExportStandard      = "EAN13_JSON"
)

// ExportEnvelope exportación completa del catálogo de un comercio.
type ExportEnvelope struct {
	ExportInfo ExportInfo        `json:"export_info"`
	Products   []ProductResponse `json:"products"`
}

// ExportInfo metadatos de la exportación.
type ExportInfo struct {
	Timestamp     string         `json:"timestamp"` // RFC 3339
	TotalProducts int            `json:"total_products"`
	FormatVersion string         `json:"format_version"`
	Standard      string         `json:"standard"`
	Merchant      ExportMerchant `json:"merchant"`
}

// ExportMerchant identidad y ubicación del comercio exportador.
type ExportMerchant struct {
	ID           string       `json:"id"`
	BusinessName string       `json:"business_name"`
	Email        string       `json:"email"`
	Address      AddressDTO   `json:"address"`
	Location     *GeoPointDTO `json:"location,omitempty"`
}
