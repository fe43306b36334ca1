package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"` // primer campo inválido, solo en VALIDATION_ERROR
}

// HealthResponse salida de GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// CategoriesResponse taxonomía de categorías y subcategorías.
type CategoriesResponse struct {
	Categories    []string            `json:"categories"`
	Subcategories map[string][]string `json:"subcategories"`
}
