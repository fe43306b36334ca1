package ports

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// GeocodingProvider define el puerto de salida para resolver direcciones a coordenadas.
// Cualquier adaptador (Nominatim, caché, mock) debe implementar esta interfaz.
type GeocodingProvider interface {
	// Geocode es de mejor esfuerzo: ante cualquier fallo devuelve nil y nunca propaga el error.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	Geocode(ctx context.Context, addr entity.Address) *entity.GeoPoint
}
