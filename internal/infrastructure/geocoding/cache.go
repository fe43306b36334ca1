package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-api/internal/application/ports"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/infrastructure/metrics"
	"github.com/jhoicas/stock-api/pkg/logger"
)

var _ ports.GeocodingProvider = (*CachedProvider)(nil)

const cacheKeyPrefix = "geocode"

// CachedProvider decora un GeocodingProvider con una caché Redis. Solo se guardan aciertos;
// una dirección sin resultado se vuelve a consultar. Si Redis falla se consulta directo.
type CachedProvider struct {
	next    ports.GeocodingProvider
	client  *redis.Client
	ttl     time.Duration
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewCachedProvider envuelve next.
func NewCachedProvider(next ports.GeocodingProvider, client *redis.Client, ttl time.Duration, log *logger.Logger, m *metrics.Metrics) *CachedProvider {
	return &CachedProvider{next: next, client: client, ttl: ttl, log: log, metrics: m}
}

// Geocode consulta la caché y, si no hay entrada, al proveedor envuelto.
func (c *CachedProvider) Geocode(ctx context.Context, addr entity.Address) *entity.GeoPoint {
	key := cacheKey(addr)
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var p entity.GeoPoint
		if jsonErr := json.Unmarshal(payload, &p); jsonErr == nil {
			c.metrics.RecordGeocode(metrics.GeocodeHit)
			return &p
		}
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Msg("caché de geocodificación no disponible")
	}
	c.metrics.RecordGeocode(metrics.GeocodeMiss)

	p := c.next.Geocode(ctx, addr)
	if p == nil {
		return nil
	}
	raw, err := json.Marshal(p)
	if err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Msg("no se pudo guardar la geocodificación en caché")
		}
	}
	return p
}

// cacheKey normaliza la dirección: minúsculas y espacios colapsados.
func cacheKey(addr entity.Address) string {
	parts := []string{cacheKeyPrefix}
	for _, v := range []string{addr.Street, addr.PostalCode, addr.City, addr.Country} {
		parts = append(parts, strings.Join(strings.Fields(strings.ToLower(v)), " "))
	}
	return strings.Join(parts, ":")
}
