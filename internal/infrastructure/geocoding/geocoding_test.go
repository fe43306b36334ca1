package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/infrastructure/metrics"
	"github.com/jhoicas/stock-api/pkg/logger"
)

var paris = entity.Address{Street: "1 rue de Rivoli", PostalCode: "75001", City: "Paris", Country: "France"}

func nominatimStub(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Paris", r.URL.Query().Get("city"))
		assert.Equal(t, "stock-api-test", r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNominatim_Resuelve(t *testing.T) {
	srv := nominatimStub(t, http.StatusOK, `[{"lat":"48.8606","lon":"2.3376","display_name":"Paris"}]`, nil)
	m := metrics.New("t")
	svc := NewNominatimService(srv.URL, "stock-api-test", time.Second, logger.Nop(), m)

	p := svc.Geocode(context.Background(), paris)
	require.NotNil(t, p)
	assert.InDelta(t, 48.8606, p.Latitude, 1e-9)
	assert.InDelta(t, 2.3376, p.Longitude, 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeLookups.WithLabelValues(metrics.GeocodeOK)))
}

func TestNominatim_FallosDevuelvenNil(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"sin resultados": {http.StatusOK, `[]`},
		"error http":     {http.StatusServiceUnavailable, `down`},
		"json inválido":  {http.StatusOK, `{`},
		"latitud rota":   {http.StatusOK, `[{"lat":"x","lon":"2"}]`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := nominatimStub(t, tc.status, tc.body, nil)
			svc := NewNominatimService(srv.URL, "stock-api-test", time.Second, logger.Nop(), nil)
			assert.Nil(t, svc.Geocode(context.Background(), paris))
		})
	}
}

func TestNominatim_RespetaTimeoutDelContexto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	svc := NewNominatimService(srv.URL, "", 5*time.Second, logger.Nop(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	assert.Nil(t, svc.Geocode(ctx, paris))
	assert.Less(t, time.Since(start), time.Second)
}

func TestCachedProvider(t *testing.T) {
	var hits int32
	srv := nominatimStub(t, http.StatusOK, `[{"lat":"48.86","lon":"2.34"}]`, &hits)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	m := metrics.New("t")
	cached := NewCachedProvider(
		NewNominatimService(srv.URL, "stock-api-test", time.Second, logger.Nop(), m),
		client, time.Hour, logger.Nop(), m,
	)

	first := cached.Geocode(context.Background(), paris)
	require.NotNil(t, first)
	variant := paris
	variant.City = "  PARIS "
	second := cached.Geocode(context.Background(), variant)
	require.NotNil(t, second)

	assert.Equal(t, *first, *second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "la segunda llamada sale de la caché")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeLookups.WithLabelValues(metrics.GeocodeHit)))

	ttl := mr.TTL(cacheKey(paris))
	assert.Equal(t, time.Hour, ttl)
}

func TestCachedProvider_RedisCaido(t *testing.T) {
	srv := nominatimStub(t, http.StatusOK, `[{"lat":"1","lon":"2"}]`, nil)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	cached := NewCachedProvider(
		NewNominatimService(srv.URL, "stock-api-test", time.Second, logger.Nop(), nil),
		client, time.Hour, logger.Nop(), nil,
	)
	p := cached.Geocode(context.Background(), paris)
	require.NotNil(t, p, "sin Redis se consulta directo")
	assert.InDelta(t, 1.0, p.Latitude, 1e-9)
}

func TestCacheKey_Normaliza(t *testing.T) {
	a := cacheKey(entity.Address{City: "Saint  Denis", Country: "FRANCE"})
	b := cacheKey(entity.Address{City: "saint denis", Country: "france"})
	assert.Equal(t, a, b)
}
