package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/stock-api/internal/application/ports"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/infrastructure/metrics"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// Verificar en tiempo de compilación que NominatimService implementa GeocodingProvider.
var _ ports.GeocodingProvider = (*NominatimService)(nil)

// DefaultBaseURL servidor público de OpenStreetMap.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimService adaptador que resuelve direcciones con la API /search de Nominatim
// (o cualquier servidor compatible).
type NominatimService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// NewNominatimService construye el adaptador. La política de uso de Nominatim exige un User-Agent propio.
func NewNominatimService(baseURL, userAgent string, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) *NominatimService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NominatimService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout}, // timeout de red; el caller también pone WithTimeout
		log:        log,
		metrics:    m,
	}
}

// nominatimPlace elemento de la respuesta; lat/lon llegan como strings.
type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode devuelve la primera coincidencia o nil. Los fallos se registran como warning.
func (s *NominatimService) Geocode(ctx context.Context, addr entity.Address) *entity.GeoPoint {
	p, err := s.lookup(ctx, addr)
	if err != nil {
		s.metrics.RecordGeocode(metrics.GeocodeFail)
		s.log.Warn().Err(err).Str("city", addr.City).Msg("geocodificación fallida")
		return nil
	}
	if p != nil {
		s.metrics.RecordGeocode(metrics.GeocodeOK)
	}
	return p
}

func (s *NominatimService) lookup(ctx context.Context, addr entity.Address) (*entity.GeoPoint, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	for key, val := range map[string]string{
		"street":     addr.Street,
		"postalcode": addr.PostalCode,
		"city":       addr.City,
		"country":    addr.Country,
	} {
		if val != "" {
			q.Set(key, val)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocoding: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("geocoding: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("geocoding: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding: HTTP %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("geocoding: leer respuesta: %w", err)
	}

	var places []nominatimPlace
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("geocoding: deserializar respuesta: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoding: latitud inválida %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoding: longitud inválida %q: %w", places[0].Lon, err)
	}
	return &entity.GeoPoint{Latitude: lat, Longitude: lon}, nil
}
