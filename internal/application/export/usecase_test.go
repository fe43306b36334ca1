package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/ports"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
	"github.com/jhoicas/stock-api/internal/infrastructure/memstore"
)

type stubRenderer struct {
	got *dto.ExportEnvelope
	err error
}

func (s *stubRenderer) Render(env *dto.ExportEnvelope) ([]byte, error) {
	s.got = env
	return []byte("ok"), s.err
}

func (s *stubRenderer) ContentType() string { return "text/plain" }

func setup(t *testing.T, r ports.CatalogRenderer) *ExportUseCase {
	t.Helper()
	ctx := context.Background()
	merchants := memstore.NewMerchantRepository()
	require.NoError(t, merchants.Create(ctx, &entity.Merchant{
		ID: "t1", Email: "epicerie@shop.fr", BusinessName: "Épicerie du coin", Active: true,
		Address:  entity.Address{City: "Lyon", Country: "France"},
		Location: &entity.GeoPoint{Latitude: 45.76, Longitude: 4.83},
	}))
	require.NoError(t, merchants.Create(ctx, &entity.Merchant{ID: "t2", Email: "autre@shop.fr", Active: true}))

	guard := tenancy.NewGuard(memstore.NewCatalogStore())
	for tenant, names := range map[string][]string{"t1": {"Pain", "Lait"}, "t2": {"Intrus"}} {
		scope, err := guard.Scope(tenant)
		require.NoError(t, err)
		for _, n := range names {
			require.NoError(t, scope.Insert(ctx, &entity.Product{ID: tenant + n, Name: n, Price: decimal.NewFromInt(1), Category: "AUTRE"}))
		}
	}

	uc := NewExportUseCase(guard, merchants, map[string]ports.CatalogRenderer{FormatXML: r})
	uc.now = func() time.Time { return time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC) }
	return uc
}

func TestExport_Sobre(t *testing.T) {
	uc := setup(t, &stubRenderer{})
	env, err := uc.Export(context.Background(), "t1")
	require.NoError(t, err)

	info := env.ExportInfo
	assert.Equal(t, "2026-05-04T10:30:00Z", info.Timestamp)
	assert.Equal(t, 2, info.TotalProducts)
	assert.Equal(t, "1.0", info.FormatVersion)
	assert.Equal(t, "EAN13_JSON", info.Standard)
	assert.Equal(t, "Épicerie du coin", info.Merchant.BusinessName)
	assert.Equal(t, "Lyon", info.Merchant.Address.City)
	require.NotNil(t, info.Merchant.Location)
	assert.InDelta(t, 45.76, info.Merchant.Location.Latitude, 1e-9)

	require.Len(t, env.Products, 2)
	assert.Equal(t, "Pain", env.Products[0].Name)
	assert.Equal(t, "Lait", env.Products[1].Name)
}

func TestExport_ComercioInexistente(t *testing.T) {
	uc := setup(t, &stubRenderer{})
	_, err := uc.Export(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRender_DelegaEnRenderizador(t *testing.T) {
	r := &stubRenderer{}
	uc := setup(t, r)

	body, ct, err := uc.Render(context.Background(), "t2", FormatXML)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, "text/plain", ct)
	require.NotNil(t, r.got)
	assert.Equal(t, 1, r.got.ExportInfo.TotalProducts)
}

func TestRender_Errores(t *testing.T) {
	boom := errors.New("boom")
	uc := setup(t, &stubRenderer{err: boom})

	_, _, err := uc.Render(context.Background(), "t1", "csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Render(context.Background(), "t1", FormatXML)
	assert.ErrorIs(t, err, boom)
}
