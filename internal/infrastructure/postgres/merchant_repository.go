package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// Asegura que MerchantRepo implementa repository.MerchantRepository.
var _ repository.MerchantRepository = (*MerchantRepo)(nil)

const merchantColumns = `id, email, password_hash, business_name, business_type, registration_number, phone,
	street, postal_code, city, country, latitude, longitude, description, active, created_at, updated_at`

// MerchantRepo implementación del puerto MerchantRepository sobre PostgreSQL.
type MerchantRepo struct {
	q Querier
}

// NewMerchantRepository construye el adaptador de persistencia para comercios.
func NewMerchantRepository(q Querier) *MerchantRepo {
	return &MerchantRepo{q: q}
}

// Create persiste un nuevo comercio.
func (r *MerchantRepo) Create(ctx context.Context, m *entity.Merchant) error {
	var lat, lng *float64
	if m.Location != nil {
		lat, lng = &m.Location.Latitude, &m.Location.Longitude
	}
	query := `INSERT INTO merchants (` + merchantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Email, m.PasswordHash, m.BusinessName, m.BusinessType, m.RegistrationNumber, m.Phone,
		m.Address.Street, m.Address.PostalCode, m.Address.City, m.Address.Country, lat, lng,
		m.Description, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return domain.Persistence("insert merchant", err)
	}
	return nil
}

// GetByID obtiene un comercio por ID.
func (r *MerchantRepo) GetByID(ctx context.Context, id string) (*entity.Merchant, error) {
	return r.getOne(ctx, "get merchant", `SELECT `+merchantColumns+` FROM merchants WHERE id = $1`, id)
}

// GetByEmail obtiene un comercio por email exacto.
func (r *MerchantRepo) GetByEmail(ctx context.Context, email string) (*entity.Merchant, error) {
	return r.getOne(ctx, "get merchant by email", `SELECT `+merchantColumns+` FROM merchants WHERE email = $1`, email)
}

// SetActive activa o desactiva el comercio.
func (r *MerchantRepo) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE merchants SET active = $2, updated_at = $3 WHERE id = $1`, id, active, updatedAt)
	if err != nil {
		return domain.Persistence("update merchant status", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("comercio %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *MerchantRepo) getOne(ctx context.Context, op, query string, arg string) (*entity.Merchant, error) {
	var m entity.Merchant
	var lat, lng *float64
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.Email, &m.PasswordHash, &m.BusinessName, &m.BusinessType, &m.RegistrationNumber, &m.Phone,
		&m.Address.Street, &m.Address.PostalCode, &m.Address.City, &m.Address.Country, &lat, &lng,
		&m.Description, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.Persistence(op, err)
	}
	if lat != nil && lng != nil {
		m.Location = &entity.GeoPoint{Latitude: *lat, Longitude: *lng}
	}
	return &m, nil
}
