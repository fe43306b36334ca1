package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// MerchantRepository define el puerto de persistencia para Merchant (DIP).
// La implementación vive en infrastructure. Los Get* devuelven (nil, nil) si no existe.
type MerchantRepository interface {
	// Create persiste un comercio nuevo; ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, merchant *entity.Merchant) error
	GetByID(ctx context.Context, id string) (*entity.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*entity.Merchant, error)
	// SetActive cambia el flag activo; ErrNotFound si el comercio no existe.
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
}
