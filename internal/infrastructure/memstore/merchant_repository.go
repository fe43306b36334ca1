package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.MerchantRepository = (*MerchantRepo)(nil)

// MerchantRepo repositorio de comercios en memoria con índice único por email.
type MerchantRepo struct {
	mu      sync.RWMutex
	byID    map[string]*entity.Merchant
	byEmail map[string]string
}

// NewMerchantRepository construye el repositorio vacío.
func NewMerchantRepository() *MerchantRepo {
	return &MerchantRepo{
		byID:    make(map[string]*entity.Merchant),
		byEmail: make(map[string]string),
	}
}

// Create persiste el comercio; el email es único (sensible a mayúsculas).
func (r *MerchantRepo) Create(_ context.Context, m *entity.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[m.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}
	if _, taken := r.byID[m.ID]; taken {
		return domain.ErrDuplicate
	}
	cp := cloneMerchant(m)
	r.byID[m.ID] = cp
	r.byEmail[m.Email] = m.ID
	return nil
}

// GetByID obtiene un comercio por ID.
func (r *MerchantRepo) GetByID(_ context.Context, id string) (*entity.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneMerchant(m), nil
}

// GetByEmail obtiene un comercio por email exacto.
func (r *MerchantRepo) GetByEmail(_ context.Context, email string) (*entity.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return cloneMerchant(r.byID[id]), nil
}

// SetActive cambia el flag activo.
func (r *MerchantRepo) SetActive(_ context.Context, id string, active bool, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Active = active
	m.UpdatedAt = updatedAt
	return nil
}

func cloneMerchant(m *entity.Merchant) *entity.Merchant {
	cp := *m
	if m.Location != nil {
		loc := *m.Location
		cp.Location = &loc
	}
	return &cp
}
