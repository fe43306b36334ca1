package dto

import (
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// AddressDTO dirección postal.
type AddressDTO struct {
	Street     string `json:"street" validate:"omitempty,max=200"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"omitempty,max=100"`
}

// GeoPointDTO coordenadas geocodificadas.
type GeoPointDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RegisterRequest entrada para registrar un comercio.
type RegisterRequest struct {
	Email              string     `json:"email" validate:"required,email"`
	Password           string     `json:"password" validate:"required,min=8"`
	BusinessName       string     `json:"business_name" validate:"required,min=1,max=200"`
	BusinessType       string     `json:"business_type" validate:"omitempty,max=100"`
	RegistrationNumber string     `json:"registration_number" validate:"omitempty,max=50"`
	Phone              string     `json:"phone" validate:"omitempty,max=30"`
	Address            AddressDTO `json:"address"`
	Description        string     `json:"description" validate:"omitempty,max=2000"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token Bearer más el perfil del comercio.
type LoginResponse struct {
	Token     string           `json:"token"`
	TokenType string           `json:"token_type"`
	Merchant  MerchantResponse `json:"merchant"`
}

// UpdateStatusRequest activa o desactiva el comercio.
type UpdateStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// MerchantResponse salida de un comercio (sin credenciales).
type MerchantResponse struct {
	ID                 string       `json:"id"`
	Email              string       `json:"email"`
	BusinessName       string       `json:"business_name"`
	BusinessType       string       `json:"business_type,omitempty"`
	RegistrationNumber string       `json:"registration_number,omitempty"`
	Phone              string       `json:"phone,omitempty"`
	Address            AddressDTO   `json:"address"`
	Location           *GeoPointDTO `json:"location,omitempty"`
	Description        string       `json:"description,omitempty"`
	Active             bool         `json:"active"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// NewAddressDTO mapea la dirección del dominio.
func NewAddressDTO(a entity.Address) AddressDTO {
	return AddressDTO{Street: a.Street, PostalCode: a.PostalCode, City: a.City, Country: a.Country}
}

// NewGeoPointDTO mapea la ubicación; nil si no hay.
func NewGeoPointDTO(g *entity.GeoPoint) *GeoPointDTO {
	if g == nil {
		return nil
	}
	return &GeoPointDTO{Latitude: g.Latitude, Longitude: g.Longitude}
}

// NewMerchantResponse mapea la entidad omitiendo la credencial.
func NewMerchantResponse(m *entity.Merchant) MerchantResponse {
	return MerchantResponse{
		ID:                 m.ID,
		Email:              m.Email,
		BusinessName:       m.BusinessName,
		BusinessType:       m.BusinessType,
		RegistrationNumber: m.RegistrationNumber,
		Phone:              m.Phone,
		Address:            NewAddressDTO(m.Address),
		Location:           NewGeoPointDTO(m.Location),
		Description:        m.Description,
		Active:             m.Active,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
