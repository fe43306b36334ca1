package entity

import "time"

// Address dirección postal del comercio.
type Address struct {
	Street     string
	PostalCode string
	City       string
	Country    string
}

// IsEmpty informa si no hay ningún dato de dirección.
func (a Address) IsEmpty() bool {
	return a.Street == "" && a.PostalCode == "" && a.City == "" && a.Country == ""
}

// GeoPoint coordenadas obtenidas por geocodificación.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Merchant representa un comercio registrado: es el tenant dueño de un catálogo aislado.
type Merchant struct {
	ID                 string
	Email              string // único, sensible a mayúsculas
	PasswordHash       string // producido por el AuthProvider, nunca en claro
	BusinessName       string
	BusinessType       string
	RegistrationNumber string // opcional (SIRET, NIT, ...)
	Phone              string
	Address            Address
	Location           *GeoPoint // nil si la geocodificación no devolvió resultado
	Description        string
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
