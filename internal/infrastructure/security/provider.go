// Package security implementa ports.AuthProvider con bcrypt y JWT HS256.
package security

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-api/internal/application/ports"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/pkg/jwt"
)

var _ ports.AuthProvider = (*Provider)(nil)

// Provider hashea credenciales y emite/resuelve tokens de sesión.
type Provider struct {
	secret string
	issuer string
	ttl    time.Duration
	cost   int
}

// NewProvider construye el proveedor. cost <= 0 usa bcrypt.DefaultCost.
func NewProvider(secret, issuer string, ttl time.Duration, cost int) (*Provider, error) {
	if secret == "" {
		return nil, fmt.Errorf("security: JWT_SECRET vacío")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("security: duración de token debe ser positiva")
	}
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Provider{secret: secret, issuer: issuer, ttl: ttl, cost: cost}, nil
}

// Hash deriva la credencial almacenable; el texto plano nunca se persiste.
func (p *Provider) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("security: hash: %w", err)
	}
	return string(h), nil
}

// Verify compara en tiempo constante la contraseña con la credencial almacenada.
func (p *Provider) Verify(password, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(password)) == nil
}

// IssueToken emite un token firmado para el comercio.
func (p *Provider) IssueToken(merchantID string) (string, error) {
	return jwt.Generate(p.secret, merchantID, p.issuer, p.ttl)
}

// ResolveToken devuelve el comercio del token. ErrTokenExpired o ErrTokenInvalid en caso contrario.
func (p *Provider) ResolveToken(token string) (string, error) {
	if token == "" {
		return "", domain.ErrTokenInvalid
	}
	id, err := jwt.Parse(p.secret, token)
	switch {
	case errors.Is(err, jwt.ErrExpired):
		return "", domain.ErrTokenExpired
	case err != nil:
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	return id, nil
}
