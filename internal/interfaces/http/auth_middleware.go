package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/infrastructure/metrics"
)

// LocalMerchantID key de c.Locals con el comercio (tenant) autenticado.
const LocalMerchantID = "merchant_id"

// TokenResolver resuelve un Bearer token al comercio dueño. Lo implementa *auth.AuthUseCase.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (string, error)
}

// AuthMiddleware valida el Bearer Token y deja el merchant_id en c.Locals.
func AuthMiddleware(resolver TokenResolver, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			m.RecordTenantMissing()
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.RecordAuthAttempt("invalid")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			m.RecordTenantMissing()
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		merchantID, err := resolver.ResolveToken(c.Context(), tokenString)
		if err != nil {
			m.RecordAuthAttempt(tokenFailure(err))
			return respondError(c, err)
		}
		m.RecordAuthAttempt("success")
		c.Locals(LocalMerchantID, merchantID)
		return c.Next()
	}
}

func tokenFailure(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrUnauthorized):
		return "invalid"
	}
	return "error"
}

// GetMerchantID devuelve el comercio del contexto (después del middleware de auth).
func GetMerchantID(c *fiber.Ctx) string {
	v := c.Locals(LocalMerchantID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
