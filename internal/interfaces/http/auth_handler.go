package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/infrastructure/metrics"
)

// AuthHandler maneja registro, login y perfil del comercio.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	metrics *metrics.Metrics
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: m}
}

// Register godoc
// @Summary      Registrar comercio
// @Description  Crea la cuenta del comercio. La dirección se geocodifica si es posible; un fallo no bloquea el registro.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del comercio"
// @Success      201   {object}  dto.MerchantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		h.metrics.RecordAuthAttempt("login_" + tokenFailure(err))
		return respondError(c, err)
	}
	h.metrics.RecordAuthAttempt("login_success")
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del comercio autenticado
// @Tags         merchants
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MerchantResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/merchants/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.Context(), GetMerchantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Activar o desactivar el comercio
// @Description  Un comercio inactivo no puede autenticarse; sus productos se conservan.
// @Tags         merchants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStatusRequest  true  "active"
// @Success      200   {object}  dto.MerchantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/merchants/me/status [put]
func (h *AuthHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetActive(c.Context(), GetMerchantID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
