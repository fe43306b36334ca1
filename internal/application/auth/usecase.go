package auth

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/ports"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// DefaultGeocodeTimeout tope de espera del geocodificador durante el registro.
const DefaultGeocodeTimeout = 5 * time.Second

// AuthUseCase casos de uso de cuenta de comercio: registro, login, resolución de token y perfil.
type AuthUseCase struct {
	merchants      repository.MerchantRepository
	auth           ports.AuthProvider
	geocoder       ports.GeocodingProvider
	log            *logger.Logger
	validate       *validator.Validate
	geocodeTimeout time.Duration
	now            func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. geocoder puede ser nil (sin geocodificación).
func NewAuthUseCase(
	merchants repository.MerchantRepository,
	auth ports.AuthProvider,
	geocoder ports.GeocodingProvider,
	log *logger.Logger,
	geocodeTimeout time.Duration,
) *AuthUseCase {
	if geocodeTimeout <= 0 {
		geocodeTimeout = DefaultGeocodeTimeout
	}
	v := validator.New()
	// Reportar el nombre JSON del campo, no el del struct.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &AuthUseCase{
		merchants:      merchants,
		auth:           auth,
		geocoder:       geocoder,
		log:            log,
		validate:       v,
		geocodeTimeout: geocodeTimeout,
		now:            time.Now,
	}
}

// Register crea un comercio activo. Devuelve ErrEmailAlreadyExists sin mutar estado si el email existe.
// Un fallo de geocodificación no aborta el registro: solo deja la ubicación vacía.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.MerchantResponse, error) {
	if err := uc.check(in); err != nil {
		return nil, err
	}
	existing, err := uc.merchants.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := uc.auth.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash de credencial: %w", err)
	}

	addr := entity.Address{
		Street:     in.Address.Street,
		PostalCode: in.Address.PostalCode,
		City:       in.Address.City,
		Country:    in.Address.Country,
	}
	now := uc.now().UTC()
	merchant := &entity.Merchant{
		ID:                 uuid.New().String(),
		Email:              in.Email,
		PasswordHash:       hash,
		BusinessName:       in.BusinessName,
		BusinessType:       in.BusinessType,
		RegistrationNumber: in.RegistrationNumber,
		Phone:              in.Phone,
		Address:            addr,
		Location:           uc.locate(ctx, addr),
		Description:        in.Description,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	// El índice único del almacén rechaza un registro concurrente con el mismo email.
	if err := uc.merchants.Create(ctx, merchant); err != nil {
		return nil, err
	}
	uc.log.Info().Str("merchant_id", merchant.ID).Bool("geocoded", merchant.Location != nil).Msg("comercio registrado")
	out := dto.NewMerchantResponse(merchant)
	return &out, nil
}

// Login verifica email/password, genera el token y retorna token + comercio.
// Email desconocido y contraseña incorrecta son indistinguibles (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := uc.check(in); err != nil {
		return nil, err
	}
	m, err := uc.merchants.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if m == nil || !uc.auth.Verify(in.Password, m.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	if !m.Active {
		return nil, domain.ErrForbidden
	}
	token, err := uc.auth.IssueToken(m.ID)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		Merchant:  dto.NewMerchantResponse(m),
	}, nil
}

// ResolveToken devuelve el comercio dueño del token. El comercio debe seguir existiendo y activo.
func (uc *AuthUseCase) ResolveToken(ctx context.Context, token string) (string, error) {
	merchantID, err := uc.auth.ResolveToken(token)
	if err != nil {
		return "", err
	}
	m, err := uc.merchants.GetByID(ctx, merchantID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", domain.ErrTokenInvalid
	}
	if !m.Active {
		return "", domain.ErrForbidden
	}
	return m.ID, nil
}

// GetProfile devuelve el perfil del comercio.
func (uc *AuthUseCase) GetProfile(ctx context.Context, merchantID string) (*dto.MerchantResponse, error) {
	m, err := uc.merchants.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("comercio %s: %w", merchantID, domain.ErrNotFound)
	}
	out := dto.NewMerchantResponse(m)
	return &out, nil
}

// SetActive activa o desactiva el comercio. Sus productos se conservan.
func (uc *AuthUseCase) SetActive(ctx context.Context, merchantID string, in dto.UpdateStatusRequest) (*dto.MerchantResponse, error) {
	if err := uc.check(in); err != nil {
		return nil, err
	}
	if err := uc.merchants.SetActive(ctx, merchantID, *in.Active, uc.now().UTC()); err != nil {
		return nil, err
	}
	uc.log.Info().Str("merchant_id", merchantID).Bool("active", *in.Active).Msg("estado de comercio actualizado")
	return uc.GetProfile(ctx, merchantID)
}

func (uc *AuthUseCase) locate(ctx context.Context, addr entity.Address) *entity.GeoPoint {
	if uc.geocoder == nil || addr.IsEmpty() {
		return nil
	}
	gctx, cancel := context.WithTimeout(ctx, uc.geocodeTimeout)
	defer cancel()
	p := uc.geocoder.Geocode(gctx, addr)
	if p == nil {
		uc.log.Warn().Str("city", addr.City).Str("country", addr.Country).Msg("geocodificación sin resultado; ubicación vacía")
	}
	return p
}

// check valida la forma de la entrada y reporta el primer campo inválido.
func (uc *AuthUseCase) check(in any) error {
	err := uc.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.NewValidationError(fieldPath(fe), "no cumple la regla "+fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

// fieldPath "RegisterRequest.address.city" -> "address.city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
