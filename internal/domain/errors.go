package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrDuplicate)
	ErrUnauthorized       = errors.New("no autorizado")
	ErrTokenExpired       = fmt.Errorf("%w: token expirado", ErrUnauthorized)
	ErrTokenInvalid       = fmt.Errorf("%w: token inválido", ErrUnauthorized)
	ErrForbidden          = errors.New("acceso denegado")
	ErrPersistence        = errors.New("fallo de persistencia")
	ErrMissingTenant      = errors.New("consulta sin tenant")
)

// ValidationError describe el primer campo inválido de una entrada.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// PersistenceError envuelve un fallo del almacenamiento (DB caída, timeout, etc.).
type PersistenceError struct {
	Op  string
	Err error
}

// Persistence envuelve err como PersistenceError; devuelve nil si err es nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
