package domain

import "errors"

// Tipos de error de dominio (sin dependencias externas). Cada error que cruza
// una capa debe poder compararse con errors.Is contra uno de estos valores.
var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthenticated    = errors.New("sesión inválida o expirada")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con un registro existente")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrInternal           = errors.New("error interno")
)

// Error asocia un mensaje legible a uno de los tipos de error de dominio.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrConflict) y similares.
func (e *Error) Unwrap() error { return e.Kind }

// Wrap construye un error del tipo kind con un mensaje propio.
func Wrap(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// KindOf devuelve el tipo de dominio de err; ErrInternal si no corresponde a ninguno.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrValidation, ErrInvalidCredentials, ErrUnauthenticated,
		ErrForbidden, ErrNotFound, ErrConflict,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}

// KindName nombre estable (legible por máquina) del tipo de error.
func KindName(kind error) string {
	switch kind {
	case ErrInvalidCredentials:
		return "InvalidCredentials"
	case ErrUnauthenticated:
		return "Unauthenticated"
	case ErrForbidden:
		return "Forbidden"
	case ErrConflict:
		return "Conflict"
	case ErrNotFound:
		return "NotFound"
	case ErrValidation:
		return "ValidationError"
	default:
		return "InternalError"
	}
}
