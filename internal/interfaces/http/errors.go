package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

type errorMapping struct {
	status int
	code   string
}

var errorMappings = map[error]errorMapping{
	domain.ErrValidation:         {fiber.StatusBadRequest, "VALIDATION"},
	domain.ErrInvalidCredentials: {fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	domain.ErrUnauthenticated:    {fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	domain.ErrForbidden:          {fiber.StatusForbidden, "FORBIDDEN"},
	domain.ErrNotFound:           {fiber.StatusNotFound, "NOT_FOUND"},
	domain.ErrConflict:           {fiber.StatusConflict, "CONFLICT"},
}

// respondError traduce un error de los casos de uso a status + ErrorResponse.
// Los errores internos se registran y no se exponen al cliente.
func respondError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	m, ok := errorMappings[kind]
	if !ok {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Kind:    domain.KindName(domain.ErrInternal),
			Code:    "INTERNAL",
			Message: "error interno",
		})
	}
	return c.Status(m.status).JSON(dto.ErrorResponse{
		Kind:    domain.KindName(kind),
		Code:    m.code,
		Message: err.Error(),
	})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Kind:    domain.KindName(domain.ErrValidation),
		Code:    code,
		Message: msg,
	})
}

// ErrorHandler maneja los errores que Fiber produce fuera de los handlers
// (ruta inexistente, cuerpo demasiado grande, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return respondError(c, err)
	}
	kind := domain.ErrInternal
	switch {
	case fe.Code == fiber.StatusNotFound:
		kind = domain.ErrNotFound
	case fe.Code == fiber.StatusRequestEntityTooLarge:
		kind = domain.ErrValidation
	case fe.Code >= 400 && fe.Code < 500:
		kind = domain.ErrValidation
	}
	if kind == domain.ErrInternal {
		log.Error().Err(err).Str("path", c.Path()).Msg("error de fiber")
	}
	return c.Status(fe.Code).JSON(dto.ErrorResponse{
		Kind:    domain.KindName(kind),
		Code:    errorCode(fe.Code),
		Message: fe.Message,
	})
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		if status >= 500 {
			return "INTERNAL"
		}
		return "BAD_REQUEST"
	}
}
