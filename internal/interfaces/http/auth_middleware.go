package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalClaim      = "claim"
	LocalEmployeeID = "employee_id"
	LocalUsername   = "username"
	LocalRole       = "role"
)

// TokenVerifier lo implementa *auth.SessionService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claim, error)
}

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "token vacío")
		}
		claim, err := verifier.Verify(tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalClaim, claim)
		c.Locals(LocalEmployeeID, claim.EmployeeID)
		c.Locals(LocalUsername, claim.Username)
		c.Locals(LocalRole, claim.Role)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Kind:    domain.KindName(domain.ErrUnauthenticated),
		Code:    code,
		Message: msg,
	})
}

// RequireRole exige que el rol del token sea alguno de roles. Usar después de AuthMiddleware.
// Token sin rol -> 401 MISSING_ROLE; rol no permitido -> 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim := GetClaim(c)
		if claim != nil && claim.Role == "" {
			return unauthorized(c, "MISSING_ROLE", "el token no incluye rol")
		}
		if err := auth.RequireRole(claim, roles...); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

// GetClaim devuelve la identidad autenticada (nil si la ruta no pasó por AuthMiddleware).
func GetClaim(c *fiber.Ctx) *auth.Claim {
	claim, _ := c.Locals(LocalClaim).(*auth.Claim)
	return claim
}

// GetEmployeeID devuelve el id del funcionario autenticado.
func GetEmployeeID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmployeeID).(string)
	return s
}

// GetUsername devuelve el username del token.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
