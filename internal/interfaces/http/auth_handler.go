package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
)

// AuthHandler maneja login y perfil propio.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Profile godoc
// @Summary      Perfil del funcionario autenticado
// @Tags         profile
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetEmployeeID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil propio
// @Description  Acepta JSON o multipart (avatar en el campo "avatar"). Cambiar la contraseña exige current_password.
// @Tags         profile
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Datos del perfil"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	avatar, err := imageFromForm(c, "avatar")
	if err != nil {
		return badRequest(c, "INVALID_BODY", "formulario inválido")
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetEmployeeID(c), in, avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveAvatar godoc
// @Summary      Quitar avatar propio
// @Tags         profile
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EmployeeResponse
// @Router       /api/profile/remove-avatar [post]
func (h *AuthHandler) RemoveAvatar(c *fiber.Ctx) error {
	out, err := h.uc.RemoveAvatar(c.UserContext(), GetEmployeeID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
