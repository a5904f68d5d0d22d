package dto

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse token de sesión + perfil del funcionario.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      EmployeeResponse `json:"user"`
}

// CreateEmployeeRequest entrada para crear un funcionario (password en texto, se hashea en el caso de uso).
type CreateEmployeeRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Phone    string `json:"phone" form:"phone"`
	CPF      string `json:"cpf" form:"cpf"`
	Role     string `json:"role" form:"role"`
}

// UpdateEmployeeRequest entrada para que un admin actualice un funcionario.
// Campos vacíos no se modifican; Password vacío conserva la contraseña actual.
type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	CPF      string `json:"cpf" form:"cpf"`
	Role     string `json:"role" form:"role"`
	Password string `json:"password" form:"password"`
}

// UpdateProfileRequest entrada para que un funcionario edite su propio perfil.
// Para cambiar la contraseña hay que enviar CurrentPassword y NewPassword.
type UpdateProfileRequest struct {
	FullName        string `json:"full_name" form:"full_name"`
	Email           string `json:"email" form:"email"`
	Phone           string `json:"phone" form:"phone"`
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

// EmployeeResponse salida de un funcionario (nunca incluye el hash de la contraseña).
type EmployeeResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CPF       string    `json:"cpf"`
	Role      string    `json:"role"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEmployeeResponse convierte la entidad. El avatar se expone con separadores "/".
func NewEmployeeResponse(e *entity.Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}
	var avatar *string
	if e.Avatar != "" {
		ref := PublicRef(e.Avatar)
		avatar = &ref
	}
	return &EmployeeResponse{
		ID:        e.ID,
		FullName:  e.FullName,
		Username:  e.Username,
		Email:     e.Email,
		Phone:     e.Phone,
		CPF:       e.CPF,
		Role:      e.Role,
		Avatar:    avatar,
		CreatedAt: e.CreatedAt,
	}
}
