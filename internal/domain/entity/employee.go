package entity

import "time"

// Roles válidos para Employee. Solo admin tiene privilegios elevados.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Employee representa un funcionario con acceso al back-office.
type Employee struct {
	ID           string
	FullName     string
	Username     string // único
	Email        string // único
	PasswordHash string // bcrypt; nunca sale de la capa de aplicación
	Phone        string
	CPF          string // documento nacional, único
	Role         string // admin, user
	Avatar       string // referencia a la imagen almacenada, vacío = sin avatar
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin informa si el funcionario tiene rol admin.
func (e *Employee) IsAdmin() bool { return e != nil && e.Role == RoleAdmin }

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
