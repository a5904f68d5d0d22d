package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Los Get* devuelven (nil, nil) cuando no hay fila; Update/Delete devuelven domain.ErrNotFound.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByUsername(ctx context.Context, username string) (*entity.Employee, error)
	// FindByUsernameOrCPF se usa para el seed idempotente del administrador.
	FindByUsernameOrCPF(ctx context.Context, username, cpf string) (*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id string) error
}
