package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	Update(ctx context.Context, c *entity.Company) error
	// Delete falla con domain.ErrConflict si la empresa todavía tiene productos.
	Delete(ctx context.Context, id string) error
}

// MembershipRepository define el puerto para los vínculos empresa-funcionario.
type MembershipRepository interface {
	// Add falla con domain.ErrConflict si el par ya existe y con domain.ErrNotFound
	// si la empresa o el funcionario no existen.
	Add(ctx context.Context, m *entity.Membership) error
	// Remove informa si existía el vínculo; no es un error que no exista.
	Remove(ctx context.Context, companyID, employeeID string) (bool, error)
	Exists(ctx context.Context, companyID, employeeID string) (bool, error)
	EmployeesOf(ctx context.Context, companyID string) ([]*entity.Employee, error)
	// CompaniesOf ordena por fecha de vínculo (el más antiguo primero).
	CompaniesOf(ctx context.Context, employeeID string) ([]*entity.Company, error)
}
