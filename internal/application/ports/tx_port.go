package ports

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Repositories repositorios atados a una misma transacción.
type Repositories struct {
	Employees   repository.EmployeeRepository
	Companies   repository.CompanyRepository
	Memberships repository.MembershipRepository
	Categories  repository.CategoryRepository
	Products    repository.ProductRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
