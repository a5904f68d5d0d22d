package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas y sus vínculos con funcionarios.
type CompanyUseCase struct {
	repo        repository.CompanyRepository
	memberships repository.MembershipRepository
	employees   repository.EmployeeRepository
	now         func() time.Time
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, memberships repository.MembershipRepository, employees repository.EmployeeRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, memberships: memberships, employees: employees, now: time.Now}
}

func validateCompany(in dto.CompanyRequest) (name, cnpj string, err error) {
	name, cnpj = strings.TrimSpace(in.Name), strings.TrimSpace(in.CNPJ)
	if name == "" || cnpj == "" {
		return "", "", domain.Wrap(domain.ErrValidation, "name y cnpj son requeridos")
	}
	return name, cnpj, nil
}

// Create crea una empresa. Devuelve ErrConflict si el CNPJ ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	name, cnpj, err := validateCompany(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Company{ID: uuid.New().String(), Name: name, CNPJ: cnpj, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	return toCompanyResponse(c), nil
}

func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCompanyResponses(list), nil
}

func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	name, cnpj, err := validateCompany(in)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	c.Name, c.CNPJ, c.UpdatedAt = name, cnpj, uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// Delete elimina la empresa; falla con ErrConflict si todavía tiene productos.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// AddEmployee vincula un funcionario a la empresa.
func (uc *CompanyUseCase) AddEmployee(ctx context.Context, companyID, employeeID string) error {
	if strings.TrimSpace(employeeID) == "" {
		return domain.Wrap(domain.ErrValidation, "employee_id es requerido")
	}
	c, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	e, err := uc.employees.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
	}
	return uc.memberships.Add(ctx, &entity.Membership{CompanyID: companyID, EmployeeID: employeeID, CreatedAt: uc.now()})
}

// RemoveEmployee desvincula; si el vínculo no existía devuelve ErrNotFound sin cambiar nada.
func (uc *CompanyUseCase) RemoveEmployee(ctx context.Context, companyID, employeeID string) error {
	removed, err := uc.memberships.Remove(ctx, companyID, employeeID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.Wrap(domain.ErrNotFound, "el funcionario no está vinculado a la empresa")
	}
	return nil
}

// Employees lista los funcionarios vinculados a la empresa.
func (uc *CompanyUseCase) Employees(ctx context.Context, companyID string) ([]dto.EmployeeResponse, error) {
	c, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	list, err := uc.memberships.EmployeesOf(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *dto.NewEmployeeResponse(e))
	}
	return out, nil
}

// CompaniesOf lista las empresas del funcionario, la vinculada primero al inicio.
func (uc *CompanyUseCase) CompaniesOf(ctx context.Context, employeeID string) ([]dto.CompanyResponse, error) {
	list, err := uc.memberships.CompaniesOf(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toCompanyResponses(list), nil
}

// PrimaryCompanyOf devuelve la empresa vinculada primero, o nil si no tiene ninguna.
func (uc *CompanyUseCase) PrimaryCompanyOf(ctx context.Context, employeeID string) (*dto.CompanyResponse, error) {
	list, err := uc.memberships.CompaniesOf(ctx, employeeID)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return toCompanyResponse(list[0]), nil
}

func toCompanyResponses(list []*entity.Company) []dto.CompanyResponse {
	out := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCompanyResponse(c))
	}
	return out
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{ID: c.ID, Name: c.Name, CNPJ: c.CNPJ, CreatedAt: c.CreatedAt}
}
