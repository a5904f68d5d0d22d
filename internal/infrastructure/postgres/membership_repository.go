package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo vínculos empresa-funcionario (tabla company_employees).
type MembershipRepo struct {
	q Querier
}

func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Add inserta el vínculo. Duplicado -> Conflict (PK); empresa o funcionario inexistente -> NotFound (FK).
func (r *MembershipRepo) Add(ctx context.Context, m *entity.Membership) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO company_employees (company_id, employee_id, created_at) VALUES ($1, $2, $3)`,
		m.CompanyID, m.EmployeeID, m.CreatedAt,
	)
	return mapPostgresError("insert membership", err)
}

func (r *MembershipRepo) Remove(ctx context.Context, companyID, employeeID string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		DELETE FROM company_employees WHERE company_id = $1 AND employee_id = $2`, companyID, employeeID)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, mapPostgresError("delete membership", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *MembershipRepo) Exists(ctx context.Context, companyID, employeeID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM company_employees WHERE company_id = $1 AND employee_id = $2)`,
		companyID, employeeID).Scan(&ok)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("exists membership: %w", err)
	}
	return ok, nil
}

func (r *MembershipRepo) EmployeesOf(ctx context.Context, companyID string) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `
		SELECT e.id, e.full_name, e.username, e.email, e.password_hash, e.phone, e.cpf, e.role, e.avatar, e.created_at, e.updated_at
		FROM company_employees ce
		JOIN employees e ON e.id = ce.employee_id
		WHERE ce.company_id = $1
		ORDER BY e.full_name, e.username`, companyID)
	if err != nil {
		if isNoRows(err) {
			return []*entity.Employee{}, nil
		}
		return nil, fmt.Errorf("list company employees: %w", err)
	}
	defer rows.Close()
	list := []*entity.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil && !isNoRows(err) {
		return nil, fmt.Errorf("list company employees: %w", err)
	}
	return list, nil
}

// CompaniesOf ordena por fecha de vínculo (el más antiguo primero).
func (r *MembershipRepo) CompaniesOf(ctx context.Context, employeeID string) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.name, c.cnpj, c.created_at, c.updated_at
		FROM company_employees ce
		JOIN companies c ON c.id = ce.company_id
		WHERE ce.employee_id = $1
		ORDER BY ce.created_at, c.name`, employeeID)
	if err != nil {
		if isNoRows(err) {
			return []*entity.Company{}, nil
		}
		return nil, fmt.Errorf("list employee companies: %w", err)
	}
	defer rows.Close()
	list := []*entity.Company{}
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CNPJ, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil && !isNoRows(err) {
		return nil, fmt.Errorf("list employee companies: %w", err)
	}
	return list, nil
}
