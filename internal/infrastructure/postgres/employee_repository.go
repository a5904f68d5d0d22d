package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, full_name, username, email, password_hash, phone, cpf, role, avatar, created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para funcionarios.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.FullName, &e.Username, &e.Email, &e.PasswordHash,
		&e.Phone, &e.CPF, &e.Role, &e.Avatar, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.FullName, e.Username, e.Email, e.PasswordHash, e.Phone, e.CPF, e.Role, e.Avatar, e.CreatedAt, e.UpdatedAt,
	)
	return mapPostgresError("insert employee", err)
}

func (r *EmployeeRepo) getOne(ctx context.Context, op, where string, args ...any) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE `+where+` LIMIT 1`, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return r.getOne(ctx, "get employee", `id = $1`, id)
}

func (r *EmployeeRepo) GetByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	return r.getOne(ctx, "get employee by username", `username = $1`, username)
}

func (r *EmployeeRepo) FindByUsernameOrCPF(ctx context.Context, username, cpf string) (*entity.Employee, error) {
	return r.getOne(ctx, "find employee", `username = $1 OR cpf = $2`, username, cpf)
}

func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY full_name, username`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
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
	return list, rows.Err()
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE employees SET full_name = $2, username = $3, email = $4, password_hash = $5,
			phone = $6, cpf = $7, role = $8, avatar = $9, updated_at = $10
		WHERE id = $1`,
		e.ID, e.FullName, e.Username, e.Email, e.PasswordHash, e.Phone, e.CPF, e.Role, e.Avatar, e.UpdatedAt,
	)
	if err != nil {
		return mapPostgresError("update employee", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
	}
	return nil
}

// Delete borra el funcionario; sus vínculos caen por ON DELETE CASCADE.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return mapPostgresError("delete employee", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
	}
	return nil
}
