package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO companies (id, name, cnpj, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.CNPJ, c.CreatedAt, c.UpdatedAt,
	)
	return mapPostgresError("insert company", err)
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `
		SELECT id, name, cnpj, created_at, updated_at
		FROM companies WHERE id = $1`, id).Scan(&c.ID, &c.Name, &c.CNPJ, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// List lista las empresas ordenadas por nombre.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, cnpj, created_at, updated_at FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
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
	return list, rows.Err()
}

// Update actualiza nombre y CNPJ.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE companies SET name = $2, cnpj = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Name, c.CNPJ, c.UpdatedAt,
	)
	if err != nil {
		return mapPostgresError("update company", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	return nil
}

// Delete borra la empresa y sus vínculos. Con productos asociados la FK (RESTRICT) lo impide.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Wrap(domain.ErrConflict, "la empresa tiene productos asociados")
		}
		return mapPostgresError("delete company", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	return nil
}
