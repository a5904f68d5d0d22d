package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productSelect une la categoría con LEFT JOIN: un producto sin categoría (o con la categoría borrada) se lista igual.
const productSelect = `
	SELECT p.id, p.company_id, p.code, p.name, p.image, p.cost_price, p.selling_price, p.profit_margin,
		p.category_id, pc.name, p.current_stock, p.minimum_stock, p.unit, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN product_categories pc ON pc.id = p.category_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                      entity.Product
		categoryID, categoryNm *string
	)
	err := row.Scan(&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.Image, &p.CostPrice, &p.SellingPrice, &p.ProfitMargin,
		&categoryID, &categoryNm, &p.CurrentStock, &p.MinimumStock, &p.Unit, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryID, p.CategoryName = deref(categoryID), deref(categoryNm)
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, company_id, code, name, image, cost_price, selling_price, profit_margin,
			category_id, current_stock, minimum_stock, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.CompanyID, p.Code, p.Name, p.Image, p.CostPrice, p.SellingPrice, p.ProfitMargin,
		nullable(p.CategoryID), p.CurrentStock, p.MinimumStock, p.Unit, p.CreatedAt, p.UpdatedAt,
	)
	return mapPostgresError("insert product", err)
}

func (r *ProductRepo) getOne(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE p.id = $1`, id)
}

// GetForUpdate bloquea la fila del producto (no la categoría) hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

// ListByCompany lista los productos de una empresa ordenados por nombre.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` WHERE p.company_id = $1 ORDER BY p.name, p.code`, companyID)
	if err != nil {
		if isNoRows(err) {
			return []*entity.Product{}, nil
		}
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil && !isNoRows(err) {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// Update actualiza un producto existente. company_id no se modifica nunca.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET code = $2, name = $3, image = $4, cost_price = $5, selling_price = $6,
			profit_margin = $7, category_id = $8, current_stock = $9, minimum_stock = $10, unit = $11, updated_at = $12
		WHERE id = $1`,
		p.ID, p.Code, p.Name, p.Image, p.CostPrice, p.SellingPrice,
		p.ProfitMargin, nullable(p.CategoryID), p.CurrentStock, p.MinimumStock, p.Unit, p.UpdatedAt,
	)
	if err != nil {
		return mapPostgresError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Wrap(domain.ErrNotFound, "producto no encontrado")
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapPostgresError("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Wrap(domain.ErrNotFound, "producto no encontrado")
	}
	return nil
}
