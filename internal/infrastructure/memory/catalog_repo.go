package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ v view }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	defer r.v.lock()()
	for _, other := range r.v.s.st.categories {
		if other.Name == c.Name {
			return domain.Wrap(domain.ErrConflict, "categoría ya existe")
		}
	}
	r.v.s.st.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	defer r.v.lock()()
	c, ok := r.v.s.st.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	defer r.v.lock()()
	for _, c := range r.v.s.st.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	defer r.v.lock()()
	out := make([]*entity.Category, 0, len(r.v.s.st.categories))
	for _, c := range r.v.s.st.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ v view }

func (r *ProductRepo) check(p *entity.Product) error {
	if _, ok := r.v.s.st.companies[p.CompanyID]; !ok {
		return domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	if p.CategoryID != "" {
		if _, ok := r.v.s.st.categories[p.CategoryID]; !ok {
			return domain.Wrap(domain.ErrValidation, "categoría inexistente")
		}
	}
	for id, other := range r.v.s.st.products {
		if id != p.ID && other.Code == p.Code {
			return domain.Wrap(domain.ErrConflict, "código de producto ya registrado")
		}
	}
	return nil
}

// withCategory completa CategoryName como lo haría el LEFT JOIN.
func (r *ProductRepo) withCategory(p entity.Product) *entity.Product {
	p.CategoryName = ""
	if c, ok := r.v.s.st.categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	return &p
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.products[p.ID]; ok {
		return domain.Wrap(domain.ErrConflict, "producto ya existe")
	}
	if err := r.check(p); err != nil {
		return err
	}
	r.v.s.st.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	defer r.v.lock()()
	p, ok := r.v.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return r.withCategory(p), nil
}

// GetForUpdate equivale a GetByID: dentro de Run el store ya está bloqueado.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error) {
	defer r.v.lock()()
	out := []*entity.Product{}
	for _, p := range r.v.s.st.products {
		if p.CompanyID == companyID {
			out = append(out, r.withCategory(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.products[p.ID]; !ok {
		return domain.Wrap(domain.ErrNotFound, "producto no encontrado")
	}
	if err := r.check(p); err != nil {
		return err
	}
	r.v.s.st.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.products[id]; !ok {
		return domain.Wrap(domain.ErrNotFound, "producto no encontrado")
	}
	delete(r.v.s.st.products, id)
	return nil
}
