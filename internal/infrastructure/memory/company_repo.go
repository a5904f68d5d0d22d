package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CompanyRepo implementa repository.CompanyRepository.
type CompanyRepo struct{ v view }

func (r *CompanyRepo) cnpjTaken(c *entity.Company) bool {
	for id, other := range r.v.s.st.companies {
		if id != c.ID && other.CNPJ == c.CNPJ {
			return true
		}
	}
	return false
}

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.companies[c.ID]; ok || r.cnpjTaken(c) {
		return domain.Wrap(domain.ErrConflict, "cnpj ya registrado")
	}
	r.v.s.st.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	defer r.v.lock()()
	c, ok := r.v.s.st.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// List ordena por nombre.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	defer r.v.lock()()
	out := make([]*entity.Company, 0, len(r.v.s.st.companies))
	for _, c := range r.v.s.st.companies {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.companies[c.ID]; !ok {
		return domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	if r.cnpjTaken(c) {
		return domain.Wrap(domain.ErrConflict, "cnpj ya registrado")
	}
	r.v.s.st.companies[c.ID] = *c
	return nil
}

// Delete elimina la empresa y sus vínculos. Con productos asociados falla con ErrConflict.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.companies[id]; !ok {
		return domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	for _, p := range r.v.s.st.products {
		if p.CompanyID == id {
			return domain.Wrap(domain.ErrConflict, "la empresa tiene productos asociados")
		}
	}
	delete(r.v.s.st.companies, id)
	for k := range r.v.s.st.memberships {
		if k.companyID == id {
			delete(r.v.s.st.memberships, k)
		}
	}
	return nil
}

// MembershipRepo implementa repository.MembershipRepository.
type MembershipRepo struct{ v view }

func (r *MembershipRepo) Add(ctx context.Context, m *entity.Membership) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.companies[m.CompanyID]; !ok {
		return domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	if _, ok := r.v.s.st.employees[m.EmployeeID]; !ok {
		return domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
	}
	k := memberKey{companyID: m.CompanyID, employeeID: m.EmployeeID}
	if _, ok := r.v.s.st.memberships[k]; ok {
		return domain.Wrap(domain.ErrConflict, "el funcionario ya está vinculado a la empresa")
	}
	r.v.s.st.memberships[k] = *m
	return nil
}

func (r *MembershipRepo) Remove(ctx context.Context, companyID, employeeID string) (bool, error) {
	defer r.v.lock()()
	k := memberKey{companyID: companyID, employeeID: employeeID}
	if _, ok := r.v.s.st.memberships[k]; !ok {
		return false, nil
	}
	delete(r.v.s.st.memberships, k)
	return true, nil
}

func (r *MembershipRepo) Exists(ctx context.Context, companyID, employeeID string) (bool, error) {
	defer r.v.lock()()
	_, ok := r.v.s.st.memberships[memberKey{companyID: companyID, employeeID: employeeID}]
	return ok, nil
}

// EmployeesOf ordena por nombre completo.
func (r *MembershipRepo) EmployeesOf(ctx context.Context, companyID string) ([]*entity.Employee, error) {
	defer r.v.lock()()
	out := []*entity.Employee{}
	for k := range r.v.s.st.memberships {
		if k.companyID != companyID {
			continue
		}
		if e, ok := r.v.s.st.employees[k.employeeID]; ok {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *MembershipRepo) CompaniesOf(ctx context.Context, employeeID string) ([]*entity.Company, error) {
	defer r.v.lock()()
	type linked struct {
		c entity.Company
		m entity.Membership
	}
	var rows []linked
	for k, m := range r.v.s.st.memberships {
		if k.employeeID != employeeID {
			continue
		}
		if c, ok := r.v.s.st.companies[k.companyID]; ok {
			rows = append(rows, linked{c: c, m: m})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].m.CreatedAt.Equal(rows[j].m.CreatedAt) {
			return rows[i].m.CreatedAt.Before(rows[j].m.CreatedAt)
		}
		return rows[i].c.Name < rows[j].c.Name
	})
	out := make([]*entity.Company, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i].c)
	}
	return out, nil
}
