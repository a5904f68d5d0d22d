package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// EmployeeRepo implementa repository.EmployeeRepository.
type EmployeeRepo struct{ v view }

func (r *EmployeeRepo) uniqueViolation(e *entity.Employee) error {
	for id, other := range r.v.s.st.employees {
		if id == e.ID {
			continue
		}
		switch {
		case other.Username == e.Username:
			return domain.Wrap(domain.ErrConflict, "username ya registrado")
		case other.Email == e.Email:
			return domain.Wrap(domain.ErrConflict, "email ya registrado")
		case other.CPF == e.CPF:
			return domain.Wrap(domain.ErrConflict, "cpf ya registrado")
		}
	}
	return nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.employees[e.ID]; ok {
		return domain.Wrap(domain.ErrConflict, "funcionario ya existe")
	}
	if err := r.uniqueViolation(e); err != nil {
		return err
	}
	r.v.s.st.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	defer r.v.lock()()
	e, ok := r.v.s.st.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *EmployeeRepo) GetByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	defer r.v.lock()()
	for _, e := range r.v.s.st.employees {
		if e.Username == username {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *EmployeeRepo) FindByUsernameOrCPF(ctx context.Context, username, cpf string) (*entity.Employee, error) {
	defer r.v.lock()()
	for _, e := range r.v.s.st.employees {
		if e.Username == username || e.CPF == cpf {
			return &e, nil
		}
	}
	return nil, nil
}

// List ordena por nombre completo.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	defer r.v.lock()()
	out := make([]*entity.Employee, 0, len(r.v.s.st.employees))
	for _, e := range r.v.s.st.employees {
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.employees[e.ID]; !ok {
		return domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
	}
	if err := r.uniqueViolation(e); err != nil {
		return err
	}
	r.v.s.st.employees[e.ID] = *e
	return nil
}

// Delete elimina el funcionario y sus vínculos con empresas.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	defer r.v.lock()()
	if _, ok := r.v.s.st.employees[id]; !ok {
		return domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
	}
	delete(r.v.s.st.employees, id)
	for k := range r.v.s.st.memberships {
		if k.employeeID == id {
			delete(r.v.s.st.memberships, k)
		}
	}
	return nil
}
