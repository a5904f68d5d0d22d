// Package memory implementa los repositorios en memoria (STORAGE_DRIVER=memory).
// Pensado para desarrollo local y tests: los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

type memberKey struct {
	companyID  string
	employeeID string
}

type state struct {
	employees   map[string]entity.Employee
	companies   map[string]entity.Company
	memberships map[memberKey]entity.Membership
	categories  map[string]entity.Category
	products    map[string]entity.Product
}

func newState() *state {
	return &state{
		employees:   make(map[string]entity.Employee),
		companies:   make(map[string]entity.Company),
		memberships: make(map[memberKey]entity.Membership),
		categories:  make(map[string]entity.Category),
		products:    make(map[string]entity.Product),
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.employees {
		c.employees[k] = v
	}
	for k, v := range st.companies {
		c.companies[k] = v
	}
	for k, v := range st.memberships {
		c.memberships[k] = v
	}
	for k, v := range st.categories {
		c.categories[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	return c
}

// Store guarda todas las tablas bajo un único mutex. Las transacciones toman el mutex
// durante todo fn y restauran una copia del estado si fn falla.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view da acceso al estado; dentro de una transacción el mutex ya está tomado.
type view struct {
	s    *Store
	inTx bool
}

func (v view) lock() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

func (s *Store) repositories(inTx bool) ports.Repositories {
	v := view{s: s, inTx: inTx}
	return ports.Repositories{
		Employees:   &EmployeeRepo{v: v},
		Companies:   &CompanyRepo{v: v},
		Memberships: &MembershipRepo{v: v},
		Categories:  &CategoryRepo{v: v},
		Products:    &ProductRepo{v: v},
	}
}

// Repositories devuelve los repositorios fuera de transacción.
func (s *Store) Repositories() ports.Repositories { return s.repositories(false) }

// TxRunner devuelve el ejecutor de transacciones del store.
func (s *Store) TxRunner() ports.TxRunner { return txRunner{s: s} }

type txRunner struct{ s *Store }

// Run implementa ports.TxRunner.
func (r txRunner) Run(ctx context.Context, fn func(repos ports.Repositories) error) (err error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			r.s.st = snapshot
			panic(p)
		}
		if err != nil {
			r.s.st = snapshot
		}
	}()
	if err = ctx.Err(); err != nil {
		return err
	}
	return fn(r.s.repositories(true))
}
