package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

func employee(id, username, cpf string) *entity.Employee {
	return &entity.Employee{
		ID: id, FullName: "F " + username, Username: username, Email: username + "@x.com",
		PasswordHash: "h", CPF: cpf, Role: entity.RoleUser,
	}
}

func TestEmployeeRepo_Unicidad(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	require.NoError(t, repos.Employees.Create(ctx, employee("e1", "ana", "111")))

	err := repos.Employees.Create(ctx, employee("e2", "ana", "222"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = repos.Employees.Create(ctx, employee("e3", "bruno", "111"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := repos.Employees.GetByUsername(ctx, "nadie")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	require.NoError(t, repos.Employees.Create(ctx, employee("e1", "ana", "111")))

	got, err := repos.Employees.GetByID(ctx, "e1")
	require.NoError(t, err)
	got.FullName = "modificado"

	again, err := repos.Employees.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "F ana", again.FullName)
}

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	err := store.TxRunner().Run(ctx, func(repos ports.Repositories) error {
		require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Acme", CNPJ: "1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Repositories().Companies.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = store.TxRunner().Run(ctx, func(repos ports.Repositories) error {
		return repos.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Acme", CNPJ: "1"})
	})
	require.NoError(t, err)
	got, err = store.Repositories().Companies.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestMembership_CascadaYOrden(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	require.NoError(t, repos.Employees.Create(ctx, employee("e1", "ana", "111")))
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Beta", CNPJ: "1"}))
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c2", Name: "Alfa", CNPJ: "2"}))

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Memberships.Add(ctx, &entity.Membership{CompanyID: "c1", EmployeeID: "e1", CreatedAt: t0}))
	require.NoError(t, repos.Memberships.Add(ctx, &entity.Membership{CompanyID: "c2", EmployeeID: "e1", CreatedAt: t0.Add(time.Hour)}))

	err := repos.Memberships.Add(ctx, &entity.Membership{CompanyID: "c1", EmployeeID: "e1", CreatedAt: t0})
	assert.ErrorIs(t, err, domain.ErrConflict)
	err = repos.Memberships.Add(ctx, &entity.Membership{CompanyID: "c1", EmployeeID: "nadie"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	companies, err := repos.Memberships.CompaniesOf(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "c1", companies[0].ID)

	require.NoError(t, repos.Employees.Delete(ctx, "e1"))
	ok, err := repos.Memberships.Exists(ctx, "c1", "e1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductRepo_ReglasDeIntegridad(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Acme", CNPJ: "1"}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "cat1", Name: "Bebidas"}))

	p := &entity.Product{ID: "p1", CompanyID: "c1", Code: "A1", Name: "Agua", CategoryID: "cat1",
		CostPrice: decimal.NewFromInt(1), SellingPrice: decimal.NewFromInt(2), Unit: "un"}
	require.NoError(t, repos.Products.Create(ctx, p))

	dup := *p
	dup.ID = "p2"
	assert.ErrorIs(t, repos.Products.Create(ctx, &dup), domain.ErrConflict)

	orphan := *p
	orphan.ID, orphan.Code, orphan.CompanyID = "p3", "A3", "nadie"
	assert.ErrorIs(t, repos.Products.Create(ctx, &orphan), domain.ErrNotFound)

	got, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", got.CategoryName)

	assert.ErrorIs(t, repos.Companies.Delete(ctx, "c1"), domain.ErrConflict)
	require.NoError(t, repos.Products.Delete(ctx, "p1"))
	require.NoError(t, repos.Companies.Delete(ctx, "c1"))
}
