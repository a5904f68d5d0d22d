package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

type productFixture struct {
	uc        *usecase.ProductUseCase
	companies *usecase.CompanyUseCase
	images    *fakeImages
	company   string
	admin     *auth.Claim
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	images := newFakeImages()
	companies := usecase.NewCompanyUseCase(repos.Companies, repos.Memberships, repos.Employees)
	c, err := companies.Create(context.Background(), dto.CompanyRequest{Name: "Acme", CNPJ: "11.111.111/0001-11"})
	require.NoError(t, err)
	return &productFixture{
		uc:        usecase.NewProductUseCase(repos.Products, repos.Companies, repos.Memberships, store.TxRunner(), images),
		companies: companies,
		images:    images,
		company:   c.ID,
		admin:     &auth.Claim{EmployeeID: "admin-1", Role: entity.RoleAdmin},
	}
}

func (f *productFixture) create(t *testing.T, code string, stock string) *dto.ProductResponse {
	t.Helper()
	p, err := f.uc.Create(context.Background(), dto.ProductForm{
		Code: code, Name: "Producto " + code, Unit: "un", CompanyID: f.company,
		CostPrice: "10", SellingPrice: "15", CurrentStock: dto.Loose(stock), MinimumStock: "2",
	}, nil)
	require.NoError(t, err)
	return p
}

func TestProductUseCase_CreateDerivaMargen(t *testing.T) {
	f := newProductFixture(t)
	p := f.create(t, "A1", "7")

	assert.Equal(t, "50", p.ProfitMargin.String())
	assert.Equal(t, 7, p.CurrentStock)
	assert.False(t, p.LowStock)
}

func TestProductUseCase_CreateDerivaPrecioDesdeMargen(t *testing.T) {
	f := newProductFixture(t)
	p, err := f.uc.Create(context.Background(), dto.ProductForm{
		Code: "M1", Name: "Con margen", Unit: "un", CompanyID: f.company,
		CostPrice: "20", ProfitMargin: "25",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "25", p.SellingPrice.String())
	assert.Equal(t, "25", p.ProfitMargin.String())

	_, err = f.uc.Create(context.Background(), dto.ProductForm{
		Code: "M2", Name: "Sin precio", Unit: "un", CompanyID: f.company, CostPrice: "20",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProductUseCase_CreateCodigoDuplicado(t *testing.T) {
	f := newProductFixture(t)
	f.create(t, "A1", "1")

	_, err := f.uc.Create(context.Background(), dto.ProductForm{
		Code: "A1", Name: "Otro", Unit: "un", CompanyID: f.company, CostPrice: "1", SellingPrice: "2",
	}, upload())
	assert.ErrorIs(t, err, domain.ErrConflict)
	// la imagen guardada para el alta fallida se libera
	require.Len(t, f.images.released, 1)
	assert.False(t, f.images.has(f.images.released[0]))
}

func TestProductUseCase_UpdateStockEsAditivo(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	p := f.create(t, "A1", "10")

	got, err := f.uc.Update(ctx, p.ID, dto.ProductForm{StockDelta: "5"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, got.CurrentStock)

	got, err = f.uc.Update(ctx, p.ID, dto.ProductForm{StockDelta: "-13"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentStock)
	assert.True(t, got.LowStock)

	_, err = f.uc.Update(ctx, p.ID, dto.ProductForm{StockDelta: "-3"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Update(ctx, p.ID, dto.ProductForm{CurrentStock: "100"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	again, err := f.uc.GetByID(ctx, f.admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, again.CurrentStock)
}

func TestProductUseCase_StockFueraDeRango(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	p := f.create(t, "A1", "5")

	for _, delta := range []dto.Loose{"18446744073709551617", "3000000000", "2147483647"} {
		_, err := f.uc.Update(ctx, p.ID, dto.ProductForm{StockDelta: delta}, nil)
		assert.ErrorIs(t, err, domain.ErrValidation, string(delta))
	}

	_, err := f.uc.Create(ctx, dto.ProductForm{
		Code: "B1", Name: "Grande", Unit: "un", CompanyID: f.company,
		CostPrice: "1", SellingPrice: "2", CurrentStock: "18446744073709551623",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	again, err := f.uc.GetByID(ctx, f.admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, again.CurrentStock)
}

func TestProductUseCase_UpdateRecalculaMargenYReemplazaImagen(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	first, err := f.uc.Create(ctx, dto.ProductForm{
		Code: "A1", Name: "Agua", Unit: "un", CompanyID: f.company, CostPrice: "10", SellingPrice: "15",
	}, upload())
	require.NoError(t, err)
	require.NotNil(t, first.Image)
	oldRef := *first.Image

	got, err := f.uc.Update(ctx, first.ID, dto.ProductForm{SellingPrice: "20"}, upload())
	require.NoError(t, err)
	assert.Equal(t, "100", got.ProfitMargin.String())
	require.NotNil(t, got.Image)
	assert.NotEqual(t, oldRef, *got.Image)
	assert.Contains(t, f.images.released, oldRef)
	assert.True(t, f.images.has(*got.Image))
}

func TestProductUseCase_UpdateNoCambiaEmpresa(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	p := f.create(t, "A1", "1")

	_, err := f.uc.Update(ctx, p.ID, dto.ProductForm{CompanyID: "otra"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Update(ctx, "nadie", dto.ProductForm{Name: "x"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_DeleteLiberaImagen(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	f.images.failRelease = true
	p, err := f.uc.Create(ctx, dto.ProductForm{
		Code: "A1", Name: "Agua", Unit: "un", CompanyID: f.company, CostPrice: "1", SellingPrice: "2",
	}, upload())
	require.NoError(t, err)

	// un fallo al liberar la imagen no aborta el borrado
	require.NoError(t, f.uc.Delete(ctx, p.ID))
	assert.Equal(t, []string{*p.Image}, f.images.released)

	_, err = f.uc.GetByID(ctx, f.admin, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestProductUseCase_ListConAlcanceDeEmpresa(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	f.create(t, "B2", "1")
	f.create(t, "A1", "1")

	_, err := f.uc.List(ctx, f.admin, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := f.uc.List(ctx, f.admin, f.company)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Producto A1", list[0].Name)

	outsider := &auth.Claim{EmployeeID: "e-1", Role: entity.RoleUser}
	_, err = f.uc.List(ctx, outsider, f.company)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.List(ctx, nil, f.company)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
