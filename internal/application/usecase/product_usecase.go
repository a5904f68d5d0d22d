package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/catalog"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ProductUseCase catálogo de productos por empresa: lectura con alcance de tenant,
// alta con stock absoluto y edición con ajuste de stock aditivo.
type ProductUseCase struct {
	products    repository.ProductRepository
	companies   repository.CompanyRepository
	memberships repository.MembershipRepository
	tx          ports.TxRunner
	images      ports.ImageStore
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	companies repository.CompanyRepository,
	memberships repository.MembershipRepository,
	tx ports.TxRunner,
	images ports.ImageStore,
) *ProductUseCase {
	return &ProductUseCase{products: products, companies: companies, memberships: memberships, tx: tx, images: images, now: time.Now}
}

// authorizeCompany exige que el actor sea admin o esté vinculado a la empresa.
func (uc *ProductUseCase) authorizeCompany(ctx context.Context, actor *auth.Claim, companyID string) error {
	if _, err := auth.RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	ok, err := uc.memberships.Exists(ctx, companyID, actor.EmployeeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Wrap(domain.ErrForbidden, "sin acceso a la empresa")
	}
	return nil
}

// List devuelve los productos de una empresa ordenados por nombre. companyID es obligatorio.
func (uc *ProductUseCase) List(ctx context.Context, actor *auth.Claim, companyID string) ([]dto.ProductResponse, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, domain.Wrap(domain.ErrValidation, "companyId es requerido")
	}
	if err := uc.authorizeCompany(ctx, actor, companyID); err != nil {
		return nil, err
	}
	list, err := uc.products.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// GetByID devuelve un producto si el actor tiene acceso a su empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor *auth.Claim, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.Wrap(domain.ErrNotFound, "producto no encontrado")
	}
	if err := uc.authorizeCompany(ctx, actor, p.CompanyID); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Create da de alta un producto. current_stock es el stock inicial absoluto.
// La imagen se guarda antes de la transacción y se libera si el alta falla.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductForm, image *ports.ImageUpload) (*dto.ProductResponse, error) {
	if in.StockDelta.IsSet() {
		return nil, domain.Wrap(domain.ErrValidation, "stock_delta solo se acepta al actualizar; use current_stock")
	}
	p := &entity.Product{
		ID:         uuid.New().String(),
		CompanyID:  strings.TrimSpace(in.CompanyID),
		Code:       strings.TrimSpace(in.Code),
		Name:       strings.TrimSpace(in.Name),
		CategoryID: strings.TrimSpace(in.CategoryID),
		Unit:       strings.TrimSpace(in.Unit),
	}
	if p.CompanyID == "" || p.Code == "" || p.Name == "" || p.Unit == "" {
		return nil, domain.Wrap(domain.ErrValidation, "company_id, code, name y unit son requeridos")
	}
	if !in.CostPrice.IsSet() || (!in.SellingPrice.IsSet() && !in.ProfitMargin.IsSet()) {
		return nil, domain.Wrap(domain.ErrValidation, "cost_price y selling_price (o profit_margin) son requeridos")
	}
	if err := applyPricing(p, in, true); err != nil {
		return nil, err
	}
	var err error
	if in.CurrentStock.IsSet() {
		if p.CurrentStock, err = in.CurrentStock.Int("current_stock"); err != nil {
			return nil, err
		}
	}
	if in.MinimumStock.IsSet() {
		if p.MinimumStock, err = in.MinimumStock.Int("minimum_stock"); err != nil {
			return nil, err
		}
	}
	if err := catalog.ValidateStock(p.CurrentStock, p.MinimumStock); err != nil {
		return nil, err
	}

	company, err := uc.companies.GetByID(ctx, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}

	if image != nil {
		if p.Image, err = uc.images.Save(ctx, *image); err != nil {
			return nil, err
		}
	}
	now := uc.now()
	p.CreatedAt, p.UpdatedAt = now, now

	var created *entity.Product
	err = uc.tx.Run(ctx, func(repos ports.Repositories) error {
		if err := repos.Products.Create(ctx, p); err != nil {
			return err
		}
		created, err = repos.Products.GetByID(ctx, p.ID)
		return err
	})
	if err != nil {
		ports.ReleaseBestEffort(ctx, uc.images, p.Image, "producto no creado")
		return nil, err
	}
	return toProductResponse(created), nil
}

// Update modifica los campos informados. El stock solo cambia con stock_delta (aditivo);
// la empresa dueña no puede cambiar. Con imagen nueva, la anterior se libera tras el commit.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductForm, image *ports.ImageUpload) (*dto.ProductResponse, error) {
	if in.CurrentStock.IsSet() {
		return nil, domain.Wrap(domain.ErrValidation, "current_stock no se acepta al actualizar; use stock_delta")
	}
	var (
		delta int
		err   error
	)
	if in.StockDelta.IsSet() {
		if delta, err = in.StockDelta.Int("stock_delta"); err != nil {
			return nil, err
		}
	}
	minimum := -1
	if in.MinimumStock.IsSet() {
		if minimum, err = in.MinimumStock.Int("minimum_stock"); err != nil {
			return nil, err
		}
		if minimum < 0 {
			return nil, domain.Wrap(domain.ErrValidation, "minimum_stock no puede ser negativo")
		}
	}

	var newRef string
	if image != nil {
		if newRef, err = uc.images.Save(ctx, *image); err != nil {
			return nil, err
		}
	}

	var (
		updated *entity.Product
		oldRef  string
	)
	err = uc.tx.Run(ctx, func(repos ports.Repositories) error {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.Wrap(domain.ErrNotFound, "producto no encontrado")
		}
		if c := strings.TrimSpace(in.CompanyID); c != "" && c != p.CompanyID {
			return domain.Wrap(domain.ErrValidation, "un producto no puede cambiar de empresa")
		}
		setIfPresent(&p.Code, in.Code)
		setIfPresent(&p.Name, in.Name)
		setIfPresent(&p.Unit, in.Unit)
		setIfPresent(&p.CategoryID, in.CategoryID)
		if err := applyPricing(p, in, false); err != nil {
			return err
		}
		if p.CurrentStock, err = catalog.ApplyStockDelta(p.CurrentStock, delta); err != nil {
			return err
		}
		if minimum >= 0 {
			p.MinimumStock = minimum
		}
		if newRef != "" {
			oldRef = p.Image
			p.Image = newRef
		}
		p.UpdatedAt = uc.now()
		if err := repos.Products.Update(ctx, p); err != nil {
			return err
		}
		updated, err = repos.Products.GetByID(ctx, p.ID)
		return err
	})
	if err != nil {
		ports.ReleaseBestEffort(ctx, uc.images, newRef, "producto no actualizado")
		return nil, err
	}
	ports.ReleaseBestEffort(ctx, uc.images, oldRef, "imagen de producto reemplazada")
	return toProductResponse(updated), nil
}

// Delete elimina el producto y, tras el commit, libera su imagen.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	var image string
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.Wrap(domain.ErrNotFound, "producto no encontrado")
		}
		image = p.Image
		return repos.Products.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	ports.ReleaseBestEffort(ctx, uc.images, image, "producto eliminado")
	return nil
}

// applyPricing aplica costo, venta y margen informados. Si el margen no viene y cambió
// algún precio (o es un alta), se deriva de costo y venta; si viene solo el margen,
// se deriva la venta.
func applyPricing(p *entity.Product, in dto.ProductForm, creating bool) error {
	priceChanged := creating
	if in.CostPrice.IsSet() {
		v, err := in.CostPrice.Decimal("cost_price")
		if err != nil {
			return err
		}
		p.CostPrice, priceChanged = v, true
	}
	if in.SellingPrice.IsSet() {
		v, err := in.SellingPrice.Decimal("selling_price")
		if err != nil {
			return err
		}
		p.SellingPrice, priceChanged = v, true
	}
	switch {
	case in.ProfitMargin.IsSet():
		v, err := in.ProfitMargin.Decimal("profit_margin")
		if err != nil {
			return err
		}
		p.ProfitMargin = v.Round(2)
		// margen sin precio de venta: el precio se deriva del costo
		if !in.SellingPrice.IsSet() {
			p.SellingPrice = catalog.SellingPrice(p.CostPrice, p.ProfitMargin)
		}
	case priceChanged:
		p.ProfitMargin = catalog.ProfitMargin(p.CostPrice, p.SellingPrice)
	}
	if p.CostPrice.IsNegative() || p.SellingPrice.IsNegative() {
		return domain.Wrap(domain.ErrValidation, "los precios no pueden ser negativos")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	r := &dto.ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		Code:         p.Code,
		Name:         p.Name,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		ProfitMargin: p.ProfitMargin,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
		LowStock:     p.LowStock(),
		Unit:         p.Unit,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Image != "" {
		ref := dto.PublicRef(p.Image)
		r.Image = &ref
	}
	if p.CategoryID != "" {
		id := p.CategoryID
		r.CategoryID = &id
	}
	if p.CategoryName != "" {
		name := p.CategoryName
		r.CategoryName = &name
	}
	return r
}
