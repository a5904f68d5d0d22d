package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ReportUseCase reportes del back-office: resumen de conteos y planilla de stock en PDF.
type ReportUseCase struct {
	employees repository.EmployeeRepository
	companies repository.CompanyRepository
	products  *ProductUseCase
	repo      repository.ProductRepository
	generator ports.StockReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. products se usa para el control de acceso por empresa.
func NewReportUseCase(
	employees repository.EmployeeRepository,
	companies repository.CompanyRepository,
	repo repository.ProductRepository,
	products *ProductUseCase,
	generator ports.StockReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{employees: employees, companies: companies, repo: repo, products: products, generator: generator, now: time.Now}
}

// Summary cuenta funcionarios por rol y empresas; con companyID agrega los productos de esa empresa.
func (uc *ReportUseCase) Summary(ctx context.Context, companyID string) (*dto.SummaryResponse, error) {
	employees, err := uc.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := uc.companies.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.SummaryResponse{Companies: dto.CompanyStats{Total: len(companies)}}
	out.Employees.Total = len(employees)
	for _, e := range employees {
		if e.Role == entity.RoleAdmin {
			out.Employees.Admins++
		} else {
			out.Employees.Users++
		}
	}
	if companyID = strings.TrimSpace(companyID); companyID != "" {
		company, err := uc.companies.GetByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
		}
		products, err := uc.repo.ListByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		stats := &dto.ProductStats{CompanyID: companyID, Total: len(products)}
		for _, p := range products {
			if p.LowStock() {
				stats.LowStock++
			}
		}
		out.Products = stats
	}
	return out, nil
}

// StockReport genera el PDF de stock de una empresa y el nombre de archivo sugerido.
func (uc *ReportUseCase) StockReport(ctx context.Context, actor *auth.Claim, companyID string) ([]byte, string, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, "", domain.Wrap(domain.ErrValidation, "companyId es requerido")
	}
	if err := uc.products.authorizeCompany(ctx, actor, companyID); err != nil {
		return nil, "", err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.Wrap(domain.ErrNotFound, "empresa no encontrada")
	}
	products, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	at := uc.now()
	pdf, err := uc.generator.GenerateStockReport(ctx, company, products, at)
	if err != nil {
		return nil, "", fmt.Errorf("generar planilla de stock: %w", err)
	}
	return pdf, fmt.Sprintf("stock-%s-%s.pdf", company.ID, at.Format("20060102")), nil
}
