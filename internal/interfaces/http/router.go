package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	Sessions   TokenVerifier
	EmployeeUC *usecase.EmployeeUseCase
	CompanyUC  *usecase.CompanyUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	ReportUC   *usecase.ReportUseCase

	// CompaniesListPolicy: config.CompaniesListAuthenticated (por defecto) o config.CompaniesListAdmin.
	CompaniesListPolicy string
	// UploadDir y UploadPublicPath sirven las imágenes subidas; vacío desactiva la ruta estática.
	UploadDir        string
	UploadPublicPath string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.UploadDir != "" && deps.UploadPublicPath != "" {
		app.Static(deps.UploadPublicPath, deps.UploadDir)
	}

	api := app.Group("/api")
	api.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authMw := AuthMiddleware(deps.Sessions)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Perfil propio
	profile := api.Group("/profile", authMw)
	profile.Get("/", authHandler.Profile)
	profile.Put("/", authHandler.UpdateProfile)
	profile.Post("/remove-avatar", authHandler.RemoveAvatar)

	// Employees (solo admin)
	employees := api.Group("/employees", authMw, adminOnly)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// Companies: lectura según COMPANIES_LIST_POLICY, mutación solo admin
	companies := api.Group("/companies", authMw)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	readCompanies := []fiber.Handler{}
	if deps.CompaniesListPolicy == config.CompaniesListAdmin {
		readCompanies = append(readCompanies, adminOnly)
	}
	companies.Get("/", append(readCompanies, companyHandler.List)...)
	companies.Get("/:id", append(readCompanies, companyHandler.GetByID)...)
	companies.Post("/", adminOnly, companyHandler.Create)
	companies.Put("/:id", adminOnly, companyHandler.Update)
	companies.Delete("/:id", adminOnly, companyHandler.Delete)
	companies.Get("/:id/employees", adminOnly, companyHandler.Employees)
	companies.Post("/:id/employees", adminOnly, companyHandler.AddEmployee)
	companies.Delete("/:companyId/employees/:employeeId", adminOnly, companyHandler.RemoveEmployee)

	user := api.Group("/user", authMw)
	user.Get("/companies", companyHandler.MyCompanies)
	user.Get("/company", companyHandler.MyCompany)

	// Categories (/product-categories es la ruta del cliente web anterior)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	for _, prefix := range []string{"/categories", "/product-categories"} {
		categories := api.Group(prefix, authMw)
		categories.Get("/", categoryHandler.List)
		categories.Post("/", adminOnly, categoryHandler.Create)
	}

	// Products: lectura acotada a las empresas del funcionario
	products := api.Group("/products", authMw)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Reports
	reports := api.Group("/reports", authMw)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", adminOnly, reportHandler.Summary)
	reports.Get("/stock", reportHandler.Stock)
}
