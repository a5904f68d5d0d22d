package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	_ "github.com/jhoicas/backoffice-api/docs"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// @title                       Backoffice API
// @version                     1.0
// @description                 Funcionarios, empresas, categorías y productos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos ports.Repositories
		tx    ports.TxRunner
	)
	switch cfg.App.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		repos, tx = store.Repositories(), store.TxRunner()
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos, tx = postgres.NewRepositories(pool), postgres.NewTxRunner(pool)
	}

	images, err := storage.NewDiskImageStore(afero.NewOsFs(), cfg.Upload.Dir, cfg.Upload.PublicPath, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de imágenes")
	}

	signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.TTL(), cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("firmador JWT")
	}
	sessions := auth.NewSessionService(signer)
	hasher := auth.NewHasher(cfg.Security.BcryptCost)

	if _, err := auth.EnsureSeedAdmin(ctx, repos.Employees, hasher, cfg.Seed.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed del administrador")
	}

	// Hay dos reglas en uso para GET /api/companies (solo admin vs cualquier autenticado).
	// Se deja configurable hasta que producto lo defina.
	log.Warn().
		Str("policy", cfg.Policy.CompaniesList).
		Msg("política de listado de empresas sin definir; ajustar COMPANIES_LIST_POLICY (authenticated|admin)")

	productUC := usecase.NewProductUseCase(repos.Products, repos.Companies, repos.Memberships, tx, images)
	deps := httpRouter.RouterDeps{
		AuthUC:              auth.NewAuthUseCase(repos.Employees, tx, images, sessions, hasher),
		Sessions:            sessions,
		EmployeeUC:          usecase.NewEmployeeUseCase(repos.Employees, tx, images, hasher),
		CompanyUC:           usecase.NewCompanyUseCase(repos.Companies, repos.Memberships, repos.Employees),
		CategoryUC:          usecase.NewCategoryUseCase(repos.Categories),
		ProductUC:           productUC,
		ReportUC:            usecase.NewReportUseCase(repos.Employees, repos.Companies, repos.Products, productUC, infrapdf.NewMarotoPDFGenerator()),
		CompaniesListPolicy: cfg.Policy.CompaniesList,
		UploadDir:           cfg.Upload.Dir,
		UploadPublicPath:    "/" + strings.Trim(cfg.Upload.PublicPath, "/"),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// margen sobre el tamaño de imagen para los demás campos del formulario
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(httpRouter.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Backoffice API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
