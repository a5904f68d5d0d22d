// seed_catalog importa categorías desde un XML (UTF-8 o ISO-8859-1) y las crea
// con las mismas reglas que la API: nombre normalizado y único.
//
// Uso: go run ./cmd/seed_catalog [ruta/categorias.xml]
// Por defecto busca categorias.xml en el directorio actual.
//
// Formato esperado:
//
//	<categorias>
//	  <categoria nombre="Bebidas"/>
//	  <categoria>Limpieza</categoria>
//	</categorias>
package main

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

type categorias struct {
	Items []categoria `xml:"categoria"`
}

type categoria struct {
	Nombre string `xml:"nombre,attr"`
	Texto  string `xml:",chardata"`
}

func (c categoria) name() string {
	if s := strings.TrimSpace(c.Nombre); s != "" {
		return s
	}
	return strings.TrimSpace(c.Texto)
}

type categoryCreator interface {
	Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error)
}

type result struct {
	Created int
	Skipped int
}

func main() {
	xmlPath := "categorias.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(xmlPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", xmlPath).Msg("abrir XML")
	}
	defer f.Close()

	names, err := parseCategories(f)
	if err != nil {
		log.Fatal().Err(err).Msg("decodificar XML")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := usecase.NewCategoryUseCase(postgres.NewCategoryRepository(pool))
	res, err := importCategories(ctx, uc, names)
	if err != nil {
		log.Fatal().Err(err).Msg("importar categorías")
	}
	log.Info().Str("path", xmlPath).Int("creadas", res.Created).Int("existentes", res.Skipped).Msg("categorías importadas")
}

// parseCategories decodifica el XML y devuelve los nombres no vacíos en el orden del archivo.
func parseCategories(r io.Reader) ([]string, error) {
	var doc categorias
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252", "CP1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc.Items))
	for _, c := range doc.Items {
		if n := c.name(); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

// importCategories crea cada categoría; las ya existentes se cuentan y se saltan.
func importCategories(ctx context.Context, uc categoryCreator, names []string) (result, error) {
	var res result
	for _, n := range names {
		_, err := uc.Create(ctx, dto.CategoryRequest{Name: n})
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrConflict):
			res.Skipped++
		default:
			return res, fmt.Errorf("categoría %q: %w", n, err)
		}
	}
	return res, nil
}
