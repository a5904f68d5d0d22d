package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

func latin1(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestParseCategories_ISO88591(t *testing.T) {
	doc := latin1(t, `<?xml version="1.0" encoding="ISO-8859-1"?>
<categorias>
  <categoria nombre="Ferramentas e Peças"/>
  <categoria>  Limpeza  </categoria>
  <categoria nombre=""/>
</categorias>`)

	names, err := parseCategories(bytes.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ferramentas e Peças", "Limpeza"}, names)
}

func TestParseCategories_XMLInvalido(t *testing.T) {
	_, err := parseCategories(bytes.NewReader([]byte("<categorias>")))
	assert.Error(t, err)
}

func TestImportCategories_SaltaExistentes(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCategoryUseCase(store.Repositories().Categories)
	ctx := context.Background()

	res, err := importCategories(ctx, uc, []string{"Bebidas", "Limpeza", "  Bebidas "})
	require.NoError(t, err)
	assert.Equal(t, result{Created: 2, Skipped: 1}, res)

	res, err = importCategories(ctx, uc, []string{"Limpeza", "Frios"})
	require.NoError(t, err)
	assert.Equal(t, result{Created: 1, Skipped: 1}, res)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
