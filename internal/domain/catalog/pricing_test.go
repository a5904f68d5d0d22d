package catalog_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/catalog"
)

func TestProfitMargin(t *testing.T) {
	cases := []struct {
		cost, selling, want string
	}{
		{"10", "15", "50"},
		{"8.50", "10", "17.65"},
		{"20", "15", "-25"},
		{"0", "15", "0"},
	}
	for _, tc := range cases {
		got := catalog.ProfitMargin(decimal.RequireFromString(tc.cost), decimal.RequireFromString(tc.selling))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"margen(%s, %s) = %s, se esperaba %s", tc.cost, tc.selling, got, tc.want)
	}
}

func TestSellingPrice_InversoDelMargen(t *testing.T) {
	got := catalog.SellingPrice(decimal.NewFromInt(10), decimal.NewFromInt(50))
	assert.True(t, got.Equal(decimal.NewFromInt(15)), "got %s", got)
}

func TestApplyStockDelta_EsAditivo(t *testing.T) {
	for _, tc := range []struct{ s, d, want int }{
		{10, 5, 15},
		{10, -3, 7},
		{0, 0, 0},
		{7, -7, 0},
	} {
		got, err := catalog.ApplyStockDelta(tc.s, tc.d)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "S=%d D=%d", tc.s, tc.d)
	}
}

func TestApplyStockDelta_NoPermiteNegativo(t *testing.T) {
	got, err := catalog.ApplyStockDelta(3, -4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, 3, got, "el stock original se conserva")
}

func TestApplyStockDelta_FueraDeRango(t *testing.T) {
	got, err := catalog.ApplyStockDelta(2_000_000_000, 2_000_000_000)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 2_000_000_000, got)
}

func TestValidateStock(t *testing.T) {
	assert.NoError(t, catalog.ValidateStock(0, 0))
	assert.ErrorIs(t, catalog.ValidateStock(-1, 0), domain.ErrValidation)
	assert.ErrorIs(t, catalog.ValidateStock(1, -2), domain.ErrValidation)
}

func TestNormalizeName(t *testing.T) {
	// "é" descompuesto (e + acento combinante) debe quedar precompuesto.
	assert.Equal(t, "Caf\u00e9 Especial", catalog.NormalizeName("  Cafe\u0301   Especial "))
	assert.Equal(t, "Bebidas", catalog.NormalizeName("Bebidas"))
}
