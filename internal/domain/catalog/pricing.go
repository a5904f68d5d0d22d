// Package catalog contiene las reglas de negocio puras del catálogo: margen de ganancia,
// ajuste de stock y normalización de nombres.
package catalog

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ProfitMargin calcula el margen porcentual sobre el costo:
// margen = ((venta - costo) / costo) * 100, redondeado a 2 decimales.
// Con costo cero el margen no está definido y se devuelve 0.
func ProfitMargin(cost, selling decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return selling.Sub(cost).Div(cost).Mul(hundred).Round(2)
}

// SellingPrice calcula el precio de venta a partir del costo y del margen porcentual.
func SellingPrice(cost, margin decimal.Decimal) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(1).Add(margin.Div(hundred))).Round(2)
}

// ApplyStockDelta suma delta al stock actual. La edición de un producto es aditiva:
// nunca sobrescribe el valor absoluto. Falla si el resultado sería negativo o no cabe en INTEGER.
func ApplyStockDelta(current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, domain.Wrap(domain.ErrValidation, "el ajuste deja el stock en negativo")
	}
	if next > math.MaxInt32 {
		return current, domain.Wrap(domain.ErrValidation, "el ajuste deja el stock fuera de rango")
	}
	return next, nil
}

// ValidateStock verifica los valores absolutos de stock usados al crear un producto.
func ValidateStock(current, minimum int) error {
	if current < 0 || minimum < 0 {
		return domain.Wrap(domain.ErrValidation, "current_stock y minimum_stock no pueden ser negativos")
	}
	return nil
}

// NormalizeName deja un nombre en forma NFC, sin espacios extremos y con espacios internos simples.
// Evita duplicados aparentes ("Bebidas" vs "Bebidas " o acentos compuestos vs precompuestos).
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
