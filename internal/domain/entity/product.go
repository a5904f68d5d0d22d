package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Pertenece a una sola empresa durante toda su vida.
// CurrentStock y MinimumStock nunca son negativos.
type Product struct {
	ID           string
	CompanyID    string
	Code         string // único global
	Name         string
	Image        string // referencia a la imagen almacenada, vacío = sin imagen
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	ProfitMargin decimal.Decimal // porcentaje
	CategoryID   string          // vacío = sin categoría
	CategoryName string          // solo lectura (LEFT JOIN)
	CurrentStock int
	MinimumStock int
	Unit         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock informa si el stock actual llegó al mínimo configurado.
func (p *Product) LowStock() bool {
	return p.CurrentStock <= p.MinimumStock
}
