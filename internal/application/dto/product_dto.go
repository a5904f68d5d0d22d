package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest entrada para crear una categoría.
type CategoryRequest struct {
	Name string `json:"name" form:"name"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductForm entrada para crear o actualizar un producto. Llega como JSON o multipart
// (con la imagen en el campo "image"); los numéricos se aceptan como texto y se convierten.
//
// Al crear, CurrentStock es el stock inicial absoluto. Al actualizar, el stock solo se
// ajusta con StockDelta (se suma al actual); enviar CurrentStock en una actualización es un error.
type ProductForm struct {
	Code         string `json:"code" form:"code"`
	Name         string `json:"name" form:"name"`
	CostPrice    Loose  `json:"cost_price" form:"cost_price"`
	SellingPrice Loose  `json:"selling_price" form:"selling_price"`
	ProfitMargin Loose  `json:"profit_margin" form:"profit_margin"`
	CategoryID   string `json:"category_id" form:"category_id"`
	CurrentStock Loose  `json:"current_stock" form:"current_stock"`
	StockDelta   Loose  `json:"stock_delta" form:"stock_delta"`
	MinimumStock Loose  `json:"minimum_stock" form:"minimum_stock"`
	Unit         string `json:"unit" form:"unit"`
	CompanyID    string `json:"company_id" form:"company_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Image        *string         `json:"image"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
	CategoryID   *string         `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	CurrentStock int             `json:"current_stock"`
	MinimumStock int             `json:"minimum_stock"`
	LowStock     bool            `json:"low_stock"`
	Unit         string          `json:"unit"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
