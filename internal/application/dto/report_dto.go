package dto

// EmployeeStats conteo de funcionarios por rol.
type EmployeeStats struct {
	Total  int `json:"total"`
	Admins int `json:"admins"`
	Users  int `json:"users"`
}

// CompanyStats conteo de empresas.
type CompanyStats struct {
	Total int `json:"total"`
}

// ProductStats conteo de productos de una empresa.
type ProductStats struct {
	CompanyID string `json:"company_id"`
	Total     int    `json:"total"`
	LowStock  int    `json:"low_stock"`
}

// SummaryResponse respuesta de GET /api/reports/summary. Products solo se informa con companyId.
type SummaryResponse struct {
	Employees EmployeeStats `json:"employees"`
	Companies CompanyStats  `json:"companies"`
	Products  *ProductStats `json:"products,omitempty"`
}
