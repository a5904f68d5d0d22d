package entity

import "time"

// Company representa una empresa (tenant): dueña de productos y con funcionarios vinculados.
type Company struct {
	ID        string
	Name      string
	CNPJ      string // identificador fiscal, único
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership vincula un funcionario a una empresa. El par (CompanyID, EmployeeID) es único.
type Membership struct {
	CompanyID  string
	EmployeeID string
	CreatedAt  time.Time
}
