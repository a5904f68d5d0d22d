package dto

import "time"

// CompanyRequest entrada para crear o actualizar una empresa.
type CompanyRequest struct {
	Name string `json:"name" form:"name"`
	CNPJ string `json:"cnpj" form:"cnpj"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	CreatedAt time.Time `json:"created_at"`
}

// AddMemberRequest vincula un funcionario a una empresa.
// Se acepta también "employeeId" por compatibilidad con el cliente web existente.
type AddMemberRequest struct {
	EmployeeID       string `json:"employee_id" form:"employee_id"`
	LegacyEmployeeID string `json:"employeeId" form:"employeeId"`
}

// ID devuelve el identificador informado en cualquiera de los dos campos.
func (r AddMemberRequest) ID() string {
	if r.EmployeeID != "" {
		return r.EmployeeID
	}
	return r.LegacyEmployeeID
}
