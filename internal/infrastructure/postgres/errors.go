package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// Mensajes por constraint. Los nombres están fijados en migrations/1_initial_schema.sql.
var constraintMessages = map[string]string{
	"employees_username_key":             "username ya registrado",
	"employees_email_key":                "email ya registrado",
	"employees_cpf_key":                  "cpf ya registrado",
	"companies_cnpj_key":                 "cnpj ya registrado",
	"product_categories_name_key":        "categoría ya existe",
	"products_code_key":                  "código de producto ya registrado",
	"company_employees_pkey":             "el funcionario ya está vinculado a la empresa",
	"company_employees_company_id_fkey":  "empresa no encontrada",
	"company_employees_employee_id_fkey": "funcionario no encontrado",
	"products_company_id_fkey":           "empresa no encontrada",
	"products_category_id_fkey":          "categoría inexistente",
	"products_current_stock_check":       "current_stock no puede ser negativo",
	"products_minimum_stock_check":       "minimum_stock no puede ser negativo",
	"employees_role_check":               "role debe ser admin o user",
}

func constraintMessage(pgErr *pgconn.PgError, fallback string) string {
	if msg, ok := constraintMessages[pgErr.ConstraintName]; ok {
		return msg
	}
	return fallback
}

// mapPostgresError traduce errores de PostgreSQL a la taxonomía de dominio.
// Lo que no se reconoce se devuelve envuelto con op y termina como InternalError.
func mapPostgresError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return domain.Wrap(domain.ErrConflict, constraintMessage(pgErr, "registro duplicado"))

	case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
		// referencia a una fila inexistente al insertar/actualizar
		if pgErr.ConstraintName == "products_category_id_fkey" {
			return domain.Wrap(domain.ErrValidation, constraintMessage(pgErr, ""))
		}
		return domain.Wrap(domain.ErrNotFound, constraintMessage(pgErr, "registro relacionado no encontrado"))

	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.NumericValueOutOfRange:
		return domain.Wrap(domain.ErrValidation, constraintMessage(pgErr, pgErr.Message))

	case pgerrcode.InvalidTextRepresentation:
		// id que no es un UUID válido: no puede existir
		return domain.Wrap(domain.ErrNotFound, "registro no encontrado")

	default:
		return fmt.Errorf("%s: postgres error [%s]: %s: %w", op, pgErr.Code, pgErr.Message, err)
	}
}

// isForeignKeyViolation se usa al borrar filas referenciadas (p.ej. empresa con productos).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.ForeignKeyViolation || pgErr.Code == pgerrcode.RestrictViolation
}

// isNoRows cubre también ids con formato inválido, que no pueden corresponder a ninguna fila.
func isNoRows(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
