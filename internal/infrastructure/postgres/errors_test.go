package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

func TestMapPostgresError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"username duplicado", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "employees_username_key"}, domain.ErrConflict, "username ya registrado"},
		{"vínculo duplicado", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "company_employees_pkey"}, domain.ErrConflict, "el funcionario ya está vinculado a la empresa"},
		{"empresa inexistente", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "products_company_id_fkey"}, domain.ErrNotFound, "empresa no encontrada"},
		{"categoría inexistente", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "products_category_id_fkey"}, domain.ErrValidation, "categoría inexistente"},
		{"stock negativo", &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "products_current_stock_check"}, domain.ErrValidation, "current_stock no puede ser negativo"},
		{"uuid inválido", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, domain.ErrNotFound, "registro no encontrado"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapPostgresError("op", fmt.Errorf("wrapped: %w", tt.err))
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestMapPostgresError_Desconocido(t *testing.T) {
	assert.NoError(t, mapPostgresError("op", nil))

	plain := errors.New("conexión cerrada")
	err := mapPostgresError("insert employee", plain)
	assert.ErrorIs(t, err, plain)
	assert.Equal(t, domain.ErrInternal, domain.KindOf(err))

	err = mapPostgresError("insert employee", &pgconn.PgError{Code: pgerrcode.DeadlockDetected, Message: "deadlock"})
	assert.Equal(t, domain.ErrInternal, domain.KindOf(err))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}))
	assert.False(t, isNoRows(errors.New("x")))
}
