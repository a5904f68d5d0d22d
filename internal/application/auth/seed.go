package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Datos del administrador inicial.
const (
	SeedAdminUsername = "admin"
	SeedAdminCPF      = "000.000.000-00"
	SeedAdminEmail    = "admin@example.com"
	SeedAdminFullName = "Administrador"
	SeedAdminPhone    = "(00) 00000-0000"
)

// EnsureSeedAdmin crea el administrador inicial si no existe ningún funcionario con su
// username o CPF. Es idempotente: llamadas repetidas no crean duplicados.
func EnsureSeedAdmin(ctx context.Context, employees repository.EmployeeRepository, hasher *Hasher, password string) (bool, error) {
	existing, err := employees.FindByUsernameOrCPF(ctx, SeedAdminUsername, SeedAdminCPF)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}
	now := time.Now()
	admin := &entity.Employee{
		ID:           uuid.New().String(),
		FullName:     SeedAdminFullName,
		Username:     SeedAdminUsername,
		Email:        SeedAdminEmail,
		PasswordHash: hash,
		Phone:        SeedAdminPhone,
		CPF:          SeedAdminCPF,
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := employees.Create(ctx, admin); err != nil {
		// otra instancia lo creó entre la consulta y el insert
		if errors.Is(err, domain.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	log.Info().Str("username", SeedAdminUsername).Msg("administrador inicial creado")
	return true, nil
}
