package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// EmployeeUseCase administración de funcionarios (solo admin; el control de rol está en HTTP).
type EmployeeUseCase struct {
	repo   repository.EmployeeRepository
	tx     ports.TxRunner
	images ports.ImageStore
	hasher *auth.Hasher
	now    func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, tx ports.TxRunner, images ports.ImageStore, hasher *auth.Hasher) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, tx: tx, images: images, hasher: hasher, now: time.Now}
}

func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *dto.NewEmployeeResponse(e))
	}
	return out, nil
}

func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
	}
	return dto.NewEmployeeResponse(e), nil
}

// Create registra un funcionario. Role vacío es "user". Username, email y CPF son únicos (ErrConflict).
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e := &entity.Employee{
		FullName: strings.TrimSpace(in.FullName),
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		CPF:      strings.TrimSpace(in.CPF),
		Role:     strings.TrimSpace(in.Role),
	}
	if e.Role == "" {
		e.Role = entity.RoleUser
	}
	if e.FullName == "" || e.Username == "" || e.Email == "" || e.CPF == "" || in.Password == "" {
		return nil, domain.Wrap(domain.ErrValidation, "full_name, username, email, cpf y password son requeridos")
	}
	if !entity.ValidRole(e.Role) {
		return nil, domain.Wrap(domain.ErrValidation, "role debe ser admin o user")
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	e.ID = uuid.New().String()
	e.PasswordHash = hash
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return dto.NewEmployeeResponse(e), nil
}

// Update modifica los campos informados de un funcionario.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if role := strings.TrimSpace(in.Role); role != "" && !entity.ValidRole(role) {
		return nil, domain.Wrap(domain.ErrValidation, "role debe ser admin o user")
	}
	var hash string
	if in.Password != "" {
		h, err := uc.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
	}
	setIfPresent(&e.FullName, in.FullName)
	setIfPresent(&e.Username, in.Username)
	setIfPresent(&e.Email, in.Email)
	setIfPresent(&e.Phone, in.Phone)
	setIfPresent(&e.CPF, in.CPF)
	setIfPresent(&e.Role, in.Role)
	if hash != "" {
		e.PasswordHash = hash
	}
	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return dto.NewEmployeeResponse(e), nil
}

// Delete elimina el funcionario (y sus vínculos). El avatar se libera después del commit.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	var avatar string
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		e, err := repos.Employees.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
		}
		avatar = e.Avatar
		return repos.Employees.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	ports.ReleaseBestEffort(ctx, uc.images, avatar, "funcionario eliminado")
	return nil
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
