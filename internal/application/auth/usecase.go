package auth

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// AuthUseCase casos de uso de autenticación y perfil propio: login, ver/editar perfil y avatar.
type AuthUseCase struct {
	employees repository.EmployeeRepository
	tx        ports.TxRunner
	images    ports.ImageStore
	sessions  *SessionService
	hasher    *Hasher
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employees repository.EmployeeRepository, tx ports.TxRunner, images ports.ImageStore, sessions *SessionService, hasher *Hasher) *AuthUseCase {
	return &AuthUseCase{employees: employees, tx: tx, images: images, sessions: sessions, hasher: hasher, now: time.Now}
}

// Login verifica usuario/contraseña y emite un token. Usuario inexistente y contraseña
// incorrecta devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.Wrap(domain.ErrValidation, "username y password son requeridos")
	}
	e, err := uc.employees.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if e == nil {
		log.Debug().Str("username", username).Msg("login: usuario no encontrado")
		return nil, domain.Wrap(domain.ErrInvalidCredentials, "credenciales inválidas")
	}
	if !uc.hasher.Verify(e.PasswordHash, in.Password) {
		log.Debug().Str("username", username).Msg("login: contraseña incorrecta")
		return nil, domain.Wrap(domain.ErrInvalidCredentials, "credenciales inválidas")
	}
	token, claim, err := uc.sessions.Issue(e)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claim.ExpiresAt,
		User:      *dto.NewEmployeeResponse(e),
	}, nil
}

// Profile devuelve el perfil del funcionario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, employeeID string) (*dto.EmployeeResponse, error) {
	e, err := uc.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
	}
	return dto.NewEmployeeResponse(e), nil
}

// UpdateProfile edita el perfil propio. Cambiar la contraseña exige la actual; si falta
// se trata igual que una contraseña actual incorrecta.
// Si llega un avatar nuevo se guarda antes de la transacción; el anterior se libera
// después del commit y el nuevo se libera si la transacción falla.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, employeeID string, in dto.UpdateProfileRequest, avatar *ports.ImageUpload) (*dto.EmployeeResponse, error) {
	if in.NewPassword != "" && in.CurrentPassword == "" {
		return nil, domain.Wrap(domain.ErrInvalidCredentials, "la contraseña actual no coincide")
	}

	var newRef string
	if avatar != nil {
		ref, err := uc.images.Save(ctx, *avatar)
		if err != nil {
			return nil, err
		}
		newRef = ref
	}

	var (
		updated *dto.EmployeeResponse
		oldRef  string
	)
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		e, err := repos.Employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
		}
		if in.NewPassword != "" {
			if !uc.hasher.Verify(e.PasswordHash, in.CurrentPassword) {
				return domain.Wrap(domain.ErrInvalidCredentials, "la contraseña actual no coincide")
			}
			hash, err := uc.hasher.Hash(in.NewPassword)
			if err != nil {
				return err
			}
			e.PasswordHash = hash
		}
		if v := strings.TrimSpace(in.FullName); v != "" {
			e.FullName = v
		}
		if v := strings.TrimSpace(in.Email); v != "" {
			e.Email = v
		}
		if v := strings.TrimSpace(in.Phone); v != "" {
			e.Phone = v
		}
		if newRef != "" {
			oldRef = e.Avatar
			e.Avatar = newRef
		}
		e.UpdatedAt = uc.now()
		if err := repos.Employees.Update(ctx, e); err != nil {
			return err
		}
		updated = dto.NewEmployeeResponse(e)
		return nil
	})
	if err != nil {
		ports.ReleaseBestEffort(ctx, uc.images, newRef, "perfil no actualizado")
		return nil, err
	}
	ports.ReleaseBestEffort(ctx, uc.images, oldRef, "avatar reemplazado")
	return updated, nil
}

// RemoveAvatar quita el avatar del funcionario y libera la imagen almacenada.
func (uc *AuthUseCase) RemoveAvatar(ctx context.Context, employeeID string) (*dto.EmployeeResponse, error) {
	var (
		updated *dto.EmployeeResponse
		oldRef  string
	)
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		e, err := repos.Employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.Wrap(domain.ErrNotFound, "funcionario no encontrado")
		}
		oldRef = e.Avatar
		e.Avatar = ""
		e.UpdatedAt = uc.now()
		if err := repos.Employees.Update(ctx, e); err != nil {
			return err
		}
		updated = dto.NewEmployeeResponse(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	ports.ReleaseBestEffort(ctx, uc.images, oldRef, "avatar eliminado")
	return updated, nil
}
