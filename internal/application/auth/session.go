package auth

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

// Claim identidad autenticada que viaja en cada petición.
type Claim struct {
	EmployeeID string
	Username   string
	Role       string
	ExpiresAt  time.Time
}

// IsAdmin informa si la sesión tiene rol admin.
func (c *Claim) IsAdmin() bool { return c != nil && c.Role == entity.RoleAdmin }

// SessionService emite y verifica tokens de sesión firmados (HS256).
// Las sesiones no se revocan: un token es válido hasta su expiración.
type SessionService struct {
	signer *jwt.Signer
}

// NewSessionService construye el servicio a partir del firmador JWT.
func NewSessionService(signer *jwt.Signer) *SessionService {
	return &SessionService{signer: signer}
}

// Issue emite un token para el funcionario.
func (s *SessionService) Issue(e *entity.Employee) (string, *Claim, error) {
	token, exp, err := s.signer.Generate(e.ID, e.Username, e.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &Claim{EmployeeID: e.ID, Username: e.Username, Role: e.Role, ExpiresAt: exp}, nil
}

// Verify valida firma y expiración. Cualquier fallo es domain.ErrUnauthenticated.
func (s *SessionService) Verify(token string) (*Claim, error) {
	if token == "" {
		return nil, domain.Wrap(domain.ErrUnauthenticated, "token requerido")
	}
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, domain.Wrap(domain.ErrUnauthenticated, "token inválido o expirado")
	}
	c := &Claim{EmployeeID: claims.EmployeeID, Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		c.ExpiresAt = claims.ExpiresAt.Time
	}
	return c, nil
}
