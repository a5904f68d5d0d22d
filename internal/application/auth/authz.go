package auth

import "github.com/jhoicas/backoffice-api/internal/domain"

// RequireAuthenticated falla con domain.ErrUnauthenticated si no hay sesión.
func RequireAuthenticated(c *Claim) (*Claim, error) {
	if c == nil || c.EmployeeID == "" {
		return nil, domain.Wrap(domain.ErrUnauthenticated, "autenticación requerida")
	}
	return c, nil
}

// RequireRole exige una sesión con alguno de los roles indicados.
func RequireRole(c *Claim, roles ...string) error {
	if _, err := RequireAuthenticated(c); err != nil {
		return err
	}
	for _, r := range roles {
		if c.Role == r {
			return nil
		}
	}
	return domain.Wrap(domain.ErrForbidden, "permisos insuficientes")
}
