package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/backoffice-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "backoffice-test"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func newSigner(t *testing.T, now time.Time) *pkgjwt.Signer {
	t.Helper()
	s, err := pkgjwt.NewSigner(testSecret, 24*time.Hour, testIssuer)
	require.NoError(t, err)
	return s.WithClock(fixedClock(now))
}

func TestGenerateAndParse(t *testing.T) {
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := newSigner(t, issued)

	tok, exp, err := s.Generate("emp-1", "maria", "admin")
	require.NoError(t, err)
	assert.Equal(t, issued.Add(24*time.Hour), exp)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestParse_AceptaHastaElInstanteDeExpiracion(t *testing.T) {
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tok, exp, err := newSigner(t, issued).Generate("emp-1", "maria", "user")
	require.NoError(t, err)

	_, err = newSigner(t, exp).Parse(tok)
	assert.NoError(t, err, "en el instante exacto de expiración el token sigue siendo válido")

	_, err = newSigner(t, exp.Add(time.Second)).Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "un segundo después debe rechazarse")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	now := time.Now()
	tok, _, err := newSigner(t, now).Generate("emp-1", "maria", "admin")
	require.NoError(t, err)

	other, err := pkgjwt.NewSigner("otro-secret-completamente-distinto", 24*time.Hour, testIssuer)
	require.NoError(t, err)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestParse_Malformado(t *testing.T) {
	_, err := newSigner(t, time.Now()).Parse("token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestNewSigner_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewSigner("", time.Hour, testIssuer)
	assert.Error(t, err)
}
