package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken agrupa todos los motivos de rechazo (firma, formato, expiración).
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims incluye los claims estándar JWT más los campos propios de la sesión.
// Role viaja en el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	EmployeeID string `json:"employee_id"`
	Username   string `json:"username"`
	Role       string `json:"role"` // "admin" | "user"
}

// Signer emite y valida tokens HS256 con un secreto fijo y una vigencia fija.
type Signer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewSigner construye el firmador. El secreto no puede ser vacío.
func NewSigner(secret string, ttl time.Duration, issuer string) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt: vigencia debe ser positiva")
	}
	return &Signer{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

// WithClock reemplaza el reloj (tests).
func (s *Signer) WithClock(now func() time.Time) *Signer {
	cp := *s
	cp.now = now
	return &cp
}

// TTL vigencia de los tokens emitidos.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Generate genera un token firmado con employeeID, username y role. Devuelve también el instante de expiración.
func (s *Signer) Generate(employeeID, username, role string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   employeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		EmployeeID: employeeID,
		Username:   username,
		Role:       role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar: %w", err)
	}
	// NumericDate trunca a segundos; devolvemos lo que realmente quedó en el token.
	return signed, claims.ExpiresAt.Time, nil
}

// Parse valida firma, emisor y expiración. El token es válido hasta su instante de
// expiración inclusive y se rechaza estrictamente después.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: claims inválidos", ErrInvalidToken)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: falta exp", ErrInvalidToken)
	}
	if s.now().After(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: expirado", ErrInvalidToken)
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, fmt.Errorf("%w: emisor inesperado", ErrInvalidToken)
	}
	return claims, nil
}
