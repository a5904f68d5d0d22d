package dto

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP. Kind es estable (taxonomía de dominio); Code es específico.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// Loose valor escalar recibido como número o texto JSON, o como campo de formulario multipart.
// La coerción al tipo de almacenamiento se hace con Decimal/Int.
type Loose string

// UnmarshalJSON acepta "12.5", 12.5 y null.
func (l *Loose) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*l = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*l = Loose(str)
	default:
		*l = Loose(s)
	}
	return nil
}

// IsSet informa si el campo vino con algún valor.
func (l Loose) IsSet() bool { return strings.TrimSpace(string(l)) != "" }

// Decimal convierte el valor; field se usa en el mensaje de error.
func (l Loose) Decimal(field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(string(l), ",", ".")))
	if err != nil {
		return decimal.Zero, domain.Wrap(domain.ErrValidation, field+" debe ser numérico")
	}
	return d, nil
}

var (
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
)

// Int convierte el valor a entero. Acepta "10" y "10.0" pero no "10.5".
// El rango es el de INTEGER en PostgreSQL (int32).
func (l Loose) Int(field string) (int, error) {
	d, err := l.Decimal(field)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, domain.Wrap(domain.ErrValidation, field+" debe ser entero")
	}
	if d.LessThan(minInt32) || d.GreaterThan(maxInt32) {
		return 0, domain.Wrap(domain.ErrValidation, field+" fuera de rango")
	}
	return int(d.IntPart()), nil
}

// PublicRef normaliza una referencia de imagen almacenada a separadores "/"
// (filas antiguas pueden traer "\" por haber sido guardadas en Windows).
func PublicRef(ref string) string {
	return strings.ReplaceAll(ref, `\`, "/")
}
