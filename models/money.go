package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Money representa un monto en centavos para evitar errores de redondeo
// con flotantes.
type Money int64

var ErrMontoInvalido = errors.New("monto inválido")

// ParseAmount convierte el texto tipeado por el operador ("100", "35.5",
// "155.50") a centavos. Rechaza vacío, no numérico, negativo y más de dos
// decimales.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return 0, ErrMontoInvalido
	}

	entero := s
	decimales := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		entero = s[:i]
		decimales = s[i+1:]
	}
	if entero == "" {
		entero = "0"
	}
	if len(decimales) > 2 {
		return 0, ErrMontoInvalido
	}
	// Completar a dos decimales: "5" -> "50"
	for len(decimales) < 2 {
		decimales += "0"
	}

	pesos, err := strconv.ParseInt(entero, 10, 64)
	if err != nil || pesos < 0 || strings.HasPrefix(entero, "-") {
		return 0, ErrMontoInvalido
	}
	cent, err := strconv.ParseInt(decimales, 10, 64)
	if err != nil || cent < 0 {
		return 0, ErrMontoInvalido
	}

	return Money(pesos*100 + cent), nil
}

// Format devuelve el monto como "1234.56".
func (m Money) Format() string {
	neg := ""
	v := int64(m)
	if v < 0 {
		neg = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", neg, v/100, v%100)
}
