package domain

import (
	"encoding/json"

	"github.com/01infinito/facturacion-api/internal/format"
)

// Number is a float64 that tolerates loosely-typed JSON sources: plain
// numbers, quoted numeric strings (form inputs, drivers that return
// decimals as text), and null. Malformed input decodes to 0 rather
// than failing the whole document.
type Number float64

// UnmarshalJSON implements flexible decoding for Number
func (n *Number) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*n = 0
		return nil
	}

	// Quoted value: unwrap the string, then coerce
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*n = 0
			return nil
		}
		*n = Number(format.SanitizeNumber(str))
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(format.SanitizeNumber(f))
	return nil
}

// MarshalJSON always emits a plain JSON number
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(format.SanitizeNumber(float64(n)))
}

// Float returns the sanitized float64 value
func (n Number) Float() float64 {
	return format.SanitizeNumber(float64(n))
}
