// Package format holds the display-formatting helpers shared by the
// invoice calculator and the PDF builder. All functions are pure and
// total: malformed input coerces to a safe default instead of erroring.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SanitizeNumber coerces a loosely-typed value (number, numeric string,
// nil) into a finite float64. Anything unparseable or non-finite
// becomes 0. It never panics.
func SanitizeNumber(value any) float64 {
	var numeric float64

	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		numeric = v
	case float32:
		numeric = float64(v)
	case int:
		numeric = float64(v)
	case int32:
		numeric = float64(v)
	case int64:
		numeric = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		numeric = parsed
	default:
		return 0
	}

	if math.IsNaN(numeric) || math.IsInf(numeric, 0) {
		return 0
	}
	return numeric
}

// Quantity renders a quantity without decimals when it is a whole
// number, otherwise with exactly two decimals and thousands grouping.
func Quantity(value float64) string {
	numeric := SanitizeNumber(value)
	if numeric == math.Trunc(numeric) {
		return strconv.FormatFloat(numeric, 'f', -1, 64)
	}
	return groupThousands(strconv.FormatFloat(numeric, 'f', 2, 64))
}

// Currency renders a monetary amount with exactly two decimals and
// thousands grouping. The currency symbol is the caller's concern.
func Currency(value float64) string {
	return groupThousands(strconv.FormatFloat(SanitizeNumber(value), 'f', 2, 64))
}

// Percentage renders a rate with up to two decimals, dropping trailing
// zeros after the decimal point.
func Percentage(value float64) string {
	numeric := math.Round(SanitizeNumber(value)*100) / 100
	return groupThousands(strconv.FormatFloat(numeric, 'f', -1, 64))
}

// dateLayouts are tried in order when parsing a date string. Date-only
// layouts parse timezone-neutral, so a calendar date stored without a
// time-of-day never shifts by a day.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Date renders a date value as DD/MM/YYYY, or "" when the input is
// empty or unparseable. Inputs carrying a time-of-day are reduced to
// their UTC calendar date.
func Date(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return ""
	}
	return t.Format("02/01/2006")
}

// ParseDate parses a DD/MM/YYYY, YYYY-MM-DD, or RFC3339-style string
// into a calendar date in UTC. The second return is false when the
// input is blank or matches no known layout.
func ParseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// groupThousands inserts comma separators into the integer part of a
// formatted decimal string. Ex: "1234.50" -> "1,234.50".
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	n := len(intPart)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, intPart[i])
		}
		intPart = string(buf)
	}

	if hasFrac {
		return sign + intPart + "." + fracPart
	}
	return sign + intPart
}
