package invoice

import (
	"regexp"
	"strings"
	"time"

	"github.com/01infinito/facturacion-api/internal/domain"
)

// isoDate is the canonical calendar-date layout used in storage
const isoDate = "2006-01-02"

var (
	displayDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	isoPrefixPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// Sanitize coerces a raw invoice (freshly loaded or freshly edited)
// into canonical types, using today's date as the fallback for blank
// date fields. See SanitizeWithFallback.
func Sanitize(inv domain.Invoice) domain.Invoice {
	return SanitizeWithFallback(inv, time.Now().UTC().Format(isoDate))
}

// SanitizeWithFallback coerces item quantities/prices and the tax rate
// to numeric values and normalizes Date/DueDate to YYYY-MM-DD, with
// blank dates falling back to fallbackDate. It is idempotent and must
// run before both calculation and persistence so the stored totals
// always match the items that produced them. The input is not mutated.
func SanitizeWithFallback(inv domain.Invoice, fallbackDate string) domain.Invoice {
	out := inv
	out.Items = make([]domain.InvoiceItem, len(inv.Items))
	for i, item := range inv.Items {
		item.Quantity = domain.Number(item.Quantity.Float())
		item.Price = domain.Number(item.Price.Float())
		out.Items[i] = item
	}
	out.TaxRate = domain.Number(inv.TaxRate.Float())
	out.Date = NormalizeDate(inv.Date, fallbackDate)
	out.DueDate = NormalizeDate(inv.DueDate, fallbackDate)
	return out
}

// NormalizeDate converts a date string into the canonical YYYY-MM-DD
// form: blank input falls back to the supplied default, DD/MM/YYYY is
// rearranged, anything starting with a YYYY-MM-DD shaped prefix is
// truncated to its first 10 characters. Shape is all that is checked;
// no calendar validation happens here, and unparseable non-empty
// strings pass through unchanged (best-effort, see DESIGN.md).
func NormalizeDate(value, fallback string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return fallback
	}

	if displayDatePattern.MatchString(s) {
		return s[6:10] + "-" + s[3:5] + "-" + s[0:2]
	}

	if isoPrefixPattern.MatchString(s) {
		return s[:10]
	}

	return s
}

// NormalizeDateTime is the date-typed entry point of NormalizeDate: it
// emits the ISO calendar-date portion of t, or the fallback when t is
// the zero time.
func NormalizeDateTime(t time.Time, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.UTC().Format(isoDate)
}
