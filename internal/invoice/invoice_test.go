package invoice

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01infinito/facturacion-api/internal/domain"
)

func TestCalculateTotals(t *testing.T) {
	inv := domain.Invoice{
		Items: []domain.InvoiceItem{
			{Quantity: 2, Price: 10},
			{Quantity: 1, Price: 5},
		},
		TaxRate: 21,
	}

	totals := CalculateTotals(inv)
	assert.Equal(t, 25.0, totals.Subtotal)
	assert.Equal(t, 5.25, totals.Tax)
	assert.Equal(t, 30.25, totals.Total)
}

func TestCalculateTotalsEmptyItems(t *testing.T) {
	totals := CalculateTotals(domain.Invoice{TaxRate: 21})
	assert.Equal(t, domain.Totals{}, totals)
}

func TestCalculateTotalsIdempotent(t *testing.T) {
	inv := domain.Invoice{
		Items:   []domain.InvoiceItem{{Quantity: 3, Price: 19.99}},
		TaxRate: 10,
	}
	first := CalculateTotals(inv)
	second := CalculateTotals(inv)
	assert.Equal(t, first, second)
}

func TestCalculateTotalsStringEncodedItems(t *testing.T) {
	// quantities and prices arriving as JSON strings must contribute
	// their numeric value, not crash or poison the sum
	var inv domain.Invoice
	payload := `{
		"items": [
			{"description": "Hosting", "quantity": "2", "price": "19.99"},
			{"description": "Broken", "quantity": "n/a", "price": "50"}
		],
		"taxRate": "21"
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &inv))

	totals := CalculateTotals(inv)
	assert.InDelta(t, 39.98, totals.Subtotal, 1e-9) // the malformed quantity contributes 0
	assert.InDelta(t, 39.98*0.21, totals.Tax, 1e-9)
}

func TestNewInvoiceNumber(t *testing.T) {
	assert.Equal(t, "FACT-001", NewInvoiceNumber(0))
	assert.Equal(t, "FACT-003", NewInvoiceNumber(2))
	assert.Equal(t, "FACT-100", NewInvoiceNumber(99))
	assert.Equal(t, "FACT-1000", NewInvoiceNumber(999))
}

func TestSanitizeCoercesNumbers(t *testing.T) {
	var inv domain.Invoice
	payload := `{
		"items": [{"description": "Design", "quantity": 2, "price": "19.99"}],
		"taxRate": "21",
		"date": "31/12/2024",
		"dueDate": "2025-01-31T00:00:00Z"
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &inv))

	clean := SanitizeWithFallback(inv, "2024-01-01")
	assert.Equal(t, 19.99, clean.Items[0].Price.Float())
	assert.Equal(t, 21.0, clean.TaxRate.Float())
	assert.Equal(t, "2024-12-31", clean.Date)
	assert.Equal(t, "2025-01-31", clean.DueDate)

	totals := CalculateTotals(clean)
	assert.InDelta(t, 39.98, totals.Subtotal, 1e-9)
}

func TestSanitizeIdempotent(t *testing.T) {
	inv := domain.Invoice{
		Date:    "05/06/2024",
		DueDate: "",
		Items:   []domain.InvoiceItem{{Quantity: 1.5, Price: 100}},
		TaxRate: 21,
	}

	once := SanitizeWithFallback(inv, "2024-06-01")
	twice := SanitizeWithFallback(once, "2024-06-01")
	assert.Equal(t, once, twice)
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	inv := domain.Invoice{
		Date:  "05/06/2024",
		Items: []domain.InvoiceItem{{Quantity: 1, Price: 10}},
	}
	SanitizeWithFallback(inv, "2024-06-01")
	assert.Equal(t, "05/06/2024", inv.Date)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		want     string
	}{
		{name: "blank uses fallback", value: "", fallback: "2024-06-01", want: "2024-06-01"},
		{name: "whitespace uses fallback", value: "  ", fallback: "2024-06-01", want: "2024-06-01"},
		{name: "display form rearranged", value: "31/12/2024", fallback: "", want: "2024-12-31"},
		{name: "iso passes through", value: "2024-12-31", fallback: "", want: "2024-12-31"},
		{name: "iso datetime truncated", value: "2024-12-31T10:30:00Z", fallback: "", want: "2024-12-31"},
		// truncation is shape-based only; an impossible calendar date
		// with an ISO-shaped prefix still truncates
		{name: "iso-shaped prefix truncated without validation", value: "2024-02-30T00:00:00", fallback: "", want: "2024-02-30"},
		// Unparseable non-empty input passes through unchanged: the
		// store keeps best-effort values rather than losing user input.
		{name: "free-form passes through", value: "next tuesday", fallback: "2024-06-01", want: "next tuesday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.value, tt.fallback))
		})
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	for _, value := range []string{"31/12/2024", "2024-12-31", "2024-02-30T00:00:00", "garbage value", ""} {
		once := NormalizeDate(value, "2024-06-01")
		assert.Equal(t, once, NormalizeDate(once, "2024-06-01"), "input %q", value)
	}
}

func TestNormalizeDateTime(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, "2024-12-31T18:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", NormalizeDateTime(ts, "2024-01-01"))
	assert.Equal(t, "2024-01-01", NormalizeDateTime(time.Time{}, "2024-01-01"))
}
