// Package invoice implements the derived-state rules of an invoice:
// total calculation, field normalization, and invoice numbering. All
// functions are pure and total over their input domain; malformed
// numeric input contributes 0 instead of propagating an error.
package invoice

import (
	"fmt"

	"github.com/01infinito/facturacion-api/internal/domain"
)

// invoiceNumberPrefix is the fixed display prefix for generated
// invoice numbers.
const invoiceNumberPrefix = "FACT"

// CalculateTotals derives subtotal, tax and total from the invoice's
// items and tax rate:
//
//	subtotal = sum(quantity x price)
//	tax      = subtotal x taxRate/100
//	total    = subtotal + tax
//
// An empty item sequence yields 0/0/0.
func CalculateTotals(inv domain.Invoice) domain.Totals {
	var subtotal float64
	for _, item := range inv.Items {
		subtotal += item.Quantity.Float() * item.Price.Float()
	}
	tax := subtotal * (inv.TaxRate.Float() / 100)
	return domain.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// NewInvoiceNumber builds the display number for the next invoice
// given how many already exist: count=0 -> "FACT-001".
func NewInvoiceNumber(existingCount int) string {
	return fmt.Sprintf("%s-%03d", invoiceNumberPrefix, existingCount+1)
}
