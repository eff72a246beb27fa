package pdf

import (
	"strconv"
	"strings"

	"github.com/01infinito/facturacion-api/internal/domain"
	"github.com/01infinito/facturacion-api/internal/format"
	"github.com/01infinito/facturacion-api/internal/invoice"
)

// minVisibleRows is the minimum number of visual rows in the
// line-items table; shorter invoices are padded with filler rows.
const minVisibleRows = 6

// defaultContactPerson signs the document when the customer has no
// contact person of its own.
const defaultContactPerson = "SEBASTIAN CECCONI"

// Issuer is the fixed company identity printed on every invoice. The
// values are document constants, not derived from any entity; override
// them through BuildWithIssuer when the defaults don't apply.
type Issuer struct {
	Lines         []string
	ContactPerson string
	ContactLines  []PartyLine
}

// DefaultIssuer returns the built-in company identity block
func DefaultIssuer() Issuer {
	return Issuer{
		Lines: []string{
			"Company Name: 01 INFINITO LLC",
			"407 LINCOLN RD SUITE 11K",
			"MIAMI BEACH, FL 33139",
			"Email Address: secceconi@01infinito.com",
			"Point of Contact",
		},
		ContactPerson: defaultContactPerson,
		ContactLines: []PartyLine{
			{Text: "For questions concerning this purchase order, please contact"},
			{Text: "Sebastian Cecconi, secceconi@01infinito.com", Bold: true},
			{Text: "www.01infinito.com", Bold: true},
		},
	}
}

// Build maps a normalized invoice and an optional customer into the
// declarative document description. It performs no I/O, does not
// mutate its inputs, and is total: a nil customer, empty items, or
// missing fields all render their documented placeholders.
func Build(inv domain.Invoice, customer *domain.Customer) Document {
	return BuildWithIssuer(inv, customer, DefaultIssuer())
}

// BuildWithIssuer is Build with an explicit issuer identity block
func BuildWithIssuer(inv domain.Invoice, customer *domain.Customer, issuer Issuer) Document {
	totals := invoice.CalculateTotals(inv)
	taxRate := inv.TaxRate.Float()

	number := inv.InvoiceNumber
	if number == "" {
		number = "N/A"
	}
	customerNumber := "001"
	if customer != nil && customer.TaxID != "" {
		customerNumber = customer.TaxID
	}

	return Document{
		Title:    "Factura-" + inv.InvoiceNumber,
		FileName: "Factura-" + inv.InvoiceNumber + ".pdf",
		Heading:  "INVOICE",
		Meta: []LabelValue{
			{Label: "DATE", Value: format.Date(inv.Date)},
			{Label: "INVOICE NO.", Value: number},
			{Label: "CUSTOMER NO.", Value: customerNumber},
		},
		Issuer: issuer.Lines,
		BillTo: PartyBlock{Title: "BILL TO:", Lines: customerLines(customer)},
		ShipTo: PartyBlock{Title: "SHIP TO:", Lines: customerLines(customer)},
		Shipping: []LabelValue{
			{Label: "P.O. NUMBER", Value: "-"},
			{Label: "SHIP DATE", Value: "-"},
			{Label: "SHIP VIA", Value: "-"},
			{Label: "PAYMENT TERMS", Value: "-"},
		},
		ItemColumns: []string{"ITEM NO.", "DESCRIPTION", "QTY", "UNIT PRICE", "TOTAL"},
		Items:       itemRows(inv.Items),
		NotesLabel:  "Remarks / Instructions:",
		Notes:       normalizeNotes(inv.Notes),
		Totals: []TotalsLine{
			{Label: "SUBTOTAL", Value: format.Currency(totals.Subtotal), Band: true},
			{Label: "TAX " + format.Percentage(taxRate) + "%", Value: format.Currency(totals.Tax)},
			{Label: "SHIPPING / HANDLING", Value: format.Currency(0)},
			{Label: "OTHER", Value: format.Currency(0), Tinted: true},
			{Label: "TOTAL", Value: format.Currency(totals.Total), Band: true, Emphasis: true},
		},
		Footer: Footer{
			Date:          format.Date(inv.Date),
			ContactPerson: contactPerson(customer, issuer),
			ContactLines:  issuer.ContactLines,
		},
	}
}

// customerLines builds the shared BILL TO / SHIP TO address block. A
// nil customer yields the placeholder company pair; otherwise the name
// renders bold, the free-text address splits on comma boundaries into
// at most two lines, and the tax identifier closes the block.
func customerLines(customer *domain.Customer) []PartyLine {
	if customer == nil {
		return []PartyLine{
			{Text: "Company Name: 01infinito LLC placeholder", Bold: true},
			{Text: "123 Main Street"},
		}
	}

	lines := []PartyLine{{Text: "Company Name: " + customer.Name, Bold: true}}

	if customer.Address != "" {
		var parts []string
		for _, segment := range strings.Split(customer.Address, ",") {
			if trimmed := strings.TrimSpace(segment); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, PartyLine{Text: parts[0]})
		}
		if len(parts) > 1 {
			lines = append(lines, PartyLine{Text: strings.Join(parts[1:], ", ")})
		}
	}

	lines = append(lines, PartyLine{Text: "Tax ID / EIN: " + customer.TaxID, Bold: true})
	return lines
}

// itemRows renders one row per item plus enough filler rows to keep
// the table at its minimum visual height. Rows alternate a light tint
// starting on the second row, and the filler continues the pattern.
func itemRows(items []domain.InvoiceItem) []ItemRow {
	rows := make([]ItemRow, 0, max(len(items), minVisibleRows))
	for i, item := range items {
		rows = append(rows, ItemRow{
			Index:       strconv.Itoa(i + 1),
			Description: item.Description,
			Quantity:    format.Quantity(item.Quantity.Float()),
			UnitPrice:   format.Currency(item.Price.Float()),
			LineTotal:   format.Currency(item.LineTotal()),
			Tinted:      i%2 == 1,
		})
	}
	for i := len(items); i < minVisibleRows; i++ {
		rows = append(rows, ItemRow{Tinted: i%2 == 1, Filler: true})
	}
	return rows
}

// normalizeNotes collapses CRLF and bare CR line endings to LF so the
// notes block renders consistently as a multi-line paragraph.
func normalizeNotes(notes string) string {
	notes = strings.ReplaceAll(notes, "\r\n", "\n")
	return strings.ReplaceAll(notes, "\r", "\n")
}

func contactPerson(customer *domain.Customer, issuer Issuer) string {
	if customer != nil && strings.TrimSpace(customer.ContactPerson) != "" {
		return customer.ContactPerson
	}
	if issuer.ContactPerson != "" {
		return issuer.ContactPerson
	}
	return defaultContactPerson
}
