package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01infinito/facturacion-api/internal/domain"
)

func sampleInvoice() domain.Invoice {
	customerID := "c-1"
	return domain.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "FACT-007",
		Date:          "2024-12-31",
		DueDate:       "2025-01-31",
		CustomerID:    &customerID,
		Items: []domain.InvoiceItem{
			{Description: "Consulting", Quantity: 2, Price: 10},
			{Description: "Hosting", Quantity: 1, Price: 5},
		},
		Notes:   "First line\r\nSecond line\rThird line",
		TaxRate: 21,
	}
}

func sampleCustomer() *domain.Customer {
	return &domain.Customer{
		ID:      "c-1",
		Name:    "ACME Corp",
		Address: "742 Evergreen Terrace, Springfield, IL 62704",
		TaxID:   "99-1234567",
	}
}

func TestBuildHeader(t *testing.T) {
	doc := Build(sampleInvoice(), sampleCustomer())

	assert.Equal(t, "Factura-FACT-007", doc.Title)
	assert.Equal(t, "Factura-FACT-007.pdf", doc.FileName)
	assert.Equal(t, "INVOICE", doc.Heading)

	require.Len(t, doc.Meta, 3)
	assert.Equal(t, LabelValue{Label: "DATE", Value: "31/12/2024"}, doc.Meta[0])
	assert.Equal(t, LabelValue{Label: "INVOICE NO.", Value: "FACT-007"}, doc.Meta[1])
	assert.Equal(t, LabelValue{Label: "CUSTOMER NO.", Value: "99-1234567"}, doc.Meta[2])
}

func TestBuildHeaderFallbacks(t *testing.T) {
	inv := sampleInvoice()
	inv.InvoiceNumber = ""

	doc := Build(inv, &domain.Customer{Name: "No Tax ID"})
	assert.Equal(t, "N/A", doc.Meta[1].Value)
	assert.Equal(t, "001", doc.Meta[2].Value)

	doc = Build(inv, nil)
	assert.Equal(t, "001", doc.Meta[2].Value)
}

func TestBuildCustomerBlocks(t *testing.T) {
	doc := Build(sampleInvoice(), sampleCustomer())

	// the same splitting routine feeds both blocks
	assert.Equal(t, doc.BillTo.Lines, doc.ShipTo.Lines)
	assert.Equal(t, "BILL TO:", doc.BillTo.Title)
	assert.Equal(t, "SHIP TO:", doc.ShipTo.Title)

	lines := doc.BillTo.Lines
	require.Len(t, lines, 4)
	assert.Equal(t, PartyLine{Text: "Company Name: ACME Corp", Bold: true}, lines[0])
	assert.Equal(t, "742 Evergreen Terrace", lines[1].Text)
	assert.Equal(t, "Springfield, IL 62704", lines[2].Text)
	assert.Equal(t, PartyLine{Text: "Tax ID / EIN: 99-1234567", Bold: true}, lines[3])
}

func TestBuildNilCustomerPlaceholders(t *testing.T) {
	doc := Build(sampleInvoice(), nil)

	require.Len(t, doc.BillTo.Lines, 2)
	assert.Equal(t, PartyLine{Text: "Company Name: 01infinito LLC placeholder", Bold: true}, doc.BillTo.Lines[0])
	assert.Equal(t, "123 Main Street", doc.BillTo.Lines[1].Text)
	assert.Equal(t, doc.BillTo.Lines, doc.ShipTo.Lines)
}

func TestBuildCustomerWithoutAddress(t *testing.T) {
	doc := Build(sampleInvoice(), &domain.Customer{Name: "Bare", TaxID: "X"})
	require.Len(t, doc.BillTo.Lines, 2)
	assert.Equal(t, "Company Name: Bare", doc.BillTo.Lines[0].Text)
	assert.Equal(t, "Tax ID / EIN: X", doc.BillTo.Lines[1].Text)
}

func TestBuildItemRows(t *testing.T) {
	doc := Build(sampleInvoice(), sampleCustomer())

	require.Len(t, doc.Items, 6) // 2 data rows + 4 filler

	first := doc.Items[0]
	assert.Equal(t, "1", first.Index)
	assert.Equal(t, "Consulting", first.Description)
	assert.Equal(t, "2", first.Quantity)
	assert.Equal(t, "10.00", first.UnitPrice)
	assert.Equal(t, "20.00", first.LineTotal)
	assert.False(t, first.Tinted)
	assert.False(t, first.Filler)

	second := doc.Items[1]
	assert.Equal(t, "2", second.Index)
	assert.True(t, second.Tinted)

	// the filler continues the alternating pattern from row 2 onward
	for i, row := range doc.Items[2:] {
		assert.True(t, row.Filler)
		assert.Equal(t, (i+2)%2 == 1, row.Tinted, "filler row %d", i)
	}
}

func TestBuildEmptyItemsStillFills(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil

	doc := Build(inv, nil)
	require.Len(t, doc.Items, 6)
	for i, row := range doc.Items {
		assert.True(t, row.Filler)
		assert.Equal(t, i%2 == 1, row.Tinted, "row %d", i)
	}
}

func TestBuildLongInvoiceHasNoFiller(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = make([]domain.InvoiceItem, 8)
	for i := range inv.Items {
		inv.Items[i] = domain.InvoiceItem{Description: "Item", Quantity: 1, Price: 1}
	}

	doc := Build(inv, nil)
	require.Len(t, doc.Items, 8)
	for _, row := range doc.Items {
		assert.False(t, row.Filler)
	}
}

func TestBuildNotesNormalized(t *testing.T) {
	doc := Build(sampleInvoice(), nil)
	assert.Equal(t, "First line\nSecond line\nThird line", doc.Notes)

	inv := sampleInvoice()
	inv.Notes = ""
	doc = Build(inv, nil)
	assert.Equal(t, "", doc.Notes)
	assert.NotEmpty(t, doc.NotesLabel) // the section stays visible as a blank area
}

func TestBuildTotals(t *testing.T) {
	doc := Build(sampleInvoice(), sampleCustomer())

	require.Len(t, doc.Totals, 5)
	assert.Equal(t, TotalsLine{Label: "SUBTOTAL", Value: "25.00", Band: true}, doc.Totals[0])
	assert.Equal(t, TotalsLine{Label: "TAX 21%", Value: "5.25"}, doc.Totals[1])
	assert.Equal(t, TotalsLine{Label: "SHIPPING / HANDLING", Value: "0.00"}, doc.Totals[2])
	assert.Equal(t, TotalsLine{Label: "OTHER", Value: "0.00", Tinted: true}, doc.Totals[3])
	assert.Equal(t, TotalsLine{Label: "TOTAL", Value: "30.25", Band: true, Emphasis: true}, doc.Totals[4])
}

func TestBuildShippingPlaceholders(t *testing.T) {
	doc := Build(sampleInvoice(), nil)
	require.NotEmpty(t, doc.Shipping)
	for _, lv := range doc.Shipping {
		assert.Equal(t, "-", lv.Value, "placeholder %s", lv.Label)
	}
}

func TestBuildFooter(t *testing.T) {
	doc := Build(sampleInvoice(), sampleCustomer())
	assert.Equal(t, "31/12/2024", doc.Footer.Date)
	assert.Equal(t, "SEBASTIAN CECCONI", doc.Footer.ContactPerson)

	customer := sampleCustomer()
	customer.ContactPerson = "Jane Roe"
	doc = Build(sampleInvoice(), customer)
	assert.Equal(t, "Jane Roe", doc.Footer.ContactPerson)

	customer.ContactPerson = "   "
	doc = Build(sampleInvoice(), customer)
	assert.Equal(t, "SEBASTIAN CECCONI", doc.Footer.ContactPerson)
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(sampleInvoice(), sampleCustomer())
	b := Build(sampleInvoice(), sampleCustomer())
	assert.Equal(t, a, b)
}

func TestBuildDoesNotMutateInputs(t *testing.T) {
	inv := sampleInvoice()
	customer := sampleCustomer()
	Build(inv, customer)

	assert.Equal(t, sampleInvoice(), inv)
	assert.Equal(t, sampleCustomer(), customer)
}

func TestBuildWithIssuerOverride(t *testing.T) {
	issuer := Issuer{
		Lines:         []string{"Company Name: Test Co"},
		ContactPerson: "TEST PERSON",
	}
	doc := BuildWithIssuer(sampleInvoice(), nil, issuer)
	assert.Equal(t, []string{"Company Name: Test Co"}, doc.Issuer)
	assert.Equal(t, "TEST PERSON", doc.Footer.ContactPerson)
}
