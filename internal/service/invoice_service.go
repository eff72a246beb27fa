// Package service orchestrates the invoice workflows: every save runs
// the sanitize -> calculate -> persist pipeline so stored totals are
// never out of sync with the items that produced them.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/01infinito/facturacion-api/internal/domain"
	"github.com/01infinito/facturacion-api/internal/invoice"
	"github.com/01infinito/facturacion-api/internal/pdf"
	"github.com/01infinito/facturacion-api/internal/repository"
)

// DocumentRenderer renders a built document definition into PDF bytes
type DocumentRenderer interface {
	Render(doc pdf.Document) ([]byte, error)
}

// InvoiceServicer defines the invoice workflows exposed to handlers
type InvoiceServicer interface {
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// NewDraft builds an unsaved invoice skeleton the editor opens
	// with: temporary id, the next FACT-### number, today's date, a
	// due date 30 days out, the first customer preselected, one item
	// with quantity 1, the default tax rate and payment notes.
	NewDraft(ctx context.Context) (*domain.Invoice, error)

	// NextInvoiceNumber derives the next display number from the
	// current invoice count.
	NextInvoiceNumber(ctx context.Context) (string, error)

	// ExportPDF loads the invoice and its customer, builds the document
	// definition and renders it. Returns the suggested filename and the
	// PDF bytes.
	ExportPDF(ctx context.Context, invoiceID string) (string, []byte, error)
}

// Draft defaults: every new invoice opens with a 30-day payment
// window, the standard tax rate and the bank-details notes block.
const (
	draftDueDays      = 30
	draftTaxRate      = 21
	defaultDraftNotes = `Account details
01 INFINITO LLC
Bank Account Info - Wise US inc.
108 W 13th St, Wilmington, 19801, United States

Account Number: 219773714368
Routing Number: 101019628
Swift/BIC: TRWIUS35XXX`
)

// InvoiceService is the default InvoiceServicer implementation
type InvoiceService struct {
	invoices   repository.InvoiceRepository
	customers  repository.CustomerRepository
	renderer   DocumentRenderer
	issuer     pdf.Issuer
	draftNotes string
}

// NewInvoiceService creates the invoice workflow service
func NewInvoiceService(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	renderer DocumentRenderer,
) *InvoiceService {
	return &InvoiceService{
		invoices:   invoices,
		customers:  customers,
		renderer:   renderer,
		issuer:     pdf.DefaultIssuer(),
		draftNotes: defaultDraftNotes,
	}
}

// WithIssuer overrides the document's fixed company identity block
func (s *InvoiceService) WithIssuer(issuer pdf.Issuer) *InvoiceService {
	s.issuer = issuer
	return s
}

// WithDraftNotes overrides the notes block seeded into new drafts
func (s *InvoiceService) WithDraftNotes(notes string) *InvoiceService {
	s.draftNotes = notes
	return s
}

// ListInvoices returns all invoice headers
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoices.ListInvoices(ctx)
}

// GetInvoice returns one invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoices.GetInvoiceByID(ctx, invoiceID)
}

// CreateInvoice normalizes, recomputes totals and inserts the invoice.
// The repository assigns the final identifier; the client's temporary
// id is discarded.
func (s *InvoiceService) CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	normalized := s.prepare(inv)
	normalized.ID = ""
	return s.invoices.CreateInvoice(ctx, &normalized)
}

// UpdateInvoice normalizes, recomputes totals and updates the invoice
// and its items.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	normalized := s.prepare(inv)
	return s.invoices.UpdateInvoice(ctx, &normalized)
}

// DeleteInvoice removes the invoice and, transactionally, its items
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return s.invoices.DeleteInvoice(ctx, invoiceID)
}

// NewDraft builds a fresh editor draft. The invariant that an invoice
// always has at least one item in the editor starts here; the item is
// seeded with quantity 1 so a described line bills immediately.
func (s *InvoiceService) NewDraft(ctx context.Context) (*domain.Invoice, error) {
	number, err := s.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	var customerID *string
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if len(customers) > 0 {
		id := customers[0].ID
		customerID = &id
	}

	now := time.Now()
	return &domain.Invoice{
		ID:            "tmp-" + uuid.NewString(),
		InvoiceNumber: number,
		Date:          invoice.NormalizeDateTime(now, ""),
		DueDate:       invoice.NormalizeDateTime(now.AddDate(0, 0, draftDueDays), ""),
		CustomerID:    customerID,
		Items:         []domain.InvoiceItem{{ID: "tmp-" + uuid.NewString(), Quantity: 1}},
		Notes:         s.draftNotes,
		TaxRate:       draftTaxRate,
		Status:        domain.StatusDraft,
	}, nil
}

// NextInvoiceNumber returns the FACT-### number for the next invoice
func (s *InvoiceService) NextInvoiceNumber(ctx context.Context) (string, error) {
	count, err := s.invoices.CountInvoices(ctx)
	if err != nil {
		return "", err
	}
	return invoice.NewInvoiceNumber(count), nil
}

// ExportPDF produces the printable document for an invoice
func (s *InvoiceService) ExportPDF(ctx context.Context, invoiceID string) (string, []byte, error) {
	inv, err := s.invoices.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return "", nil, err
	}

	var customer *domain.Customer
	if inv.CustomerID != nil && *inv.CustomerID != "" {
		customer, err = s.customers.GetCustomerByID(ctx, *inv.CustomerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return "", nil, err
		}
		// a dangling reference renders the placeholder block, same as
		// an unassigned invoice
	}

	doc := pdf.BuildWithIssuer(invoice.Sanitize(*inv), customer, s.issuer)
	data, err := s.renderer.Render(doc)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render invoice %s: %w", invoiceID, err)
	}
	return doc.FileName, data, nil
}

// prepare runs the shared save pipeline: sanitize, recompute derived
// fields, mark as saved.
func (s *InvoiceService) prepare(inv domain.Invoice) domain.Invoice {
	normalized := invoice.Sanitize(inv)
	totals := invoice.CalculateTotals(normalized)
	normalized.Subtotal = totals.Subtotal
	normalized.Tax = totals.Tax
	normalized.Total = totals.Total
	normalized.Status = domain.StatusSaved
	return normalized
}
