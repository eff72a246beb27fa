package repository

import (
	"context"

	"github.com/01infinito/facturacion-api/internal/domain"
)

// InvoiceRepository defines the interface for invoice data operations.
// Invoices own their items exclusively: items are written and deleted
// with their parent, inside one transaction.
type InvoiceRepository interface {
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// CountInvoices feeds the FACT-### number generator
	CountInvoices(ctx context.Context) (int, error)
}
