package repository

import (
	"context"

	"github.com/01infinito/facturacion-api/internal/domain"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)

	// DeleteCustomer returns ErrConflict when invoices still reference
	// the customer.
	DeleteCustomer(ctx context.Context, customerID string) error
}
