package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/01infinito/facturacion-api/internal/domain"
)

// PostgresCustomerRepository implements CustomerRepository using PostgreSQL
type PostgresCustomerRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCustomerRepository creates a new PostgreSQL customer repository
func NewPostgresCustomerRepository(db *pgxpool.Pool) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

// ListCustomers returns all customers ordered by name
func (r *PostgresCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, address, email, tax_id, contact_person, created_at, updated_at
		FROM customers
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.TaxID, &c.ContactPerson, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}
	return customers, nil
}

// GetCustomerByID retrieves a customer by its ID
func (r *PostgresCustomerRepository) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRow(ctx, `
		SELECT id, name, address, email, tax_id, contact_person, created_at, updated_at
		FROM customers
		WHERE id = $1
	`, customerID).Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.TaxID, &c.ContactPerson, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

// CreateCustomer saves a new customer
func (r *PostgresCustomerRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO customers (name, address, email, tax_id, contact_person)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, customer.Name, customer.Address, customer.Email, customer.TaxID, customer.ContactPerson).Scan(
		&customer.ID, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", conflictError(err))
	}
	return customer, nil
}

// UpdateCustomer updates an existing customer's mutable fields
func (r *PostgresCustomerRepository) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	err := r.db.QueryRow(ctx, `
		UPDATE customers
		SET name = $1, address = $2, email = $3, tax_id = $4, contact_person = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING created_at, updated_at
	`, customer.Name, customer.Address, customer.Email, customer.TaxID, customer.ContactPerson, customer.ID).Scan(
		&customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

// DeleteCustomer removes a customer. The invoices.customer_id foreign
// key is RESTRICT, so a referenced customer surfaces as ErrConflict.
func (r *PostgresCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		return conflictError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
