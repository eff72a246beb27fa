package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/01infinito/facturacion-api/internal/database"
	"github.com/01infinito/facturacion-api/internal/domain"
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db *pgxpool.Pool
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db *pgxpool.Pool) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{db: db}
}

const invoiceColumns = `
	id, invoice_number, date, due_date, customer_id, notes,
	tax_rate, subtotal, tax, total, status, created_at, updated_at`

// ListInvoices returns all invoice headers, newest first, without items
func (r *PostgresInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}
	return invoices, nil
}

// GetInvoiceByID retrieves an invoice with its items
func (r *PostgresInvoiceRepository) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1
	`, invoiceID)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

// CreateInvoice inserts the invoice header and its items in one
// transaction. The database assigns the final identifiers; any
// client-side temporary ids are discarded.
func (r *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	err := database.ExecuteTransaction(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO invoices (invoice_number, date, due_date, customer_id, notes, tax_rate, subtotal, tax, total, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at
		`, inv.InvoiceNumber, inv.Date, inv.DueDate, inv.CustomerID, inv.Notes,
			inv.TaxRate.Float(), inv.Subtotal, inv.Tax, inv.Total, inv.Status).Scan(
			&inv.ID, &inv.CreatedAt, &inv.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert invoice: %w", conflictError(err))
		}
		return insertItems(ctx, tx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateInvoice updates the header and replaces all items in one
// transaction.
func (r *PostgresInvoiceRepository) UpdateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	err := database.ExecuteTransaction(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE invoices
			SET invoice_number = $1, date = $2, due_date = $3, customer_id = $4, notes = $5,
			    tax_rate = $6, subtotal = $7, tax = $8, total = $9, status = $10, updated_at = NOW()
			WHERE id = $11
			RETURNING created_at, updated_at
		`, inv.InvoiceNumber, inv.Date, inv.DueDate, inv.CustomerID, inv.Notes,
			inv.TaxRate.Float(), inv.Subtotal, inv.Tax, inv.Total, inv.Status, inv.ID).Scan(
			&inv.CreatedAt, &inv.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to update invoice: %w", conflictError(err))
		}

		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return fmt.Errorf("failed to delete invoice items: %w", err)
		}
		return insertItems(ctx, tx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// DeleteInvoice removes an invoice; its items go with it via the
// ON DELETE CASCADE constraint.
func (r *PostgresInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountInvoices returns the number of stored invoices
func (r *PostgresInvoiceRepository) CountInvoices(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

func (r *PostgresInvoiceRepository) loadItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, description, quantity, price
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	items := []domain.InvoiceItem{}
	for rows.Next() {
		var item domain.InvoiceItem
		var quantity, price float64
		if err := rows.Scan(&item.ID, &item.Description, &quantity, &price); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		item.Quantity = domain.Number(quantity)
		item.Price = domain.Number(price)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice items: %w", err)
	}
	return items, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, inv *domain.Invoice) error {
	for i := range inv.Items {
		item := &inv.Items[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO invoice_items (invoice_id, description, quantity, price, position)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, inv.ID, item.Description, item.Quantity.Float(), item.Price.Float(), i).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}
	return nil
}

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	var taxRate float64
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.Date, &inv.DueDate, &inv.CustomerID, &inv.Notes,
		&taxRate, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inv, err
		}
		return inv, fmt.Errorf("failed to scan invoice: %w", err)
	}
	inv.TaxRate = domain.Number(taxRate)
	return inv, nil
}
