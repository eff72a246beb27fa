// Package model holds the transport payloads of the HTTP API. The
// wire format is camelCase; the snake_case database columns are mapped
// at the repository boundary, never here and never in the core.
package model

import "github.com/01infinito/facturacion-api/internal/domain"

// CustomerPayload is the create/update request body for a customer
type CustomerPayload struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address"`
	Email         string `json:"email"`
	TaxID         string `json:"taxId"`
	ContactPerson string `json:"contactPerson"`
}

// ToDomain converts the payload into a domain customer
func (p CustomerPayload) ToDomain(id string) domain.Customer {
	return domain.Customer{
		ID:            id,
		Name:          p.Name,
		Address:       p.Address,
		Email:         p.Email,
		TaxID:         p.TaxID,
		ContactPerson: p.ContactPerson,
	}
}

// ServicePayload is the create/update request body for a catalog entry
type ServicePayload struct {
	Description string        `json:"description" binding:"required"`
	Price       domain.Number `json:"price"`
	Category    string        `json:"category" binding:"required"`
}

// ToDomain converts the payload into a domain service
func (p ServicePayload) ToDomain(id string) domain.Service {
	return domain.Service{
		ID:          id,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
	}
}

// InvoiceItemPayload is one line item in an invoice request. Quantity
// and price tolerate string-encoded numbers from form inputs.
type InvoiceItemPayload struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Quantity    domain.Number `json:"quantity"`
	Price       domain.Number `json:"price"`
}

// InvoicePayload is the create/update request body for an invoice.
// Subtotal, tax and total are intentionally absent: the server derives
// them on every save.
type InvoicePayload struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	Date          string               `json:"date"`
	DueDate       string               `json:"dueDate"`
	CustomerID    *string              `json:"customerId"`
	Items         []InvoiceItemPayload `json:"items"`
	Notes         string               `json:"notes"`
	TaxRate       domain.Number        `json:"taxRate"`
}

// ToDomain converts the payload into a domain invoice
func (p InvoicePayload) ToDomain(id string) domain.Invoice {
	items := make([]domain.InvoiceItem, len(p.Items))
	for i, item := range p.Items {
		items[i] = domain.InvoiceItem{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	return domain.Invoice{
		ID:            id,
		InvoiceNumber: p.InvoiceNumber,
		Date:          p.Date,
		DueDate:       p.DueDate,
		CustomerID:    p.CustomerID,
		Items:         items,
		Notes:         p.Notes,
		TaxRate:       p.TaxRate,
	}
}
