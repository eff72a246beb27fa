package domain

import "time"

// Invoice statuses. The UI creates drafts client-side; the first
// successful save marks the invoice as saved.
const (
	StatusDraft = "Borrador"
	StatusSaved = "Guardada"
)

// InvoiceItem is one billable line owned by exactly one invoice
type InvoiceItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    Number `json:"quantity"`
	Price       Number `json:"price"`
}

// LineTotal returns quantity x unit price for this item
func (it InvoiceItem) LineTotal() float64 {
	return it.Quantity.Float() * it.Price.Float()
}

// Invoice represents an invoice with its line items. Date and DueDate
// are calendar-date strings normalized to YYYY-MM-DD before
// calculation or persistence. Subtotal, Tax and Total are derived and
// recomputed server-side on every save.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          string        `json:"date"`
	DueDate       string        `json:"dueDate"`
	CustomerID    *string       `json:"customerId"`
	Items         []InvoiceItem `json:"items"`
	Notes         string        `json:"notes"`
	TaxRate       Number        `json:"taxRate"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt,omitempty"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty"`
}

// Totals holds the derived monetary fields of an invoice
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
