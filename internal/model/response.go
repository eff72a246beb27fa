package model

// ErrorDetail describes a single field-level problem
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error envelope for all endpoints
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// NextNumberResponse carries the next generated invoice number
type NextNumberResponse struct {
	InvoiceNumber string `json:"invoiceNumber"`
}
