package domain

import "time"

// Customer represents a billable customer
type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Email         string    `json:"email"`
	TaxID         string    `json:"taxId"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}
