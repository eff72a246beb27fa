package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/01infinito/facturacion-api/internal/model"
	"github.com/01infinito/facturacion-api/internal/repository"
)

// CustomerHandler handles HTTP requests for customer management
type CustomerHandler struct {
	customers repository.CustomerRepository
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customers repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *CustomerHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/customers", h.ListCustomers)
	router.POST("/v1/customers", h.CreateCustomer)
	router.PUT("/v1/customers/:id", h.UpdateCustomer)
	router.DELETE("/v1/customers/:id", h.DeleteCustomer)
}

// ListCustomers returns all customers
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} domain.Customer
// @Router /v1/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.ListCustomers(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}
	respondOK(c, customers)
}

// CreateCustomer creates a new customer
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body model.CustomerPayload true "Customer data"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} model.ErrorResponse
// @Router /v1/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var payload model.CustomerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	customer := payload.ToDomain("")
	created, err := h.customers.CreateCustomer(c.Request.Context(), &customer)
	if err != nil {
		respondRepositoryError(c, err, "Customer conflicts with existing data")
		return
	}
	respondCreated(c, created)
}

// UpdateCustomer updates an existing customer
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body model.CustomerPayload true "Customer data"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} model.ErrorResponse
// @Router /v1/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	var payload model.CustomerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	customer := payload.ToDomain(id)
	updated, err := h.customers.UpdateCustomer(c.Request.Context(), &customer)
	if err != nil {
		respondRepositoryError(c, err, "Customer conflicts with existing data")
		return
	}
	respondOK(c, updated)
}

// DeleteCustomer removes a customer without invoices
// @Summary Delete a customer
// @Description Fails with 409 when invoices still reference the customer
// @Tags customers
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 409 {object} model.ErrorResponse
// @Router /v1/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	if err := h.customers.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "Customer is referenced by existing invoices")
		return
	}
	respondNoContent(c)
}
