package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/01infinito/facturacion-api/internal/model"
	"github.com/01infinito/facturacion-api/internal/service"
)

// InvoiceHandler handles HTTP requests for invoice management and export
type InvoiceHandler struct {
	invoices service.InvoiceServicer
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoices service.InvoiceServicer) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *InvoiceHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/invoices", h.ListInvoices)
	router.GET("/v1/invoices/draft", h.NewDraft)
	router.GET("/v1/invoices/next-number", h.NextNumber)
	router.GET("/v1/invoices/:id", h.GetInvoice)
	router.GET("/v1/invoices/:id/pdf", h.ExportPDF)
	router.POST("/v1/invoices", h.CreateInvoice)
	router.PUT("/v1/invoices/:id", h.UpdateInvoice)
	router.DELETE("/v1/invoices/:id", h.DeleteInvoice)
}

// ListInvoices returns all invoice headers
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Success 200 {array} domain.Invoice
// @Router /v1/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoices.ListInvoices(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}
	respondOK(c, invoices)
}

// GetInvoice returns one invoice with its items
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} model.ErrorResponse
// @Router /v1/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	inv, err := h.invoices.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err, "")
		return
	}
	respondOK(c, inv)
}

// NewDraft returns a fresh unsaved invoice skeleton for the editor
// @Summary Build a new invoice draft
// @Tags invoices
// @Produce json
// @Success 200 {object} domain.Invoice
// @Router /v1/invoices/draft [get]
func (h *InvoiceHandler) NewDraft(c *gin.Context) {
	draft, err := h.invoices.NewDraft(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}
	respondOK(c, draft)
}

// NextNumber returns the next FACT-### invoice number
// @Summary Get the next invoice number
// @Tags invoices
// @Produce json
// @Success 200 {object} model.NextNumberResponse
// @Router /v1/invoices/next-number [get]
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	number, err := h.invoices.NextInvoiceNumber(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}
	respondOK(c, model.NextNumberResponse{InvoiceNumber: number})
}

// CreateInvoice saves a new invoice. The server normalizes the payload
// and recomputes subtotal/tax/total before persisting.
// @Summary Create an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body model.InvoicePayload true "Invoice data"
// @Success 201 {object} domain.Invoice
// @Failure 400 {object} model.ErrorResponse
// @Router /v1/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload model.InvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	created, err := h.invoices.CreateInvoice(c.Request.Context(), payload.ToDomain(""))
	if err != nil {
		respondRepositoryError(c, err, "Invoice conflicts with existing data")
		return
	}
	respondCreated(c, created)
}

// UpdateInvoice saves changes to an existing invoice and replaces its
// items
// @Summary Update an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body model.InvoicePayload true "Invoice data"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} model.ErrorResponse
// @Router /v1/invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	var payload model.InvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	updated, err := h.invoices.UpdateInvoice(c.Request.Context(), payload.ToDomain(id))
	if err != nil {
		respondRepositoryError(c, err, "Invoice conflicts with existing data")
		return
	}
	respondOK(c, updated)
}

// DeleteInvoice removes an invoice and all its items
// @Summary Delete an invoice
// @Tags invoices
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /v1/invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	if err := h.invoices.DeleteInvoice(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "")
		return
	}
	respondNoContent(c)
}

// ExportPDF renders an invoice as a downloadable PDF document
// @Summary Export an invoice as PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} model.ErrorResponse
// @Router /v1/invoices/{id}/pdf [get]
func (h *InvoiceHandler) ExportPDF(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	filename, data, err := h.invoices.ExportPDF(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("invoice_id", id).Msg("pdf export failed")
		respondRepositoryError(c, err, "")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(StatusOK, "application/pdf", data)
}
