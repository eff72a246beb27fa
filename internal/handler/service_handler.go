package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/01infinito/facturacion-api/internal/domain"
	"github.com/01infinito/facturacion-api/internal/model"
	"github.com/01infinito/facturacion-api/internal/repository"
)

// ServiceHandler handles HTTP requests for the service/product catalog
type ServiceHandler struct {
	services repository.ServiceRepository
}

// NewServiceHandler creates a new catalog handler
func NewServiceHandler(services repository.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *ServiceHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/services", h.ListServices)
	router.GET("/v1/services/lookup", h.LookupService)
	router.POST("/v1/services", h.CreateService)
	router.PUT("/v1/services/:id", h.UpdateService)
	router.DELETE("/v1/services/:id", h.DeleteService)
}

// ListServices returns the whole catalog
// @Summary List catalog services and products
// @Tags services
// @Produce json
// @Success 200 {array} domain.Service
// @Router /v1/services [get]
func (h *ServiceHandler) ListServices(c *gin.Context) {
	services, err := h.services.ListServices(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}
	respondOK(c, services)
}

// LookupService resolves an exact-match description lookup used by the
// invoice editor to auto-fill item prices
// @Summary Look up a catalog entry by exact description
// @Tags services
// @Produce json
// @Param description query string true "Exact item description"
// @Success 200 {object} domain.Service
// @Failure 404 {object} model.ErrorResponse
// @Router /v1/services/lookup [get]
func (h *ServiceHandler) LookupService(c *gin.Context) {
	description := c.Query("description")
	if description == "" {
		respondBadRequest(c, "description query parameter is required")
		return
	}

	svc, err := h.services.FindServiceByDescription(c.Request.Context(), description)
	if err != nil {
		respondRepositoryError(c, err, "")
		return
	}
	respondOK(c, svc)
}

// CreateService adds a catalog entry
// @Summary Create a catalog entry
// @Tags services
// @Accept json
// @Produce json
// @Param service body model.ServicePayload true "Service data"
// @Success 201 {object} domain.Service
// @Failure 409 {object} model.ErrorResponse
// @Router /v1/services [post]
func (h *ServiceHandler) CreateService(c *gin.Context) {
	payload, ok := bindServicePayload(c)
	if !ok {
		return
	}

	svc := payload.ToDomain("")
	created, err := h.services.CreateService(c.Request.Context(), &svc)
	if err != nil {
		respondRepositoryError(c, err, "Service description already exists")
		return
	}
	respondCreated(c, created)
}

// UpdateService updates a catalog entry
// @Summary Update a catalog entry
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param service body model.ServicePayload true "Service data"
// @Success 200 {object} domain.Service
// @Failure 409 {object} model.ErrorResponse
// @Router /v1/services/{id} [put]
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	payload, ok := bindServicePayload(c)
	if !ok {
		return
	}

	svc := payload.ToDomain(id)
	updated, err := h.services.UpdateService(c.Request.Context(), &svc)
	if err != nil {
		respondRepositoryError(c, err, "Service description already exists")
		return
	}
	respondOK(c, updated)
}

// DeleteService removes a catalog entry
// @Summary Delete a catalog entry
// @Tags services
// @Param id path string true "Service ID"
// @Success 204
// @Router /v1/services/{id} [delete]
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	if err := h.services.DeleteService(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err, "")
		return
	}
	respondNoContent(c)
}

// bindServicePayload decodes and validates the request body, emitting
// the error response itself on failure.
func bindServicePayload(c *gin.Context) (model.ServicePayload, bool) {
	var payload model.ServicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return payload, false
	}
	if !domain.ValidCategory(payload.Category) {
		respondBadRequest(c, ErrInvalidInput, model.ErrorDetail{
			Field:   "category",
			Message: "must be 'service' or 'product'",
		})
		return payload, false
	}
	if payload.Price.Float() < 0 {
		respondBadRequest(c, ErrInvalidInput, model.ErrorDetail{
			Field:   "price",
			Message: "must be non-negative",
		})
		return payload, false
	}
	return payload, true
}
