package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/services"
	"example.com/fleet/services/rental/internal/tracing"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	service services.CustomerService
	tracer  tracing.Tracer
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service services.CustomerService, tracer tracing.Tracer) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		tracer:  tracer,
	}
}

// CustomerRequest represents an incoming customer payload
type CustomerRequest struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name" binding:"required,max=200"`
	TaxID     string    `json:"tax_id" binding:"required,len=11"`
	Email     string    `json:"email" binding:"required,email,max=150"`
	Phone     string    `json:"phone" binding:"omitempty,max=15"`
	BirthDate time.Time `json:"birth_date"`
}

func (r *CustomerRequest) toModel() *models.Customer {
	return &models.Customer{
		ID:        r.ID,
		Name:      r.Name,
		TaxID:     r.TaxID,
		Email:     r.Email,
		Phone:     r.Phone,
		BirthDate: r.BirthDate,
	}
}

// HandleList returns all customers
func (h *CustomerHandler) HandleList(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// HandleGet returns one customer by ID
func (h *CustomerHandler) HandleGet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// HandleCreate creates a new customer
func (h *CustomerHandler) HandleCreate(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-create-customer")
	defer h.tracer.EndTransaction(txn)

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Invalid customer payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	customer := req.toModel()
	customer.ID = 0

	if err := h.service.Create(c.Request.Context(), customer); err != nil {
		respondError(c, err)
		h.tracer.RecordError(txn, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/customers/%d", customer.ID))
	c.JSON(http.StatusCreated, customer)
}

// HandleReplace replaces a customer by ID
func (h *CustomerHandler) HandleReplace(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-replace-customer")
	defer h.tracer.EndTransaction(txn)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	if err := h.service.Replace(c.Request.Context(), id, req.toModel()); err != nil {
		respondError(c, err)
		h.tracer.RecordError(txn, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleDelete deletes a customer and their rentals
func (h *CustomerHandler) HandleDelete(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-delete-customer")
	defer h.tracer.EndTransaction(txn)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		h.tracer.RecordError(txn, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the handler's routes
func (h *CustomerHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/customers", h.HandleList)
	group.GET("/customers/:id", h.HandleGet)
	group.POST("/customers", h.HandleCreate)
	group.PUT("/customers/:id", h.HandleReplace)
	group.DELETE("/customers/:id", h.HandleDelete)
}
