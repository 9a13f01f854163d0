package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/services"
	"example.com/fleet/services/rental/internal/tracing"
)

// ManufacturerHandler handles manufacturer HTTP requests
type ManufacturerHandler struct {
	service services.ManufacturerService
	tracer  tracing.Tracer
}

// NewManufacturerHandler creates a new manufacturer handler
func NewManufacturerHandler(service services.ManufacturerService, tracer tracing.Tracer) *ManufacturerHandler {
	return &ManufacturerHandler{
		service: service,
		tracer:  tracer,
	}
}

// ManufacturerRequest represents an incoming manufacturer payload
type ManufacturerRequest struct {
	ID      uint   `json:"id"`
	Name    string `json:"name" binding:"required,max=100"`
	Country string `json:"country" binding:"omitempty,max=100"`
}

// HandleList returns all manufacturers
func (h *ManufacturerHandler) HandleList(c *gin.Context) {
	manufacturers, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, manufacturers)
}

// HandleGet returns one manufacturer by ID
func (h *ManufacturerHandler) HandleGet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	manufacturer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, manufacturer)
}

// HandleCreate creates a new manufacturer
func (h *ManufacturerHandler) HandleCreate(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-create-manufacturer")
	defer h.tracer.EndTransaction(txn)

	var req ManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Invalid manufacturer payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	manufacturer := &models.Manufacturer{
		Name:    req.Name,
		Country: req.Country,
	}

	if err := h.service.Create(c.Request.Context(), manufacturer); err != nil {
		respondError(c, err)
		h.tracer.RecordError(txn, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/manufacturers/%d", manufacturer.ID))
	c.JSON(http.StatusCreated, manufacturer)
}

// HandleReplace replaces a manufacturer by ID
func (h *ManufacturerHandler) HandleReplace(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-replace-manufacturer")
	defer h.tracer.EndTransaction(txn)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	manufacturer := &models.Manufacturer{
		ID:      req.ID,
		Name:    req.Name,
		Country: req.Country,
	}

	if err := h.service.Replace(c.Request.Context(), id, manufacturer); err != nil {
		respondError(c, err)
		h.tracer.RecordError(txn, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleDelete deletes a manufacturer and its dependent records
func (h *ManufacturerHandler) HandleDelete(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-delete-manufacturer")
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
func (h *ManufacturerHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/manufacturers", h.HandleList)
	group.GET("/manufacturers/:id", h.HandleGet)
	group.POST("/manufacturers", h.HandleCreate)
	group.PUT("/manufacturers/:id", h.HandleReplace)
	group.DELETE("/manufacturers/:id", h.HandleDelete)
}
