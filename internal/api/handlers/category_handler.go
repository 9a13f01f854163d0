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

// CategoryHandler handles vehicle category HTTP requests
type CategoryHandler struct {
	service services.CategoryService
	tracer  tracing.Tracer
}

// NewCategoryHandler creates a new vehicle category handler
func NewCategoryHandler(service services.CategoryService, tracer tracing.Tracer) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		tracer:  tracer,
	}
}

// CategoryRequest represents an incoming vehicle category payload
type CategoryRequest struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name" binding:"required,max=100"`
	Description   string  `json:"description" binding:"omitempty,max=255"`
	BaseDailyRate float64 `json:"base_daily_rate" binding:"gte=0"`
}

// HandleList returns all vehicle categories
func (h *CategoryHandler) HandleList(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// HandleGet returns one vehicle category by ID
func (h *CategoryHandler) HandleGet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// HandleCreate creates a new vehicle category
func (h *CategoryHandler) HandleCreate(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-create-category")
	defer h.tracer.EndTransaction(txn)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Invalid category payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	category := &models.VehicleCategory{
		Name:          req.Name,
		Description:   req.Description,
		BaseDailyRate: req.BaseDailyRate,
	}

	if err := h.service.Create(c.Request.Context(), category); err != nil {
		respondError(c, err)
		h.tracer.RecordError(txn, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/vehicle-categories/%d", category.ID))
	c.JSON(http.StatusCreated, category)
}

// HandleReplace replaces a vehicle category by ID
func (h *CategoryHandler) HandleReplace(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-replace-category")
	defer h.tracer.EndTransaction(txn)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	category := &models.VehicleCategory{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		BaseDailyRate: req.BaseDailyRate,
	}

	if err := h.service.Replace(c.Request.Context(), id, category); err != nil {
		respondError(c, err)
		h.tracer.RecordError(txn, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleDelete deletes a vehicle category and its dependent records
func (h *CategoryHandler) HandleDelete(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-delete-category")
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
func (h *CategoryHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/vehicle-categories", h.HandleList)
	group.GET("/vehicle-categories/:id", h.HandleGet)
	group.POST("/vehicle-categories", h.HandleCreate)
	group.PUT("/vehicle-categories/:id", h.HandleReplace)
	group.DELETE("/vehicle-categories/:id", h.HandleDelete)
}
