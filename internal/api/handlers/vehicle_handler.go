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

// VehicleHandler handles vehicle HTTP requests
type VehicleHandler struct {
	service services.VehicleService
	tracer  tracing.Tracer
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(service services.VehicleService, tracer tracing.Tracer) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		tracer:  tracer,
	}
}

// VehicleRequest represents an incoming vehicle payload. Available
// defaults to true when the caller leaves it out.
type VehicleRequest struct {
	ID             uint   `json:"id"`
	Model          string `json:"model" binding:"required,max=100"`
	Year           int    `json:"year"`
	Mileage        int    `json:"mileage"`
	LicensePlate   string `json:"license_plate" binding:"required,max=10"`
	Color          string `json:"color" binding:"omitempty,max=50"`
	Available      *bool  `json:"available"`
	ManufacturerID uint   `json:"manufacturer_id" binding:"required"`
	CategoryID     uint   `json:"category_id" binding:"required"`
}

func (r *VehicleRequest) toModel() *models.Vehicle {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return &models.Vehicle{
		ID:             r.ID,
		Model:          r.Model,
		Year:           r.Year,
		Mileage:        r.Mileage,
		LicensePlate:   r.LicensePlate,
		Color:          r.Color,
		Available:      available,
		ManufacturerID: r.ManufacturerID,
		CategoryID:     r.CategoryID,
	}
}

// HandleList returns all vehicles as denormalized projections
func (h *VehicleHandler) HandleList(c *gin.Context) {
	vehicles, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// HandleGet returns one vehicle projection by ID
func (h *VehicleHandler) HandleGet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	vehicle, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// HandleCreate creates a new vehicle
func (h *VehicleHandler) HandleCreate(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-create-vehicle")
	defer h.tracer.EndTransaction(txn)

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Invalid vehicle payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	vehicle := req.toModel()
	vehicle.ID = 0

	view, err := h.service.Create(c.Request.Context(), vehicle)
	if err != nil {
		respondError(c, err)
		h.tracer.RecordError(txn, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/vehicles/%d", view.ID))
	c.JSON(http.StatusCreated, view)
}

// HandleReplace replaces a vehicle by ID
func (h *VehicleHandler) HandleReplace(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-replace-vehicle")
	defer h.tracer.EndTransaction(txn)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req VehicleRequest
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

// HandleDelete deletes a vehicle and its rentals
func (h *VehicleHandler) HandleDelete(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-delete-vehicle")
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

// HandleListAvailableByCategory returns available vehicles in a category
func (h *VehicleHandler) HandleListAvailableByCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	vehicles, err := h.service.ListAvailableByCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// HandleListRentedByManufacturer returns vehicles of a manufacturer
// that appear in at least one rental
func (h *VehicleHandler) HandleListRentedByManufacturer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	vehicles, err := h.service.ListRentedByManufacturer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// RegisterRoutes registers the handler's routes
func (h *VehicleHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/vehicles", h.HandleList)
	group.GET("/vehicles/:id", h.HandleGet)
	group.POST("/vehicles", h.HandleCreate)
	group.PUT("/vehicles/:id", h.HandleReplace)
	group.DELETE("/vehicles/:id", h.HandleDelete)
	group.GET("/vehicles/available/category/:id", h.HandleListAvailableByCategory)
	group.GET("/vehicles/rented/manufacturer/:id", h.HandleListRentedByManufacturer)
}
