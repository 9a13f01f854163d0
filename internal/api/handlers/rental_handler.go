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

const dateLayout = "2006-01-02"

// RentalHandler handles rental HTTP requests
type RentalHandler struct {
	service services.RentalService
	tracer  tracing.Tracer
}

// NewRentalHandler creates a new rental handler
func NewRentalHandler(service services.RentalService, tracer tracing.Tracer) *RentalHandler {
	return &RentalHandler{
		service: service,
		tracer:  tracer,
	}
}

// RentalRequest represents an incoming rental payload. TotalCharge is
// optional; the service derives it when absent.
type RentalRequest struct {
	ID                 uint       `json:"id"`
	PickupDate         time.Time  `json:"pickup_date" binding:"required"`
	ExpectedReturnDate time.Time  `json:"expected_return_date" binding:"required"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`
	StartingMileage    int        `json:"starting_mileage"`
	EndingMileage      *int       `json:"ending_mileage"`
	DailyRate          float64    `json:"daily_rate" binding:"gte=0"`
	TotalCharge        *float64   `json:"total_charge"`
	Status             string     `json:"status" binding:"omitempty,max=50"`
	CustomerID         uint       `json:"customer_id" binding:"required"`
	VehicleID          uint       `json:"vehicle_id" binding:"required"`
}

func (r *RentalRequest) toModel() *models.Rental {
	return &models.Rental{
		ID:                 r.ID,
		PickupDate:         r.PickupDate,
		ExpectedReturnDate: r.ExpectedReturnDate,
		ActualReturnDate:   r.ActualReturnDate,
		StartingMileage:    r.StartingMileage,
		EndingMileage:      r.EndingMileage,
		DailyRate:          r.DailyRate,
		TotalCharge:        r.TotalCharge,
		Status:             r.Status,
		CustomerID:         r.CustomerID,
		VehicleID:          r.VehicleID,
	}
}

// HandleList returns all rentals as denormalized projections
func (h *RentalHandler) HandleList(c *gin.Context) {
	rentals, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rentals)
}

// HandleGet returns one rental projection by ID
func (h *RentalHandler) HandleGet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rental, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}

// HandleCreate creates a new rental
func (h *RentalHandler) HandleCreate(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-create-rental")
	defer h.tracer.EndTransaction(txn)

	var req RentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Invalid rental payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	h.tracer.AddAttribute(txn, "customer_id", req.CustomerID)
	h.tracer.AddAttribute(txn, "vehicle_id", req.VehicleID)

	rental := req.toModel()
	rental.ID = 0
	if rental.Status == "" {
		rental.Status = models.RentalStatusActive
	}

	view, err := h.service.Create(c.Request.Context(), rental)
	if err != nil {
		respondError(c, err)
		h.tracer.RecordError(txn, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/rentals/%d", view.ID))
	c.JSON(http.StatusCreated, view)
}

// HandleReplace replaces a rental by ID
func (h *RentalHandler) HandleReplace(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-replace-rental")
	defer h.tracer.EndTransaction(txn)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req RentalRequest
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

// HandleDelete deletes a rental
func (h *RentalHandler) HandleDelete(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-delete-rental")
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

// HandleListActiveByCustomer returns a customer's rentals that are
// still open
func (h *RentalHandler) HandleListActiveByCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rentals, err := h.service.ListActiveByCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rentals)
}

// HandleListByPickupRange returns rentals whose pickup date falls in
// the inclusive [start, end] range given as YYYY-MM-DD query params
func (h *RentalHandler) HandleListByPickupRange(c *gin.Context) {
	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
		return
	}

	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
		return
	}

	// End of day so the range stays inclusive of rentals picked up
	// during the final date.
	end = end.Add(24*time.Hour - time.Nanosecond)

	rentals, err := h.service.ListByPickupRange(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rentals)
}

// RegisterRoutes registers the handler's routes
func (h *RentalHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/rentals", h.HandleList)
	group.GET("/rentals/:id", h.HandleGet)
	group.POST("/rentals", h.HandleCreate)
	group.PUT("/rentals/:id", h.HandleReplace)
	group.DELETE("/rentals/:id", h.HandleDelete)
	group.GET("/rentals/active/customer/:id", h.HandleListActiveByCustomer)
	group.GET("/rentals/period", h.HandleListByPickupRange)
}
