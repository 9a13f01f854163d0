package models

import "time"

// VehicleView is the denormalized read shape for a vehicle, with the
// names of its manufacturer and category inlined.
type VehicleView struct {
	ID               uint   `json:"id"`
	Model            string `json:"model"`
	Year             int    `json:"year"`
	Mileage          int    `json:"mileage"`
	LicensePlate     string `json:"license_plate"`
	Color            string `json:"color"`
	Available        bool   `json:"available"`
	ManufacturerID   uint   `json:"manufacturer_id"`
	ManufacturerName string `json:"manufacturer_name"`
	CategoryID       uint   `json:"category_id"`
	CategoryName     string `json:"category_name"`
}

// RentalView is the denormalized read shape for a rental, with the
// customer and vehicle details a listing screen needs inlined.
type RentalView struct {
	ID                 uint       `json:"id"`
	PickupDate         time.Time  `json:"pickup_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`
	StartingMileage    int        `json:"starting_mileage"`
	EndingMileage      *int       `json:"ending_mileage"`
	DailyRate          float64    `json:"daily_rate"`
	TotalCharge        *float64   `json:"total_charge"`
	Status             string     `json:"status"`
	CustomerID         uint       `json:"customer_id"`
	CustomerName       string     `json:"customer_name"`
	CustomerEmail      string     `json:"customer_email"`
	VehicleID          uint       `json:"vehicle_id"`
	VehicleModel       string     `json:"vehicle_model"`
	VehiclePlate       string     `json:"vehicle_plate"`
	ManufacturerName   string     `json:"manufacturer_name"`
}

// NewVehicleView projects a vehicle with preloaded associations into
// its read shape. Associations that were not loaded project as empty
// names rather than panicking.
func NewVehicleView(v *Vehicle) *VehicleView {
	view := &VehicleView{
		ID:             v.ID,
		Model:          v.Model,
		Year:           v.Year,
		Mileage:        v.Mileage,
		LicensePlate:   v.LicensePlate,
		Color:          v.Color,
		Available:      v.Available,
		ManufacturerID: v.ManufacturerID,
		CategoryID:     v.CategoryID,
	}
	if v.Manufacturer != nil {
		view.ManufacturerName = v.Manufacturer.Name
	}
	if v.Category != nil {
		view.CategoryName = v.Category.Name
	}
	return view
}

// NewRentalView projects a rental with preloaded customer and vehicle
// (and the vehicle's manufacturer) into its read shape.
func NewRentalView(r *Rental) *RentalView {
	view := &RentalView{
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
	if r.Customer != nil {
		view.CustomerName = r.Customer.Name
		view.CustomerEmail = r.Customer.Email
	}
	if r.Vehicle != nil {
		view.VehicleModel = r.Vehicle.Model
		view.VehiclePlate = r.Vehicle.LicensePlate
		if r.Vehicle.Manufacturer != nil {
			view.ManufacturerName = r.Vehicle.Manufacturer.Name
		}
	}
	return view
}

// NewVehicleViews projects a slice of vehicles.
func NewVehicleViews(vehicles []Vehicle) []*VehicleView {
	views := make([]*VehicleView, 0, len(vehicles))
	for i := range vehicles {
		views = append(views, NewVehicleView(&vehicles[i]))
	}
	return views
}

// NewRentalViews projects a slice of rentals.
func NewRentalViews(rentals []Rental) []*RentalView {
	views := make([]*RentalView, 0, len(rentals))
	for i := range rentals {
		views = append(views, NewRentalView(&rentals[i]))
	}
	return views
}
