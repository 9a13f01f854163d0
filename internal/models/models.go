package models

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Manufacturer represents a vehicle manufacturer
type Manufacturer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Country   string    `gorm:"size:100" json:"country"`
	Vehicles  []Vehicle `gorm:"foreignKey:ManufacturerID" json:"-"`
}

// VehicleCategory represents a rental category with its base pricing
type VehicleCategory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Description   string    `gorm:"size:255" json:"description"`
	BaseDailyRate float64   `gorm:"not null" json:"base_daily_rate"`
	Vehicles      []Vehicle `gorm:"foreignKey:CategoryID" json:"-"`
}

// Vehicle represents a vehicle in the rental fleet
type Vehicle struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	Model          string           `gorm:"size:100;not null" json:"model"`
	Year           int              `json:"year"`
	Mileage        int              `json:"mileage"`
	LicensePlate   string           `gorm:"size:10;not null" json:"license_plate"`
	Color          string           `gorm:"size:50" json:"color"`
	Available      bool             `gorm:"default:true" json:"available"`
	ManufacturerID uint             `gorm:"not null" json:"manufacturer_id"`
	Manufacturer   *Manufacturer    `gorm:"foreignKey:ManufacturerID" json:"-"`
	CategoryID     uint             `gorm:"not null" json:"category_id"`
	Category       *VehicleCategory `gorm:"foreignKey:CategoryID" json:"-"`
	Rentals        []Rental         `gorm:"foreignKey:VehicleID" json:"-"`
}

// Customer represents a rental customer
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	TaxID     string    `gorm:"size:11;not null" json:"tax_id"`
	Email     string    `gorm:"size:150;not null" json:"email"`
	Phone     string    `gorm:"size:15" json:"phone"`
	BirthDate time.Time `json:"birth_date"`
	Rentals   []Rental  `gorm:"foreignKey:CustomerID" json:"-"`
}

// Rental statuses used by convention. The column is free text and the
// store does not enforce membership in this set.
const (
	RentalStatusActive    = "Active"
	RentalStatusFinished  = "Finished"
	RentalStatusCancelled = "Cancelled"
)

// Rental represents a rental agreement for a vehicle. DailyRate is
// copied from the category at creation time and never re-derived.
// TotalCharge may be supplied by the caller or filled in by the
// service from the pricing rule.
type Rental struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	PickupDate         time.Time  `json:"pickup_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`
	StartingMileage    int        `json:"starting_mileage"`
	EndingMileage      *int       `json:"ending_mileage"`
	DailyRate          float64    `gorm:"not null" json:"daily_rate"`
	TotalCharge        *float64   `json:"total_charge"`
	Status             string     `gorm:"size:50" json:"status"`
	CustomerID         uint       `gorm:"not null" json:"customer_id"`
	Customer           *Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	VehicleID          uint       `gorm:"not null" json:"vehicle_id"`
	Vehicle            *Vehicle   `gorm:"foreignKey:VehicleID" json:"-"`
}

// Open returns true while the vehicle has not been returned.
func (r *Rental) Open() bool {
	return r.ActualReturnDate == nil
}

// SetupModels configures GORM models and runs migrations
func SetupModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Manufacturer{},
		&VehicleCategory{},
		&Customer{},
		&Vehicle{},
		&Rental{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run auto migrations")
	}

	return nil
}
