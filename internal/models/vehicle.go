package models

import "time"

// Vehicle sales status
const (
	VehicleStatusForSale     = "for_sale"
	VehicleStatusReserved    = "reserved"
	VehicleStatusSold        = "sold"
	VehicleStatusUnavailable = "unavailable"
)

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title string `gorm:"size:200;not null" json:"title"`
	Make  string `gorm:"size:100;not null" json:"make"`
	Model string `gorm:"size:100;not null" json:"model"`
	Year  int    `json:"year"`

	Price float64 `json:"price"`

	// Quantity of this model in stock. Only meaningful for multi-unit
	// "new" listings; unique used vehicles keep 1 and are governed by
	// status alone.
	Quantity int `gorm:"default:1" json:"quantity"`

	VinNumber   string `gorm:"size:50" json:"vin_number"`
	StockNumber string `gorm:"size:50;uniqueIndex" json:"stock_number"`

	// Legacy single-value condition, superseded by the Conditions tag set.
	Condition  string             `gorm:"size:20" json:"condition"`
	Conditions []VehicleCondition `gorm:"many2many:vehicle_condition_tags" json:"conditions"`

	Status      string `gorm:"size:20;default:'for_sale'" json:"status"`
	IsAvailable bool   `gorm:"default:true" json:"is_available"`

	OdometerKm  int    `json:"odometer_km"`
	EngineCc    int    `json:"engine_cc"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCondition prefers the tag set and falls back to the legacy field
// only when no tags are attached.
func (v *Vehicle) HasCondition(name string) bool {
	if len(v.Conditions) > 0 {
		for _, c := range v.Conditions {
			if c.Name == name {
				return true
			}
		}
		return false
	}
	return v.Condition == name
}

// IsNewStock reports whether the vehicle is fungible "new" stock where
// many units share one listing.
func (v *Vehicle) IsNewStock() bool {
	return v.HasCondition("new")
}

type VehicleCondition struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"size:50" json:"display_name"`
}
