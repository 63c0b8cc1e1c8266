package models

import "time"

// Customer contact details collected during the reservation flow.
// No login required; a profile belongs to at most one draft or booking
// at a time logically.
type SalesProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	AddressLine1 string `gorm:"size:100" json:"address_line_1"`
	AddressLine2 string `gorm:"size:100" json:"address_line_2"`
	City         string `gorm:"size:50" json:"city"`
	State        string `gorm:"size:50" json:"state"`
	PostCode     string `gorm:"size:10" json:"post_code"`
	Country      string `gorm:"size:50" json:"country"`

	DriversLicenseNumber string     `gorm:"size:50" json:"drivers_license_number"`
	DriversLicenseExpiry *time.Time `gorm:"type:date" json:"drivers_license_expiry"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
