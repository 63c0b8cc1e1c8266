package models

import (
	"errors"
	"time"
)

// InventorySettings is the singleton set of business rules governing
// reservations and sales appointments. Exactly one row may exist; writes
// go through the admin handler which enforces the guard and invalidates
// the cache.
type InventorySettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EnableReservationByDeposit bool `gorm:"default:true" json:"enable_reservation_by_deposit"`
	EnableDepositlessEnquiry   bool `gorm:"default:true" json:"enable_depositless_enquiry"`
	EnableViewingForEnquiry    bool `gorm:"default:true" json:"enable_viewing_for_enquiry"`

	RequireAddressInfo    bool `gorm:"default:false" json:"require_address_info"`
	RequireDriversLicense bool `gorm:"default:false" json:"require_drivers_license"`

	DepositAmount       float64 `gorm:"default:100" json:"deposit_amount"`
	DepositLifespanDays int     `gorm:"default:5" json:"deposit_lifespan_days"`

	// Comma-separated open weekdays, e.g. "Mon,Tue,Wed,Thu,Fri,Sat".
	OpenDays               string `gorm:"size:255;default:'Mon,Tue,Wed,Thu,Fri,Sat'" json:"open_days"`
	AppointmentStartTime   string `gorm:"size:5;default:'09:00'" json:"appointment_start_time"`
	AppointmentEndTime     string `gorm:"size:5;default:'17:00'" json:"appointment_end_time"`
	AppointmentSpacingMins int    `gorm:"default:30" json:"appointment_spacing_mins"`

	MinAdvanceHours int `gorm:"default:24" json:"min_advance_hours"`
	MaxAdvanceDays  int `gorm:"default:90" json:"max_advance_days"`

	CurrencyCode string `gorm:"size:3;default:'AUD'" json:"currency_code"`

	SendToServiceDesk bool `gorm:"default:false" json:"send_to_service_desk"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate enforces the write-time invariants. Reads never re-validate.
func (s *InventorySettings) Validate() error {
	if s.DepositAmount < 0 {
		return errors.New("deposit amount cannot be negative")
	}
	if s.DepositLifespanDays < 0 {
		return errors.New("deposit lifespan days cannot be negative")
	}
	if s.AppointmentSpacingMins <= 0 {
		return errors.New("appointment spacing must be a positive number of minutes")
	}
	if s.MinAdvanceHours < 0 {
		return errors.New("minimum advance hours cannot be negative")
	}
	if s.MaxAdvanceDays < 0 {
		return errors.New("maximum advance days cannot be negative")
	}
	start, err := time.Parse("15:04", s.AppointmentStartTime)
	if err != nil {
		return errors.New("appointment start time must be HH:MM")
	}
	end, err := time.Parse("15:04", s.AppointmentEndTime)
	if err != nil {
		return errors.New("appointment end time must be HH:MM")
	}
	if !start.Before(end) {
		return errors.New("appointment start time must be earlier than end time")
	}
	return nil
}
