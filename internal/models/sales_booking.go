package models

import "time"

type SalesBooking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Short human-shareable code, distinct from the numeric id.
	Reference string `gorm:"size:20;uniqueIndex" json:"reference"`

	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle"`

	SalesProfileID uint         `json:"sales_profile_id"`
	SalesProfile   SalesProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"sales_profile"`

	AmountPaid    float64 `json:"amount_paid"`
	PaymentStatus string  `gorm:"size:20;default:'unpaid'" json:"payment_status"`
	Currency      string  `gorm:"size:3;default:'AUD'" json:"currency"`

	StripePaymentIntentID string `gorm:"size:100" json:"stripe_payment_intent_id"`

	RequestViewing  bool       `json:"request_viewing"`
	AppointmentDate *time.Time `gorm:"type:date" json:"appointment_date"`
	AppointmentTime string     `gorm:"size:5" json:"appointment_time"`

	BookingStatus string `gorm:"size:30;default:'pending_confirmation'" json:"booking_status"`

	CustomerNotes string `gorm:"type:text" json:"customer_notes"`
	OperatorNotes string `gorm:"type:text" json:"operator_notes"`

	// Terms version the customer accepted, stamped at conversion.
	SalesTermsID *uint       `json:"sales_terms_id"`
	SalesTerms   *SalesTerms `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
