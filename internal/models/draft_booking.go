package models

import "time"

// DraftBooking is the ephemeral, session-owned booking-in-progress.
// It is deleted the moment it is converted into a SalesBooking and must
// never outlive it.
type DraftBooking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Opaque token handed to the customer session.
	SessionToken string `gorm:"size:36;uniqueIndex;not null" json:"session_token"`

	VehicleID *uint    `json:"vehicle_id"`
	Vehicle   *Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle,omitempty"`

	SalesProfileID *uint         `json:"sales_profile_id"`
	SalesProfile   *SalesProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"sales_profile,omitempty"`

	AppointmentDate *time.Time `gorm:"type:date" json:"appointment_date"`
	AppointmentTime string     `gorm:"size:5" json:"appointment_time"` // "15:04", empty when none

	CustomerNotes  string `gorm:"type:text" json:"customer_notes"`
	RequestViewing bool   `json:"request_viewing"`

	DepositRequired bool `json:"deposit_required"`
	TermsAccepted   bool `json:"terms_accepted"`

	AmountPayable float64 `json:"amount_payable"`
	Currency      string  `gorm:"size:3;default:'AUD'" json:"currency"`

	// Full advertised price snapshotted at draft creation so the webhook
	// settles "paid vs deposit_paid" against what the customer saw, not
	// whatever the listing price drifted to afterwards.
	VehiclePrice float64 `json:"vehicle_price"`

	StripePaymentIntentID string `gorm:"size:100" json:"stripe_payment_intent_id"`

	Status string `gorm:"size:30;default:'pending_details'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
