package models

import "time"

// PaymentOwner identifies which record currently owns a Payment.
type PaymentOwner int

const (
	OwnerNone PaymentOwner = iota
	OwnerDraft
	OwnerBooking
)

// Payment is the local shadow of a remote payment intent. It has exactly
// one logical owner at any time: the draft before conversion, the booking
// after. The check constraint forbids both FKs being set.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DraftBookingID *uint         `gorm:"uniqueIndex;check:chk_payment_single_owner,draft_booking_id IS NULL OR sales_booking_id IS NULL" json:"draft_booking_id"`
	DraftBooking   *DraftBooking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	SalesBookingID *uint         `gorm:"uniqueIndex" json:"sales_booking_id"`
	SalesBooking   *SalesBooking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	StripePaymentIntentID string `gorm:"size:100;uniqueIndex" json:"stripe_payment_intent_id"`

	Amount   float64 `json:"amount"`
	Currency string  `gorm:"size:3;default:'AUD'" json:"currency"`

	// Mirrors the provider's intent status verbatim.
	Status string `gorm:"size:50;default:'requires_payment_method'" json:"status"`

	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owner returns the current owning side and its id.
func (p *Payment) Owner() (PaymentOwner, uint) {
	if p.SalesBookingID != nil {
		return OwnerBooking, *p.SalesBookingID
	}
	if p.DraftBookingID != nil {
		return OwnerDraft, *p.DraftBookingID
	}
	return OwnerNone, 0
}

// TransferToBooking re-points ownership from the draft to the booking.
// Must only be called inside the conversion transaction.
func (p *Payment) TransferToBooking(bookingID uint) {
	p.DraftBookingID = nil
	p.SalesBookingID = &bookingID
}
