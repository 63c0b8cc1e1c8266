package booking

import "github.com/ridgelinemotors/moto-reservations/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPendingDetails      Status = "pending_details" // drafts only
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
	StatusDeclined            Status = "declined"
	StatusDeclinedRefunded    Status = "declined_refunded"
	StatusCancelled           Status = "cancelled"
	StatusCompleted           Status = "completed"
	StatusNoShow              Status = "no_show"
	StatusEnquired            Status = "enquired"
)

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentPaid        PaymentStatus = "paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

// MoneyReceived reports whether the status indicates money changed hands.
func (p PaymentStatus) MoneyReceived() bool {
	return p == PaymentDepositPaid || p == PaymentPaid
}

// ===============================
// Transition guards
// ===============================

// CanConfirm blocks re-confirming a terminal booking.
func CanConfirm(current Status) error {
	if current == StatusConfirmed || current == StatusCompleted {
		return httperr.ErrBusiness("already_confirmed")
	}
	return nil
}

// CanReject blocks rejecting a booking that is already closed out.
func CanReject(current Status) error {
	switch current {
	case StatusCancelled, StatusDeclined, StatusDeclinedRefunded:
		return httperr.ErrBusiness("already_declined")
	}
	return nil
}

// SettlePaymentStatus derives the booking payment status from a settled
// amount. The full price is the value snapshotted onto the draft at
// creation, so a later price edit on the listing cannot reclassify the
// payment.
func SettlePaymentStatus(depositRequired bool, amountReceived, fullPrice float64) PaymentStatus {
	if fullPrice > 0 && amountReceived >= fullPrice {
		return PaymentPaid
	}
	if depositRequired && amountReceived > 0 {
		return PaymentDepositPaid
	}
	return PaymentUnpaid
}
