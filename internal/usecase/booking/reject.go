package booking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ridgelinemotors/moto-reservations/internal/audit"
	domain "github.com/ridgelinemotors/moto-reservations/internal/domain/booking"
	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
	"github.com/ridgelinemotors/moto-reservations/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type RejectInput struct {
	BookingID  uint
	OperatorID *uint
	Message    string

	SkipNotification bool
}

// ======================================================
// USE CASE
// ======================================================

// RejectBooking is the operator action that declines a reservation and
// returns the held vehicle to the market. A booking that took money is
// marked for refund rather than plain declined, so the refund queue can
// pick it up.
type RejectBooking struct {
	store      Store
	mailer     notify.Mailer
	dispatcher AuditSink
	logger     *zap.Logger
}

func NewRejectBooking(
	store Store,
	mailer notify.Mailer,
	dispatcher AuditSink,
	logger *zap.Logger,
) *RejectBooking {
	return &RejectBooking{
		store:      store,
		mailer:     mailer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RejectBooking) Execute(ctx context.Context, in RejectInput) (*models.SalesBooking, error) {

	var booking *models.SalesBooking

	err := uc.store.Transaction(ctx, func(s Store) error {
		b, err := s.GetBookingForUpdate(ctx, in.BookingID)
		if err == ErrNotFound {
			return httperr.ErrBusiness("booking_not_found")
		}
		if err != nil {
			return err
		}

		if err := domain.CanReject(domain.Status(b.BookingStatus)); err != nil {
			return err
		}

		vehicle, err := s.GetVehicleForUpdate(ctx, b.VehicleID)
		if err != nil {
			return err
		}

		domain.ReleaseReservation(vehicle)
		if err := s.SaveVehicle(ctx, vehicle); err != nil {
			return err
		}

		if domain.PaymentStatus(b.PaymentStatus).MoneyReceived() {
			b.BookingStatus = string(domain.StatusDeclinedRefunded)
		} else {
			b.BookingStatus = string(domain.StatusDeclined)
		}
		if msg := strings.TrimSpace(in.Message); msg != "" {
			if b.OperatorNotes != "" {
				b.OperatorNotes += "\n"
			}
			b.OperatorNotes += msg
		}

		if err := s.SaveBooking(ctx, b); err != nil {
			return err
		}

		b.Vehicle = *vehicle
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(audit.Event{
		UserID:   in.OperatorID,
		Action:   "reject",
		Entity:   "sales_booking",
		EntityID: &booking.ID,
		Metadata: map[string]any{
			"reference":      booking.Reference,
			"refund_pending": booking.BookingStatus == string(domain.StatusDeclinedRefunded),
		},
	})

	if !in.SkipNotification {
		uc.notifyCustomer(booking, in.Message)
	}

	return booking, nil
}

func (uc *RejectBooking) notifyCustomer(b *models.SalesBooking, message string) {
	if b.SalesProfile.Email == "" {
		return
	}

	ok := uc.mailer.Send(
		[]string{b.SalesProfile.Email},
		fmt.Sprintf("Update on Your Booking - %s", b.Reference),
		"user_sales_booking_rejected",
		map[string]any{
			"reference":      b.Reference,
			"message":        message,
			"refund_pending": b.BookingStatus == string(domain.StatusDeclinedRefunded),
		},
		b,
		&b.SalesProfile,
	)
	if !ok {
		uc.logger.Warn("rejection email not sent", zap.String("booking", b.Reference))
	}
}
