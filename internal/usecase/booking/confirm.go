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

type ConfirmInput struct {
	BookingID  uint
	OperatorID *uint

	// Optional message appended to the operator notes and echoed in the
	// customer email.
	Message string

	// SkipNotification suppresses the customer email. Off by default so
	// the plain action still notifies.
	SkipNotification bool
}

// ======================================================
// USE CASE
// ======================================================

// ConfirmBooking is the operator action that approves a pending
// reservation. Inventory only moves here for flows where no payment
// already moved it: paid flows reserved the vehicle at settlement time.
type ConfirmBooking struct {
	store      Store
	mailer     notify.Mailer
	dispatcher AuditSink
	logger     *zap.Logger
}

func NewConfirmBooking(
	store Store,
	mailer notify.Mailer,
	dispatcher AuditSink,
	logger *zap.Logger,
) *ConfirmBooking {
	return &ConfirmBooking{
		store:      store,
		mailer:     mailer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConfirmBooking) Execute(ctx context.Context, in ConfirmInput) (*models.SalesBooking, error) {

	var booking *models.SalesBooking

	err := uc.store.Transaction(ctx, func(s Store) error {
		b, err := s.GetBookingForUpdate(ctx, in.BookingID)
		if err == ErrNotFound {
			return httperr.ErrBusiness("booking_not_found")
		}
		if err != nil {
			return err
		}

		if err := domain.CanConfirm(domain.Status(b.BookingStatus)); err != nil {
			return err
		}

		vehicle, err := s.GetVehicleForUpdate(ctx, b.VehicleID)
		if err != nil {
			return err
		}

		// Settlement already took the vehicle off the market on paid
		// flows. Only a still-open listing needs a transition here, and
		// a one-off vehicle is held only when a deposit secures it.
		if domain.Reservable(vehicle) {
			paid := domain.PaymentStatus(b.PaymentStatus).MoneyReceived()
			if vehicle.IsNewStock() || paid {
				domain.ApplyReservation(vehicle)
				if err := s.SaveVehicle(ctx, vehicle); err != nil {
					return err
				}
			}
		}

		b.BookingStatus = string(domain.StatusConfirmed)
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
		Action:   "confirm",
		Entity:   "sales_booking",
		EntityID: &booking.ID,
		Metadata: map[string]any{"reference": booking.Reference},
	})

	if !in.SkipNotification {
		uc.notifyCustomer(booking, in.Message)
	}

	return booking, nil
}

func (uc *ConfirmBooking) notifyCustomer(b *models.SalesBooking, message string) {
	if b.SalesProfile.Email == "" {
		return
	}

	ok := uc.mailer.Send(
		[]string{b.SalesProfile.Email},
		fmt.Sprintf("Your Booking is Confirmed - %s", b.Reference),
		"user_sales_booking_approved",
		map[string]any{
			"reference": b.Reference,
			"message":   message,
		},
		b,
		&b.SalesProfile,
	)
	if !ok {
		uc.logger.Warn("confirmation email not sent", zap.String("booking", b.Reference))
	}
}
