package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/ridgelinemotors/moto-reservations/internal/domain/booking"
	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
	"github.com/ridgelinemotors/moto-reservations/internal/notify"
)

// ErrOrphanPayment flags a succeeded payment with nothing to attach it
// to: money was received with no corresponding reservation. Raised, not
// swallowed, so operators see it.
var ErrOrphanPayment = errors.New("payment succeeded with no owning draft or booking")

// ErrVehicleConflict flags a succeeded payment whose draft lost the
// vehicle to an earlier conversion: the money needs a refund, not a
// booking. Redelivery cannot repair it.
var ErrVehicleConflict = errors.New("payment succeeded but the vehicle was already taken")

// IntentEvent is the slice of the provider's webhook payload this
// reconciler consumes.
type IntentEvent struct {
	ID             string `json:"id"`
	AmountReceived int64  `json:"amount_received"`
	Status         string `json:"status"`
	Currency       string `json:"currency"`
}

// ======================================================
// USE CASE
// ======================================================

// WebhookReconciler applies asynchronous payment notifications.
// Delivery is at-least-once; the payment shadow record's owner decides
// whether a success event already produced a booking.
type WebhookReconciler struct {
	store      Store
	converter  *ConvertDraft
	mailer     notify.Mailer
	logger     *zap.Logger
	adminEmail string
}

func NewWebhookReconciler(
	store Store,
	converter *ConvertDraft,
	mailer notify.Mailer,
	logger *zap.Logger,
	adminEmail string,
) *WebhookReconciler {
	return &WebhookReconciler{
		store:      store,
		converter:  converter,
		mailer:     mailer,
		logger:     logger,
		adminEmail: adminEmail,
	}
}

// ======================================================
// SUCCEEDED
// ======================================================

func (uc *WebhookReconciler) HandleSucceeded(ctx context.Context, ev IntentEvent) error {

	lookup, err := uc.store.GetPaymentByIntentID(ctx, ev.ID)
	if err == ErrNotFound {
		return fmt.Errorf("%w: intent %s", ErrOrphanPayment, ev.ID)
	}
	if err != nil {
		return err
	}

	var (
		booking  *models.SalesBooking
		settings *models.InventorySettings
	)

	err = uc.store.Transaction(ctx, func(s Store) error {

		p, err := s.GetPaymentForUpdate(ctx, lookup.ID)
		if err != nil {
			return err
		}

		owner, ownerID := p.Owner()
		switch owner {
		case models.OwnerBooking:
			// Duplicate delivery: the conversion already happened. Only
			// reconcile the mirrored status.
			if p.Status != ev.Status {
				p.Status = ev.Status
				return s.SavePayment(ctx, p)
			}
			return nil

		case models.OwnerNone:
			return fmt.Errorf("%w: payment %d (intent %s)", ErrOrphanPayment, p.ID, ev.ID)
		}

		draft, err := s.GetDraftForUpdate(ctx, ownerID)
		if err == ErrNotFound {
			return fmt.Errorf("%w: payment %d references missing draft %d", ErrOrphanPayment, p.ID, ownerID)
		}
		if err != nil {
			return err
		}

		amount := float64(ev.AmountReceived) / 100
		status := domain.SettlePaymentStatus(draft.DepositRequired, amount, draft.VehiclePrice)

		b, cfg, err := uc.converter.ExecuteIn(ctx, s, ConvertInput{
			DraftID:       draft.ID,
			PaymentStatus: status,
			AmountPaid:    amount,
			IntentID:      p.StripePaymentIntentID,
			PaymentID:     &p.ID,
		})
		if err != nil {
			if httperr.IsBusiness(err, "already_converted") {
				// Lost the race against another delivery of this event.
				return nil
			}
			if httperr.IsBusiness(err, "vehicle_not_available") {
				// A different draft converted first and took the vehicle.
				return fmt.Errorf("%w: intent %s (draft %d)", ErrVehicleConflict, ev.ID, draft.ID)
			}
			return err
		}

		// Money moved: take the vehicle off the market under the lock
		// the converter already holds.
		if status.MoneyReceived() {
			domain.ApplyReservation(&b.Vehicle)
			if err := s.SaveVehicle(ctx, &b.Vehicle); err != nil {
				return err
			}
		}

		// Mirror the provider's final status onto the shadow record.
		p2, err := s.GetPaymentForUpdate(ctx, p.ID)
		if err != nil {
			return err
		}
		if p2.Status != ev.Status {
			p2.Status = ev.Status
			if err := s.SavePayment(ctx, p2); err != nil {
				return err
			}
		}

		booking, settings = b, cfg
		return nil
	})
	if err != nil {
		return err
	}

	if booking == nil {
		return nil
	}

	// Side effects below must not undo the booking: money has moved.
	uc.converter.PushServiceDesk(settings, booking)
	uc.sendConfirmationEmails(booking)

	return nil
}

// ======================================================
// FAILED / CANCELED
// ======================================================

// SyncStatus mirrors a non-success event onto the shadow record. An
// unknown intent is logged, not raised: failure events for intents this
// service abandoned are expected noise.
func (uc *WebhookReconciler) SyncStatus(ctx context.Context, ev IntentEvent) error {
	p, err := uc.store.GetPaymentByIntentID(ctx, ev.ID)
	if err == ErrNotFound {
		uc.logger.Info("status event for unknown intent", zap.String("intent", ev.ID))
		return nil
	}
	if err != nil {
		return err
	}

	if p.Status == ev.Status {
		return nil
	}
	p.Status = ev.Status
	return uc.store.SavePayment(ctx, p)
}

func (uc *WebhookReconciler) sendConfirmationEmails(b *models.SalesBooking) {
	emailCtx := map[string]any{
		"reference":            b.Reference,
		"payment_status":       b.PaymentStatus,
		"amount_paid":          b.AmountPaid,
		"currency":             b.Currency,
		"is_deposit_confirmed": b.PaymentStatus == string(domain.PaymentDepositPaid),
	}

	if b.SalesProfile.Email != "" {
		ok := uc.mailer.Send(
			[]string{b.SalesProfile.Email},
			fmt.Sprintf("Your Sales Booking Confirmation - %s", b.Reference),
			"user_sales_booking_confirmation",
			emailCtx,
			b,
			&b.SalesProfile,
		)
		if !ok {
			uc.logger.Warn("customer confirmation email not sent", zap.String("booking", b.Reference))
		}
	}

	if uc.adminEmail != "" {
		ok := uc.mailer.Send(
			[]string{uc.adminEmail},
			fmt.Sprintf("New Sales Booking (Online) - %s", b.Reference),
			"admin_sales_booking_confirmation",
			emailCtx,
			b,
			&b.SalesProfile,
		)
		if !ok {
			uc.logger.Warn("operator notification email not sent", zap.String("booking", b.Reference))
		}
	}
}
