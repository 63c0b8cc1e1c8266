package booking

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/ridgelinemotors/moto-reservations/internal/domain/booking"
	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
	"github.com/ridgelinemotors/moto-reservations/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type ConvertInput struct {
	DraftID       uint
	PaymentStatus domain.PaymentStatus
	AmountPaid    float64
	IntentID      string

	// Target status; empty defaults to pending_confirmation.
	BookingStatus domain.Status

	// Shadow payment record to re-own, if the flow carried one.
	PaymentID *uint
}

// ======================================================
// USE CASE
// ======================================================

// ConvertDraft turns a DraftBooking into a SalesBooking exactly once.
// The draft is deleted in the same transaction that creates the booking,
// so a retried conversion finds the draft gone and short-circuits with
// the "already_converted" business code instead of duplicating.
type ConvertDraft struct {
	store  Store
	desk   notify.ServiceDesk
	logger *zap.Logger
}

func NewConvertDraft(store Store, desk notify.ServiceDesk, logger *zap.Logger) *ConvertDraft {
	return &ConvertDraft{
		store:  store,
		desk:   desk,
		logger: logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConvertDraft) Execute(
	ctx context.Context,
	in ConvertInput,
) (*models.SalesBooking, error) {

	var (
		booking  *models.SalesBooking
		settings *models.InventorySettings
	)

	err := uc.store.Transaction(ctx, func(s Store) error {
		b, cfg, err := uc.ExecuteIn(ctx, s, in)
		if err != nil {
			return err
		}
		booking, settings = b, cfg
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.PushServiceDesk(settings, booking)
	return booking, nil
}

// ExecuteIn runs the conversion inside an existing transaction. The
// webhook reconciler uses it so that the owner check, the conversion and
// the inventory transition share one vehicle lock. Callers are
// responsible for PushServiceDesk after the transaction commits.
func (uc *ConvertDraft) ExecuteIn(
	ctx context.Context,
	s Store,
	in ConvertInput,
) (*models.SalesBooking, *models.InventorySettings, error) {

	// 1. The draft's existence is the conversion guard.
	draft, err := s.GetDraftForUpdate(ctx, in.DraftID)
	if err == ErrNotFound {
		return nil, nil, httperr.ErrBusiness("already_converted")
	}
	if err != nil {
		return nil, nil, err
	}

	if draft.VehicleID == nil || draft.SalesProfileID == nil {
		return nil, nil, httperr.ErrBusiness("draft_incomplete")
	}

	// 2. Item lock for the duration of the transaction. A money-backed
	// conversion competes for the vehicle: when another draft converted
	// first, this one must lose here, under the same lock, not after
	// the booking exists.
	vehicle, err := s.GetVehicleForUpdate(ctx, *draft.VehicleID)
	if err != nil {
		return nil, nil, err
	}
	if in.PaymentStatus.MoneyReceived() && !domain.Reservable(vehicle) {
		return nil, nil, httperr.ErrBusiness("vehicle_not_available")
	}

	profile, err := s.GetProfile(ctx, *draft.SalesProfileID)
	if err != nil {
		return nil, nil, err
	}

	// 3. Terms are a hard requirement: a missing active version is a
	// configuration fault, never silently defaulted.
	terms, err := s.GetActiveTerms(ctx)
	if err == ErrNotFound {
		return nil, nil, httperr.ErrBusiness("no_active_terms")
	}
	if err != nil {
		return nil, nil, err
	}

	settings, err := s.GetSettings(ctx)
	if err != nil && err != ErrNotFound {
		return nil, nil, err
	}

	currency := draft.Currency
	if settings != nil && settings.CurrencyCode != "" {
		currency = settings.CurrencyCode
	}

	status := in.BookingStatus
	if status == "" {
		status = domain.StatusPendingConfirmation
	}

	booking := &models.SalesBooking{
		Reference:             NewReference(),
		VehicleID:             vehicle.ID,
		SalesProfileID:        profile.ID,
		AmountPaid:            in.AmountPaid,
		PaymentStatus:         string(in.PaymentStatus),
		Currency:              currency,
		StripePaymentIntentID: in.IntentID,
		RequestViewing:        draft.RequestViewing,
		AppointmentDate:       draft.AppointmentDate,
		AppointmentTime:       draft.AppointmentTime,
		BookingStatus:         string(status),
		CustomerNotes:         draft.CustomerNotes,
		SalesTermsID:          &terms.ID,
	}

	if err := s.CreateBooking(ctx, booking); err != nil {
		return nil, nil, err
	}

	// 4. Payment ownership moves draft -> booking atomically.
	if in.PaymentID != nil {
		p, err := s.GetPaymentForUpdate(ctx, *in.PaymentID)
		if err != nil {
			return nil, nil, err
		}
		p.TransferToBooking(booking.ID)
		p.Amount = in.AmountPaid
		p.Currency = currency
		p.Status = string(in.PaymentStatus)
		p.StripePaymentIntentID = in.IntentID
		if err := s.SavePayment(ctx, p); err != nil {
			return nil, nil, err
		}
	}

	// 5. The draft must never outlive its booking.
	if err := s.DeleteDraft(ctx, draft.ID); err != nil {
		return nil, nil, err
	}

	booking.Vehicle = *vehicle
	booking.SalesProfile = *profile
	return booking, settings, nil
}

// PushServiceDesk forwards the booking to the workshop desk when the
// settings ask for it. Failures are logged and swallowed; the booking is
// already committed.
func (uc *ConvertDraft) PushServiceDesk(settings *models.InventorySettings, b *models.SalesBooking) {
	if settings == nil || !settings.SendToServiceDesk || b == nil {
		return
	}
	if !uc.desk.Notify(b) {
		uc.logger.Warn("service desk notification not delivered",
			zap.String("booking", b.Reference))
	}
}

// NewReference mints a short unique human-shareable booking code.
func NewReference() string {
	u := uuid.New()
	return "SBK-" + strings.ToUpper(hex.EncodeToString(u[:4]))
}
