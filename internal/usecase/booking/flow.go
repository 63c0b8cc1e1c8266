package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/ridgelinemotors/moto-reservations/internal/domain/booking"
	payment "github.com/ridgelinemotors/moto-reservations/internal/domain/payment"
	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

// ======================================================
// INPUTS
// ======================================================

type StartDraftInput struct {
	VehicleID   uint
	DepositFlow bool
}

type DetailsInput struct {
	Name  string
	Email string
	Phone string

	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostCode     string
	Country      string

	DriversLicenseNumber string
	DriversLicenseExpiry *time.Time

	AppointmentDate *time.Time
	AppointmentTime string
	RequestViewing  bool
	CustomerNotes   string
	TermsAccepted   bool
}

// ======================================================
// USE CASE
// ======================================================

// ReservationFlow drives the multi-step customer journey: pick a
// vehicle, leave details and an appointment, then either pay a deposit
// or submit a depositless enquiry. Each step is keyed by the draft's
// opaque session token.
type ReservationFlow struct {
	store        Store
	settings     SettingsSource
	reconciler   *ReconcileIntent
	converter    *ConvertDraft
	availability *GetAvailability
}

func NewReservationFlow(
	store Store,
	settings SettingsSource,
	reconciler *ReconcileIntent,
	converter *ConvertDraft,
	availability *GetAvailability,
) *ReservationFlow {
	return &ReservationFlow{
		store:        store,
		settings:     settings,
		reconciler:   reconciler,
		converter:    converter,
		availability: availability,
	}
}

// ======================================================
// STEP 1: start a draft against a vehicle
// ======================================================

func (uc *ReservationFlow) StartDraft(ctx context.Context, in StartDraftInput) (*models.DraftBooking, error) {

	cfg, err := uc.settings.Settings(ctx)
	if err != nil {
		return nil, err
	}

	if cfg != nil {
		if in.DepositFlow && !cfg.EnableReservationByDeposit {
			return nil, httperr.ErrBusiness("deposit_flow_disabled")
		}
		if !in.DepositFlow && !cfg.EnableDepositlessEnquiry {
			return nil, httperr.ErrBusiness("enquiry_flow_disabled")
		}
	}

	var draft *models.DraftBooking

	err = uc.store.Transaction(ctx, func(s Store) error {
		vehicle, err := s.GetVehicleForUpdate(ctx, in.VehicleID)
		if err == ErrNotFound {
			return httperr.ErrBusiness("vehicle_not_found")
		}
		if err != nil {
			return err
		}

		if !domain.Reservable(vehicle) {
			return httperr.ErrBusiness("vehicle_not_available")
		}

		d := &models.DraftBooking{
			SessionToken:    uuid.NewString(),
			VehicleID:       &vehicle.ID,
			DepositRequired: in.DepositFlow,
			VehiclePrice:    vehicle.Price,
			Status:          string(domain.StatusPendingDetails),
		}
		if cfg != nil {
			d.Currency = cfg.CurrencyCode
			if in.DepositFlow {
				d.AmountPayable = cfg.DepositAmount
			}
		}

		if err := s.SaveDraft(ctx, d); err != nil {
			return err
		}

		d.Vehicle = vehicle
		draft = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// ======================================================
// STEP 2: customer details and appointment selection
// ======================================================

func (uc *ReservationFlow) UpdateDetails(ctx context.Context, token string, in DetailsInput) (*models.DraftBooking, []string, error) {

	draft, err := uc.store.GetDraftByToken(ctx, token)
	if err == ErrNotFound {
		return nil, nil, httperr.ErrBusiness("draft_not_found")
	}
	if err != nil {
		return nil, nil, err
	}

	if !in.TermsAccepted {
		return nil, nil, httperr.ErrBusiness("terms_not_accepted")
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, nil, httperr.ErrBusiness("missing_contact_details")
	}

	cfg, err := uc.settings.Settings(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Extra identity requirements only apply to the deposit flow, where
	// money changes hands.
	if cfg != nil && draft.DepositRequired {
		if cfg.RequireAddressInfo && strings.TrimSpace(in.AddressLine1) == "" {
			return nil, nil, httperr.ErrBusiness("missing_address_info")
		}
		if cfg.RequireDriversLicense && strings.TrimSpace(in.DriversLicenseNumber) == "" {
			return nil, nil, httperr.ErrBusiness("missing_drivers_license")
		}
	}

	wantsAppointment := in.AppointmentDate != nil
	if wantsAppointment && !draft.DepositRequired && cfg != nil && !cfg.EnableViewingForEnquiry {
		return nil, nil, httperr.ErrBusiness("viewing_not_offered")
	}

	if wantsAppointment {
		violations, err := uc.availability.ValidateSelection(
			ctx, *in.AppointmentDate, in.AppointmentTime, draft.DepositRequired)
		if err != nil {
			return nil, nil, err
		}
		if len(violations) > 0 {
			return nil, violations, nil
		}
	}

	profile := &models.SalesProfile{}
	if draft.SalesProfileID != nil {
		profile, err = uc.store.GetProfile(ctx, *draft.SalesProfileID)
		if err != nil {
			return nil, nil, err
		}
	}

	profile.Name = in.Name
	profile.Email = in.Email
	profile.Phone = in.Phone
	profile.AddressLine1 = in.AddressLine1
	profile.AddressLine2 = in.AddressLine2
	profile.City = in.City
	profile.State = in.State
	profile.PostCode = in.PostCode
	profile.Country = in.Country
	profile.DriversLicenseNumber = in.DriversLicenseNumber
	profile.DriversLicenseExpiry = in.DriversLicenseExpiry

	if err := uc.store.SaveProfile(ctx, profile); err != nil {
		return nil, nil, err
	}

	draft.SalesProfileID = &profile.ID
	draft.AppointmentDate = in.AppointmentDate
	draft.AppointmentTime = in.AppointmentTime
	draft.RequestViewing = in.RequestViewing
	draft.CustomerNotes = in.CustomerNotes
	draft.TermsAccepted = true

	if err := uc.store.SaveDraft(ctx, draft); err != nil {
		return nil, nil, err
	}

	draft.SalesProfile = profile
	return draft, nil, nil
}

// ======================================================
// STEP 3a: deposit flow, set up payment
// ======================================================

// SetupPayment reconciles the payment intent for the draft and returns
// it with the client secret the card form needs.
func (uc *ReservationFlow) SetupPayment(ctx context.Context, token string) (*payment.Intent, *models.DraftBooking, error) {

	draft, err := uc.store.GetDraftByToken(ctx, token)
	if err == ErrNotFound {
		return nil, nil, httperr.ErrBusiness("draft_not_found")
	}
	if err != nil {
		return nil, nil, err
	}

	if !draft.DepositRequired {
		return nil, nil, httperr.ErrBusiness("not_a_deposit_flow")
	}
	if draft.VehicleID == nil || draft.SalesProfileID == nil || !draft.TermsAccepted {
		return nil, nil, httperr.ErrBusiness("draft_incomplete")
	}

	vehicle, err := uc.store.GetVehicle(ctx, *draft.VehicleID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := uc.store.GetProfile(ctx, *draft.SalesProfileID)
	if err != nil {
		return nil, nil, err
	}

	amount := draft.AmountPayable
	currency := draft.Currency
	if cfg, err := uc.settings.Settings(ctx); err == nil && cfg != nil {
		amount = cfg.DepositAmount
		currency = cfg.CurrencyCode
	}

	intent, _, err := uc.reconciler.Execute(ctx, draft, vehicle, profile, amount, currency)
	if err != nil {
		return nil, nil, err
	}

	if draft.AmountPayable != amount || draft.Currency != currency {
		draft.AmountPayable = amount
		draft.Currency = currency
		if err := uc.store.SaveDraft(ctx, draft); err != nil {
			return nil, nil, err
		}
	}

	return intent, draft, nil
}

// ======================================================
// STEP 3b: depositless enquiry, convert immediately
// ======================================================

func (uc *ReservationFlow) SubmitEnquiry(ctx context.Context, token string) (*models.SalesBooking, error) {

	draft, err := uc.store.GetDraftByToken(ctx, token)
	if err == ErrNotFound {
		return nil, httperr.ErrBusiness("draft_not_found")
	}
	if err != nil {
		return nil, err
	}

	if draft.DepositRequired {
		return nil, httperr.ErrBusiness("deposit_flow_requires_payment")
	}
	if !draft.TermsAccepted {
		return nil, httperr.ErrBusiness("terms_not_accepted")
	}

	return uc.converter.Execute(ctx, ConvertInput{
		DraftID:       draft.ID,
		PaymentStatus: domain.PaymentUnpaid,
		AmountPaid:    0,
		BookingStatus: domain.StatusEnquired,
	})
}

// ======================================================
// LOOKUPS
// ======================================================

func (uc *ReservationFlow) DraftByToken(ctx context.Context, token string) (*models.DraftBooking, error) {
	draft, err := uc.store.GetDraftByToken(ctx, token)
	if err == ErrNotFound {
		return nil, httperr.ErrBusiness("draft_not_found")
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// ConfirmationByIntent resolves the booking created for a payment
// intent. The card form polls this after the provider reports success;
// ErrNotFound from the store means the webhook has not landed yet.
func (uc *ReservationFlow) ConfirmationByIntent(ctx context.Context, intentID string) (*models.SalesBooking, error) {

	p, err := uc.store.GetPaymentByIntentID(ctx, intentID)
	if err == ErrNotFound {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	if err != nil {
		return nil, err
	}

	owner, ownerID := p.Owner()
	if owner != models.OwnerBooking {
		return nil, httperr.ErrBusiness("booking_not_ready")
	}

	b, err := uc.store.GetBooking(ctx, ownerID)
	if err == ErrNotFound {
		return nil, httperr.ErrBusiness("booking_not_ready")
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
