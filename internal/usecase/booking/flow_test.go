package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ridgelinemotors/moto-reservations/internal/domain/booking"
	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

type mockSettings struct {
	cfg *models.InventorySettings
	err error
}

func (m *mockSettings) Settings(ctx context.Context) (*models.InventorySettings, error) {
	return m.cfg, m.err
}

func newFlow(store *mockStore, cfg *models.InventorySettings) *ReservationFlow {
	settings := &mockSettings{cfg: cfg}
	converter := NewConvertDraft(store, &mockDesk{}, testLogger())
	reconciler := NewReconcileIntent(store, &mockGateway{})
	availability := NewGetAvailability(store, settings)
	return NewReservationFlow(store, settings, reconciler, converter, availability)
}

func flowSettings() *models.InventorySettings {
	return &models.InventorySettings{
		EnableReservationByDeposit: true,
		EnableDepositlessEnquiry:   true,
		EnableViewingForEnquiry:    true,
		DepositAmount:              100,
		DepositLifespanDays:        5,
		OpenDays:                   "Mon,Tue,Wed,Thu,Fri,Sat",
		AppointmentStartTime:       "09:00",
		AppointmentEndTime:         "17:00",
		AppointmentSpacingMins:     30,
		MinAdvanceHours:            0,
		MaxAdvanceDays:             90,
		CurrencyCode:               "AUD",
	}
}

func TestStartDraftSnapshotsPriceAndDeposit(t *testing.T) {
	store := &mockStore{}

	store.GetVehicleForUpdateFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: id, Price: 12999, Condition: "used", Status: models.VehicleStatusForSale, IsAvailable: true, Quantity: 1}, nil
	}

	var saved *models.DraftBooking
	store.SaveDraftFn = func(ctx context.Context, d *models.DraftBooking) error {
		d.ID = 42
		saved = d
		return nil
	}

	flow := newFlow(store, flowSettings())

	draft, err := flow.StartDraft(context.Background(), StartDraftInput{VehicleID: 7, DepositFlow: true})
	require.NoError(t, err)

	assert.NotEmpty(t, draft.SessionToken)
	assert.Equal(t, 12999.0, draft.VehiclePrice)
	assert.Equal(t, 100.0, draft.AmountPayable)
	assert.Equal(t, "AUD", draft.Currency)
	assert.True(t, draft.DepositRequired)
	assert.Equal(t, saved, draft)
}

func TestStartDraftRejectsUnreservableVehicle(t *testing.T) {
	store := &mockStore{}
	store.GetVehicleForUpdateFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: id, Condition: "used", Status: models.VehicleStatusReserved, IsAvailable: false}, nil
	}

	flow := newFlow(store, flowSettings())

	_, err := flow.StartDraft(context.Background(), StartDraftInput{VehicleID: 7, DepositFlow: true})

	assert.True(t, httperr.IsBusiness(err, "vehicle_not_available"))
}

func TestStartDraftFlowGating(t *testing.T) {
	cfg := flowSettings()
	cfg.EnableReservationByDeposit = false
	cfg.EnableDepositlessEnquiry = false

	flow := newFlow(&mockStore{}, cfg)

	_, err := flow.StartDraft(context.Background(), StartDraftInput{VehicleID: 7, DepositFlow: true})
	assert.True(t, httperr.IsBusiness(err, "deposit_flow_disabled"))

	_, err = flow.StartDraft(context.Background(), StartDraftInput{VehicleID: 7, DepositFlow: false})
	assert.True(t, httperr.IsBusiness(err, "enquiry_flow_disabled"))
}

func TestUpdateDetailsRequiresTerms(t *testing.T) {
	store := &mockStore{}
	store.GetDraftByTokenFn = func(ctx context.Context, token string) (*models.DraftBooking, error) {
		return draftFixture(), nil
	}

	flow := newFlow(store, flowSettings())

	_, _, err := flow.UpdateDetails(context.Background(), "tok-42", DetailsInput{
		Name:  "Test Customer",
		Email: "customer@example.com",
	})

	assert.True(t, httperr.IsBusiness(err, "terms_not_accepted"))
}

func TestUpdateDetailsReturnsAppointmentViolations(t *testing.T) {
	store := &mockStore{}
	store.GetDraftByTokenFn = func(ctx context.Context, token string) (*models.DraftBooking, error) {
		return draftFixture(), nil
	}

	flow := newFlow(store, flowSettings())

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	draft, violations, err := flow.UpdateDetails(context.Background(), "tok-42", DetailsInput{
		Name:            "Test Customer",
		Email:           "customer@example.com",
		TermsAccepted:   true,
		AppointmentDate: &sunday,
		AppointmentTime: "10:00",
	})
	require.NoError(t, err)

	assert.Nil(t, draft)
	assert.NotEmpty(t, violations)
}

func TestUpdateDetailsSavesProfileAndDraft(t *testing.T) {
	store := &mockStore{}
	store.GetDraftByTokenFn = func(ctx context.Context, token string) (*models.DraftBooking, error) {
		d := draftFixture()
		d.SalesProfileID = nil
		return d, nil
	}

	var savedProfile *models.SalesProfile
	store.SaveProfileFn = func(ctx context.Context, p *models.SalesProfile) error {
		p.ID = 3
		savedProfile = p
		return nil
	}

	var savedDraft *models.DraftBooking
	store.SaveDraftFn = func(ctx context.Context, d *models.DraftBooking) error {
		savedDraft = d
		return nil
	}

	flow := newFlow(store, flowSettings())

	draft, violations, err := flow.UpdateDetails(context.Background(), "tok-42", DetailsInput{
		Name:          "Test Customer",
		Email:         "customer@example.com",
		Phone:         "0400000000",
		CustomerNotes: "Interested in a trade-in",
		TermsAccepted: true,
	})
	require.NoError(t, err)
	assert.Empty(t, violations)

	require.NotNil(t, savedProfile)
	assert.Equal(t, "Test Customer", savedProfile.Name)

	require.NotNil(t, savedDraft)
	require.NotNil(t, savedDraft.SalesProfileID)
	assert.Equal(t, uint(3), *savedDraft.SalesProfileID)
	assert.True(t, draft.TermsAccepted)
	assert.Equal(t, "Interested in a trade-in", draft.CustomerNotes)
}

func TestUpdateDetailsViewingGateOnEnquiryFlow(t *testing.T) {
	cfg := flowSettings()
	cfg.EnableViewingForEnquiry = false

	store := &mockStore{}
	store.GetDraftByTokenFn = func(ctx context.Context, token string) (*models.DraftBooking, error) {
		d := draftFixture()
		d.DepositRequired = false
		return d, nil
	}

	flow := newFlow(store, cfg)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, _, err := flow.UpdateDetails(context.Background(), "tok-42", DetailsInput{
		Name:            "Test Customer",
		Email:           "customer@example.com",
		TermsAccepted:   true,
		AppointmentDate: &day,
	})

	assert.True(t, httperr.IsBusiness(err, "viewing_not_offered"))
}

func TestSetupPaymentReturnsClientSecret(t *testing.T) {
	store := &mockStore{}
	store.GetDraftByTokenFn = func(ctx context.Context, token string) (*models.DraftBooking, error) {
		d := draftFixture()
		d.TermsAccepted = true
		return d, nil
	}
	store.GetVehicleFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: id, Make: "Kawasaki", Model: "Z650", Year: 2024}, nil
	}

	flow := newFlow(store, flowSettings())

	intent, draft, err := flow.SetupPayment(context.Background(), "tok-42")
	require.NoError(t, err)

	assert.Equal(t, "pi_new", intent.ID)
	assert.Equal(t, "pi_new_secret", intent.ClientSecret)
	assert.Equal(t, 100.0, draft.AmountPayable)
}

func TestSetupPaymentRejectsEnquiryFlow(t *testing.T) {
	store := &mockStore{}
	store.GetDraftByTokenFn = func(ctx context.Context, token string) (*models.DraftBooking, error) {
		d := draftFixture()
		d.DepositRequired = false
		return d, nil
	}

	flow := newFlow(store, flowSettings())

	_, _, err := flow.SetupPayment(context.Background(), "tok-42")

	assert.True(t, httperr.IsBusiness(err, "not_a_deposit_flow"))
}

func TestSubmitEnquiryConvertsAsEnquired(t *testing.T) {
	store := &mockStore{}
	store.GetDraftByTokenFn = func(ctx context.Context, token string) (*models.DraftBooking, error) {
		d := draftFixture()
		d.DepositRequired = false
		d.TermsAccepted = true
		return d, nil
	}
	store.GetDraftForUpdateFn = func(ctx context.Context, id uint) (*models.DraftBooking, error) {
		d := draftFixture()
		d.DepositRequired = false
		d.TermsAccepted = true
		return d, nil
	}
	store.GetVehicleForUpdateFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: id}, nil
	}

	flow := newFlow(store, flowSettings())

	b, err := flow.SubmitEnquiry(context.Background(), "tok-42")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusEnquired), b.BookingStatus)
	assert.Equal(t, string(domain.PaymentUnpaid), b.PaymentStatus)
	assert.Zero(t, b.AmountPaid)
}

func TestSubmitEnquiryRejectsDepositFlow(t *testing.T) {
	store := &mockStore{}
	store.GetDraftByTokenFn = func(ctx context.Context, token string) (*models.DraftBooking, error) {
		d := draftFixture()
		d.TermsAccepted = true
		return d, nil
	}

	flow := newFlow(store, flowSettings())

	_, err := flow.SubmitEnquiry(context.Background(), "tok-42")

	assert.True(t, httperr.IsBusiness(err, "deposit_flow_requires_payment"))
}

func TestConfirmationByIntent(t *testing.T) {
	store := &mockStore{}
	bookingID := uint(9)

	store.GetPaymentByIntentIDFn = func(ctx context.Context, intentID string) (*models.Payment, error) {
		if intentID == "pi_done" {
			return &models.Payment{ID: 5, SalesBookingID: &bookingID}, nil
		}
		if intentID == "pi_pending" {
			draftID := uint(42)
			return &models.Payment{ID: 6, DraftBookingID: &draftID}, nil
		}
		return nil, ErrNotFound
	}
	store.GetBookingFn = func(ctx context.Context, id uint) (*models.SalesBooking, error) {
		return &models.SalesBooking{ID: id, Reference: "SBK-AB12CD34"}, nil
	}

	flow := newFlow(store, flowSettings())

	b, err := flow.ConfirmationByIntent(context.Background(), "pi_done")
	require.NoError(t, err)
	assert.Equal(t, "SBK-AB12CD34", b.Reference)

	// Webhook has not converted the draft yet.
	_, err = flow.ConfirmationByIntent(context.Background(), "pi_pending")
	assert.True(t, httperr.IsBusiness(err, "booking_not_ready"))

	_, err = flow.ConfirmationByIntent(context.Background(), "pi_unknown")
	assert.True(t, httperr.IsBusiness(err, "payment_not_found"))
}
