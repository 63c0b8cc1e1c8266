package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ridgelinemotors/moto-reservations/internal/audit"
	payment "github.com/ridgelinemotors/moto-reservations/internal/domain/payment"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
	"github.com/ridgelinemotors/moto-reservations/internal/notify"
)

// mockStore implements Store with overridable function fields. Calls
// without an override fall back to a harmless default so each test only
// wires what it asserts on.
type mockStore struct {
	TransactionFn func(ctx context.Context, fn func(Store) error) error

	GetSettingsFn      func(ctx context.Context) (*models.InventorySettings, error)
	ListBlockedDatesFn func(ctx context.Context, from, to time.Time) ([]models.BlockedSalesDate, error)
	GetActiveTermsFn   func(ctx context.Context) (*models.SalesTerms, error)

	GetVehicleFn          func(ctx context.Context, id uint) (*models.Vehicle, error)
	GetVehicleForUpdateFn func(ctx context.Context, id uint) (*models.Vehicle, error)
	SaveVehicleFn         func(ctx context.Context, v *models.Vehicle) error

	GetDraftByTokenFn   func(ctx context.Context, token string) (*models.DraftBooking, error)
	GetDraftForUpdateFn func(ctx context.Context, id uint) (*models.DraftBooking, error)
	SaveDraftFn         func(ctx context.Context, d *models.DraftBooking) error
	DeleteDraftFn       func(ctx context.Context, id uint) error

	GetProfileFn  func(ctx context.Context, id uint) (*models.SalesProfile, error)
	SaveProfileFn func(ctx context.Context, p *models.SalesProfile) error

	CreateBookingFn       func(ctx context.Context, b *models.SalesBooking) error
	GetBookingFn          func(ctx context.Context, id uint) (*models.SalesBooking, error)
	GetBookingForUpdateFn func(ctx context.Context, id uint) (*models.SalesBooking, error)
	SaveBookingFn         func(ctx context.Context, b *models.SalesBooking) error

	ListAppointmentTimesFn func(ctx context.Context, day time.Time) ([]string, error)

	CreatePaymentFn        func(ctx context.Context, p *models.Payment) error
	GetPaymentByIntentIDFn func(ctx context.Context, intentID string) (*models.Payment, error)
	GetPaymentByDraftIDFn  func(ctx context.Context, draftID uint) (*models.Payment, error)
	GetPaymentForUpdateFn  func(ctx context.Context, id uint) (*models.Payment, error)
	SavePaymentFn          func(ctx context.Context, p *models.Payment) error
}

func (m *mockStore) Transaction(ctx context.Context, fn func(Store) error) error {
	if m.TransactionFn != nil {
		return m.TransactionFn(ctx, fn)
	}
	return fn(m)
}

func (m *mockStore) GetSettings(ctx context.Context) (*models.InventorySettings, error) {
	if m.GetSettingsFn != nil {
		return m.GetSettingsFn(ctx)
	}
	return nil, ErrNotFound
}

func (m *mockStore) ListBlockedDates(ctx context.Context, from, to time.Time) ([]models.BlockedSalesDate, error) {
	if m.ListBlockedDatesFn != nil {
		return m.ListBlockedDatesFn(ctx, from, to)
	}
	return nil, nil
}

func (m *mockStore) GetActiveTerms(ctx context.Context) (*models.SalesTerms, error) {
	if m.GetActiveTermsFn != nil {
		return m.GetActiveTermsFn(ctx)
	}
	return &models.SalesTerms{ID: 1, VersionNumber: 1, IsActive: true}, nil
}

func (m *mockStore) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	if m.GetVehicleFn != nil {
		return m.GetVehicleFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *mockStore) GetVehicleForUpdate(ctx context.Context, id uint) (*models.Vehicle, error) {
	if m.GetVehicleForUpdateFn != nil {
		return m.GetVehicleForUpdateFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *mockStore) SaveVehicle(ctx context.Context, v *models.Vehicle) error {
	if m.SaveVehicleFn != nil {
		return m.SaveVehicleFn(ctx, v)
	}
	return nil
}

func (m *mockStore) GetDraftByToken(ctx context.Context, token string) (*models.DraftBooking, error) {
	if m.GetDraftByTokenFn != nil {
		return m.GetDraftByTokenFn(ctx, token)
	}
	return nil, ErrNotFound
}

func (m *mockStore) GetDraftForUpdate(ctx context.Context, id uint) (*models.DraftBooking, error) {
	if m.GetDraftForUpdateFn != nil {
		return m.GetDraftForUpdateFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *mockStore) SaveDraft(ctx context.Context, d *models.DraftBooking) error {
	if m.SaveDraftFn != nil {
		return m.SaveDraftFn(ctx, d)
	}
	return nil
}

func (m *mockStore) DeleteDraft(ctx context.Context, id uint) error {
	if m.DeleteDraftFn != nil {
		return m.DeleteDraftFn(ctx, id)
	}
	return nil
}

func (m *mockStore) GetProfile(ctx context.Context, id uint) (*models.SalesProfile, error) {
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx, id)
	}
	return &models.SalesProfile{ID: id, Name: "Test Customer", Email: "customer@example.com"}, nil
}

func (m *mockStore) SaveProfile(ctx context.Context, p *models.SalesProfile) error {
	if m.SaveProfileFn != nil {
		return m.SaveProfileFn(ctx, p)
	}
	if p.ID == 0 {
		p.ID = 1
	}
	return nil
}

func (m *mockStore) CreateBooking(ctx context.Context, b *models.SalesBooking) error {
	if m.CreateBookingFn != nil {
		return m.CreateBookingFn(ctx, b)
	}
	if b.ID == 0 {
		b.ID = 1
	}
	return nil
}

func (m *mockStore) GetBooking(ctx context.Context, id uint) (*models.SalesBooking, error) {
	if m.GetBookingFn != nil {
		return m.GetBookingFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *mockStore) GetBookingForUpdate(ctx context.Context, id uint) (*models.SalesBooking, error) {
	if m.GetBookingForUpdateFn != nil {
		return m.GetBookingForUpdateFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *mockStore) SaveBooking(ctx context.Context, b *models.SalesBooking) error {
	if m.SaveBookingFn != nil {
		return m.SaveBookingFn(ctx, b)
	}
	return nil
}

func (m *mockStore) ListAppointmentTimes(ctx context.Context, day time.Time) ([]string, error) {
	if m.ListAppointmentTimesFn != nil {
		return m.ListAppointmentTimesFn(ctx, day)
	}
	return nil, nil
}

func (m *mockStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	if m.CreatePaymentFn != nil {
		return m.CreatePaymentFn(ctx, p)
	}
	if p.ID == 0 {
		p.ID = 1
	}
	return nil
}

func (m *mockStore) GetPaymentByIntentID(ctx context.Context, intentID string) (*models.Payment, error) {
	if m.GetPaymentByIntentIDFn != nil {
		return m.GetPaymentByIntentIDFn(ctx, intentID)
	}
	return nil, ErrNotFound
}

func (m *mockStore) GetPaymentByDraftID(ctx context.Context, draftID uint) (*models.Payment, error) {
	if m.GetPaymentByDraftIDFn != nil {
		return m.GetPaymentByDraftIDFn(ctx, draftID)
	}
	return nil, ErrNotFound
}

func (m *mockStore) GetPaymentForUpdate(ctx context.Context, id uint) (*models.Payment, error) {
	if m.GetPaymentForUpdateFn != nil {
		return m.GetPaymentForUpdateFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *mockStore) SavePayment(ctx context.Context, p *models.Payment) error {
	if m.SavePaymentFn != nil {
		return m.SavePaymentFn(ctx, p)
	}
	return nil
}

// ------------------------------------------------------
// Collaborator mocks
// ------------------------------------------------------

type mockDesk struct {
	NotifyFn func(b *models.SalesBooking) bool
	calls    int
}

func (d *mockDesk) Notify(b *models.SalesBooking) bool {
	d.calls++
	if d.NotifyFn != nil {
		return d.NotifyFn(b)
	}
	return true
}

type mockMailer struct {
	sent []string // subjects, in send order
}

func (m *mockMailer) Send(
	recipients []string,
	subject string,
	templateName string,
	context map[string]any,
	booking *models.SalesBooking,
	profile *models.SalesProfile,
) bool {
	m.sent = append(m.sent, subject)
	return true
}

type mockGateway struct {
	CreateIntentFn   func(ctx context.Context, amountMinor int64, currency, description string, metadata map[string]string) (*payment.Intent, error)
	ModifyIntentFn   func(ctx context.Context, id string, amountMinor int64, currency, description string, metadata map[string]string) (*payment.Intent, error)
	RetrieveIntentFn func(ctx context.Context, id string) (*payment.Intent, error)

	created  int
	modified int
}

func (g *mockGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, description string, metadata map[string]string) (*payment.Intent, error) {
	g.created++
	if g.CreateIntentFn != nil {
		return g.CreateIntentFn(ctx, amountMinor, currency, description, metadata)
	}
	return &payment.Intent{
		ID:           "pi_new",
		Status:       payment.StatusRequiresPaymentMethod,
		Amount:       amountMinor,
		Currency:     currency,
		ClientSecret: "pi_new_secret",
	}, nil
}

func (g *mockGateway) ModifyIntent(ctx context.Context, id string, amountMinor int64, currency, description string, metadata map[string]string) (*payment.Intent, error) {
	g.modified++
	if g.ModifyIntentFn != nil {
		return g.ModifyIntentFn(ctx, id, amountMinor, currency, description, metadata)
	}
	return &payment.Intent{
		ID:       id,
		Status:   payment.StatusRequiresPaymentMethod,
		Amount:   amountMinor,
		Currency: currency,
	}, nil
}

func (g *mockGateway) RetrieveIntent(ctx context.Context, id string) (*payment.Intent, error) {
	if g.RetrieveIntentFn != nil {
		return g.RetrieveIntentFn(ctx, id)
	}
	return nil, ErrNotFound
}

type mockAudit struct {
	events []audit.Event
}

func (a *mockAudit) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

var _ notify.ServiceDesk = (*mockDesk)(nil)
var _ AuditSink = (*mockAudit)(nil)
var _ notify.Mailer = (*mockMailer)(nil)
var _ payment.Gateway = (*mockGateway)(nil)
var _ Store = (*mockStore)(nil)

func testLogger() *zap.Logger { return zap.NewNop() }
