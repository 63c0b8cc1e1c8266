package booking

import (
	"context"
	"errors"
	"time"

	"github.com/ridgelinemotors/moto-reservations/internal/audit"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

// ErrNotFound is returned by Store lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// AuditSink receives operator-action audit events. Satisfied by
// audit.Dispatcher.
type AuditSink interface {
	Dispatch(ev audit.Event)
}

// Store is the persistence surface the booking use cases run against.
// ForUpdate lookups take an exclusive row lock scoped to the enclosing
// transaction; they must only be called from inside Transaction.
type Store interface {
	Transaction(ctx context.Context, fn func(Store) error) error

	// -------- Settings / terms / calendar --------
	GetSettings(ctx context.Context) (*models.InventorySettings, error)
	ListBlockedDates(ctx context.Context, from, to time.Time) ([]models.BlockedSalesDate, error)
	GetActiveTerms(ctx context.Context) (*models.SalesTerms, error)

	// -------- Vehicle --------
	GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error)
	GetVehicleForUpdate(ctx context.Context, id uint) (*models.Vehicle, error)
	SaveVehicle(ctx context.Context, v *models.Vehicle) error

	// -------- Draft --------
	GetDraftByToken(ctx context.Context, token string) (*models.DraftBooking, error)
	GetDraftForUpdate(ctx context.Context, id uint) (*models.DraftBooking, error)
	SaveDraft(ctx context.Context, d *models.DraftBooking) error
	DeleteDraft(ctx context.Context, id uint) error

	// -------- Profile --------
	GetProfile(ctx context.Context, id uint) (*models.SalesProfile, error)
	SaveProfile(ctx context.Context, p *models.SalesProfile) error

	// -------- Confirmed booking --------
	CreateBooking(ctx context.Context, b *models.SalesBooking) error
	GetBooking(ctx context.Context, id uint) (*models.SalesBooking, error)
	GetBookingForUpdate(ctx context.Context, id uint) (*models.SalesBooking, error)
	SaveBooking(ctx context.Context, b *models.SalesBooking) error

	// Times already taken by live bookings on a date, as "15:04" strings.
	ListAppointmentTimes(ctx context.Context, day time.Time) ([]string, error)

	// -------- Payment shadow records --------
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPaymentByIntentID(ctx context.Context, intentID string) (*models.Payment, error)
	GetPaymentByDraftID(ctx context.Context, draftID uint) (*models.Payment, error)
	GetPaymentForUpdate(ctx context.Context, id uint) (*models.Payment, error)
	SavePayment(ctx context.Context, p *models.Payment) error
}
