package admin

import (
	"context"

	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

// Store is the persistence surface for operator management actions.
// Lookups return booking.ErrNotFound when no row matches.
type Store interface {
	GetSettings(ctx context.Context) (*models.InventorySettings, error)
	SaveSettings(ctx context.Context, s *models.InventorySettings) error

	ListBlockedDates(ctx context.Context) ([]models.BlockedSalesDate, error)
	CreateBlockedDate(ctx context.Context, b *models.BlockedSalesDate) error
	DeleteBlockedDate(ctx context.Context, id uint) error

	ListTerms(ctx context.Context) ([]models.SalesTerms, error)
	NextTermsVersion(ctx context.Context) (int, error)
	CreateTerms(ctx context.Context, t *models.SalesTerms) error
	ActivateTerms(ctx context.Context, id uint) (*models.SalesTerms, error)

	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error)
	SaveVehicle(ctx context.Context, v *models.Vehicle) error

	ListBookings(ctx context.Context, status string) ([]models.SalesBooking, error)
	GetBooking(ctx context.Context, id uint) (*models.SalesBooking, error)
}
