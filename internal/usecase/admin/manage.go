package admin

import (
	"context"

	"github.com/ridgelinemotors/moto-reservations/internal/audit"
	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
	"github.com/ridgelinemotors/moto-reservations/internal/usecase/booking"
)

// Invalidator drops cached settings after a write.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// ======================================================
// USE CASE
// ======================================================

// Manage bundles the operator management actions: scheduling rules,
// blocked dates, terms versions and the vehicle catalogue.
type Manage struct {
	store      Store
	cache      Invalidator
	dispatcher booking.AuditSink
}

func NewManage(store Store, cache Invalidator, dispatcher booking.AuditSink) *Manage {
	return &Manage{store: store, cache: cache, dispatcher: dispatcher}
}

// ======================================================
// SETTINGS
// ======================================================

// UpdateSettings writes the singleton settings row. The incoming value
// always lands on the existing row's id, so a second row can never
// appear.
func (uc *Manage) UpdateSettings(ctx context.Context, operatorID *uint, in *models.InventorySettings) (*models.InventorySettings, error) {

	if err := in.Validate(); err != nil {
		return nil, httperr.ErrBusiness("invalid_settings")
	}

	existing, err := uc.store.GetSettings(ctx)
	if err != nil && err != booking.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
	}

	if err := uc.store.SaveSettings(ctx, in); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)

	uc.dispatcher.Dispatch(audit.Event{
		UserID:   operatorID,
		Action:   "update",
		Entity:   "inventory_settings",
		EntityID: &in.ID,
	})

	return in, nil
}

func (uc *Manage) GetSettings(ctx context.Context) (*models.InventorySettings, error) {
	s, err := uc.store.GetSettings(ctx)
	if err == booking.ErrNotFound {
		return nil, httperr.ErrBusiness("settings_not_configured")
	}
	return s, err
}

// ======================================================
// BLOCKED DATES
// ======================================================

func (uc *Manage) ListBlockedDates(ctx context.Context) ([]models.BlockedSalesDate, error) {
	return uc.store.ListBlockedDates(ctx)
}

func (uc *Manage) CreateBlockedDate(ctx context.Context, operatorID *uint, b *models.BlockedSalesDate) error {
	if err := b.Validate(); err != nil {
		return httperr.ErrBusiness("invalid_blocked_date")
	}
	if err := uc.store.CreateBlockedDate(ctx, b); err != nil {
		return err
	}

	uc.dispatcher.Dispatch(audit.Event{
		UserID:   operatorID,
		Action:   "create",
		Entity:   "blocked_sales_date",
		EntityID: &b.ID,
	})
	return nil
}

func (uc *Manage) DeleteBlockedDate(ctx context.Context, operatorID *uint, id uint) error {
	if err := uc.store.DeleteBlockedDate(ctx, id); err != nil {
		return err
	}

	uc.dispatcher.Dispatch(audit.Event{
		UserID:   operatorID,
		Action:   "delete",
		Entity:   "blocked_sales_date",
		EntityID: &id,
	})
	return nil
}

// ======================================================
// TERMS
// ======================================================

func (uc *Manage) ListTerms(ctx context.Context) ([]models.SalesTerms, error) {
	return uc.store.ListTerms(ctx)
}

// CreateTerms stores a new version. Versions are append-only and
// numbered sequentially; creation does not activate.
func (uc *Manage) CreateTerms(ctx context.Context, operatorID *uint, content string) (*models.SalesTerms, error) {
	if content == "" {
		return nil, httperr.ErrBusiness("empty_terms_content")
	}

	version, err := uc.store.NextTermsVersion(ctx)
	if err != nil {
		return nil, err
	}

	t := &models.SalesTerms{
		Content:       content,
		VersionNumber: version,
	}
	if err := uc.store.CreateTerms(ctx, t); err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(audit.Event{
		UserID:   operatorID,
		Action:   "create",
		Entity:   "sales_terms",
		EntityID: &t.ID,
	})
	return t, nil
}

// ActivateTerms makes the given version the single active one.
func (uc *Manage) ActivateTerms(ctx context.Context, operatorID *uint, id uint) (*models.SalesTerms, error) {
	t, err := uc.store.ActivateTerms(ctx, id)
	if err == booking.ErrNotFound {
		return nil, httperr.ErrBusiness("terms_not_found")
	}
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(audit.Event{
		UserID:   operatorID,
		Action:   "activate",
		Entity:   "sales_terms",
		EntityID: &t.ID,
	})
	return t, nil
}

// ======================================================
// VEHICLES
// ======================================================

func (uc *Manage) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return uc.store.ListVehicles(ctx)
}

func (uc *Manage) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	v, err := uc.store.GetVehicle(ctx, id)
	if err == booking.ErrNotFound {
		return nil, httperr.ErrBusiness("vehicle_not_found")
	}
	return v, err
}

func (uc *Manage) SaveVehicle(ctx context.Context, operatorID *uint, v *models.Vehicle) error {
	action := "update"
	if v.ID == 0 {
		action = "create"
	}

	if err := uc.store.SaveVehicle(ctx, v); err != nil {
		return err
	}

	uc.dispatcher.Dispatch(audit.Event{
		UserID:   operatorID,
		Action:   action,
		Entity:   "vehicle",
		EntityID: &v.ID,
	})
	return nil
}

// ======================================================
// BOOKINGS
// ======================================================

func (uc *Manage) ListBookings(ctx context.Context, status string) ([]models.SalesBooking, error) {
	return uc.store.ListBookings(ctx, status)
}

func (uc *Manage) GetBooking(ctx context.Context, id uint) (*models.SalesBooking, error) {
	b, err := uc.store.GetBooking(ctx, id)
	if err == booking.ErrNotFound {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return b, err
}
