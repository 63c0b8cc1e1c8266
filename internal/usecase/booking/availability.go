package booking

import (
	"context"
	"time"

	domain "github.com/ridgelinemotors/moto-reservations/internal/domain/booking"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
	"github.com/ridgelinemotors/moto-reservations/internal/timezone"
)

// SettingsSource yields the current inventory settings. The caching
// layer implements it so hot read paths skip the database; a nil result
// with nil error means no settings row exists yet.
type SettingsSource interface {
	Settings(ctx context.Context) (*models.InventorySettings, error)
}

// ======================================================
// USE CASE
// ======================================================

// GetAvailability answers the picker queries: which dates can be
// booked, and which times remain open on a chosen date.
type GetAvailability struct {
	store    Store
	settings SettingsSource
	now      func() time.Time
}

func NewGetAvailability(store Store, settings SettingsSource) *GetAvailability {
	return &GetAvailability{
		store:    store,
		settings: settings,
		now:      timezone.Now,
	}
}

// ======================================================
// QUERIES
// ======================================================

// DateInfo computes the bookable date window. The window bounds are
// derived first so only the blocked ranges inside them are fetched.
func (uc *GetAvailability) DateInfo(ctx context.Context, isDepositFlow bool) (domain.DateWindow, error) {

	now := uc.now()

	cfg, err := uc.settings.Settings(ctx)
	if err != nil {
		return domain.DateWindow{}, err
	}

	bounds := domain.AppointmentDateWindow(cfg, nil, isDepositFlow, now)

	blocks, err := uc.store.ListBlockedDates(ctx, bounds.Earliest, bounds.Latest)
	if err != nil {
		return domain.DateWindow{}, err
	}

	return domain.AppointmentDateWindow(cfg, blocks, isDepositFlow, now), nil
}

// TimesForDate lists the offerable "15:04" slots on a date, excluding
// anything already taken by a live booking.
func (uc *GetAvailability) TimesForDate(ctx context.Context, day time.Time) ([]string, error) {

	cfg, err := uc.settings.Settings(ctx)
	if err != nil {
		return nil, err
	}

	taken, err := uc.store.ListAppointmentTimes(ctx, day)
	if err != nil {
		return nil, err
	}

	return domain.AppointmentTimes(day, cfg, taken, uc.now()), nil
}

// ValidateSelection re-checks a customer-submitted date and time on the
// server. Returns human-readable violations; empty means acceptable.
func (uc *GetAvailability) ValidateSelection(
	ctx context.Context,
	day time.Time,
	hm string,
	isDepositFlow bool,
) ([]string, error) {

	now := uc.now()

	cfg, err := uc.settings.Settings(ctx)
	if err != nil {
		return nil, err
	}

	bounds := domain.AppointmentDateWindow(cfg, nil, isDepositFlow, now)
	blocks, err := uc.store.ListBlockedDates(ctx, bounds.Earliest, bounds.Latest)
	if err != nil {
		return nil, err
	}

	violations := domain.ValidateAppointmentDate(day, cfg, blocks, isDepositFlow, now)

	if hm != "" {
		taken, err := uc.store.ListAppointmentTimes(ctx, day)
		if err != nil {
			return nil, err
		}
		violations = append(violations, domain.ValidateAppointmentTime(day, hm, cfg, taken, now)...)
	}

	return violations, nil
}
