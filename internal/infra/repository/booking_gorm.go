package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ridgelinemotors/moto-reservations/internal/domain/booking"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
	"github.com/ridgelinemotors/moto-reservations/internal/usecase/booking"
)

// BookingGorm implements booking.Store on gorm/Postgres. ForUpdate
// lookups acquire SELECT ... FOR UPDATE and therefore require the
// receiver to be transaction-bound.
type BookingGorm struct {
	db *gorm.DB
}

func NewBookingGorm(db *gorm.DB) *BookingGorm {
	return &BookingGorm{db: db}
}

func (r *BookingGorm) Transaction(ctx context.Context, fn func(booking.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGorm{db: tx})
	})
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booking.ErrNotFound
	}
	return err
}

// ------------------------------------------------------
// Settings / terms / calendar
// ------------------------------------------------------

func (r *BookingGorm) GetSettings(ctx context.Context) (*models.InventorySettings, error) {
	var s models.InventorySettings
	if err := r.db.WithContext(ctx).First(&s).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &s, nil
}

func (r *BookingGorm) SaveSettings(ctx context.Context, s *models.InventorySettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *BookingGorm) ListBlockedDates(ctx context.Context, from, to time.Time) ([]models.BlockedSalesDate, error) {
	var blocks []models.BlockedSalesDate
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BookingGorm) GetActiveTerms(ctx context.Context) (*models.SalesTerms, error) {
	var t models.SalesTerms
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("version_number DESC").
		First(&t).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &t, nil
}

// ------------------------------------------------------
// Vehicle
// ------------------------------------------------------

func (r *BookingGorm) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Conditions").
		First(&v, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &v, nil
}

func (r *BookingGorm) GetVehicleForUpdate(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	// Association preload happens outside the locking clause; the lock
	// is on the vehicle row itself.
	if err := r.db.WithContext(ctx).Model(&v).Association("Conditions").Find(&v.Conditions); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *BookingGorm) SaveVehicle(ctx context.Context, v *models.Vehicle) error {
	return r.db.WithContext(ctx).Omit("Conditions").Save(v).Error
}

// ------------------------------------------------------
// Draft
// ------------------------------------------------------

func (r *BookingGorm) GetDraftByToken(ctx context.Context, token string) (*models.DraftBooking, error) {
	var d models.DraftBooking
	err := r.db.WithContext(ctx).
		Where("session_token = ?", token).
		First(&d).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &d, nil
}

func (r *BookingGorm) GetDraftForUpdate(ctx context.Context, id uint) (*models.DraftBooking, error) {
	var d models.DraftBooking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&d, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &d, nil
}

func (r *BookingGorm) SaveDraft(ctx context.Context, d *models.DraftBooking) error {
	return r.db.WithContext(ctx).Omit("Vehicle", "SalesProfile").Save(d).Error
}

func (r *BookingGorm) DeleteDraft(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.DraftBooking{}, id).Error
}

// ------------------------------------------------------
// Profile
// ------------------------------------------------------

func (r *BookingGorm) GetProfile(ctx context.Context, id uint) (*models.SalesProfile, error) {
	var p models.SalesProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (r *BookingGorm) SaveProfile(ctx context.Context, p *models.SalesProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// ------------------------------------------------------
// Confirmed booking
// ------------------------------------------------------

func (r *BookingGorm) CreateBooking(ctx context.Context, b *models.SalesBooking) error {
	return r.db.WithContext(ctx).
		Omit("Vehicle", "SalesProfile", "SalesTerms").
		Create(b).Error
}

func (r *BookingGorm) GetBooking(ctx context.Context, id uint) (*models.SalesBooking, error) {
	var b models.SalesBooking
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("SalesProfile").
		First(&b, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &b, nil
}

func (r *BookingGorm) GetBookingForUpdate(ctx context.Context, id uint) (*models.SalesBooking, error) {
	var b models.SalesBooking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "sales_bookings"}}).
		First(&b, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if err := r.db.WithContext(ctx).First(&b.SalesProfile, b.SalesProfileID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGorm) SaveBooking(ctx context.Context, b *models.SalesBooking) error {
	return r.db.WithContext(ctx).
		Omit("Vehicle", "SalesProfile", "SalesTerms").
		Save(b).Error
}

// ListAppointmentTimes returns "15:04" strings already taken by live
// bookings on the date. Declined and cancelled bookings free their slot.
func (r *BookingGorm) ListAppointmentTimes(ctx context.Context, day time.Time) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).
		Model(&models.SalesBooking{}).
		Where("appointment_date = ?", day.Format("2006-01-02")).
		Where("appointment_time <> ''").
		Where("booking_status IN ?", []string{
			string(domain.StatusPendingConfirmation),
			string(domain.StatusConfirmed),
		}).
		Pluck("appointment_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// ------------------------------------------------------
// Payment shadow records
// ------------------------------------------------------

func (r *BookingGorm) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).
		Omit("DraftBooking", "SalesBooking").
		Create(p).Error
}

func (r *BookingGorm) GetPaymentByIntentID(ctx context.Context, intentID string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).
		Where("stripe_payment_intent_id = ?", intentID).
		First(&p).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (r *BookingGorm) GetPaymentByDraftID(ctx context.Context, draftID uint) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).
		Where("draft_booking_id = ?", draftID).
		First(&p).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (r *BookingGorm) GetPaymentForUpdate(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (r *BookingGorm) SavePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).
		Omit("DraftBooking", "SalesBooking").
		Save(p).Error
}
