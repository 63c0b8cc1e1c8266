package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ridgelinemotors/moto-reservations/internal/models"
	"github.com/ridgelinemotors/moto-reservations/internal/usecase/booking"
)

// AdminGorm implements admin.Store.
type AdminGorm struct {
	db *gorm.DB
}

func NewAdminGorm(db *gorm.DB) *AdminGorm {
	return &AdminGorm{db: db}
}

// ------------------------------------------------------
// Settings
// ------------------------------------------------------

func (r *AdminGorm) GetSettings(ctx context.Context) (*models.InventorySettings, error) {
	var s models.InventorySettings
	if err := r.db.WithContext(ctx).First(&s).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &s, nil
}

func (r *AdminGorm) SaveSettings(ctx context.Context, s *models.InventorySettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// ------------------------------------------------------
// Blocked dates
// ------------------------------------------------------

func (r *AdminGorm) ListBlockedDates(ctx context.Context) ([]models.BlockedSalesDate, error) {
	var blocks []models.BlockedSalesDate
	err := r.db.WithContext(ctx).Order("start_date").Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *AdminGorm) CreateBlockedDate(ctx context.Context, b *models.BlockedSalesDate) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *AdminGorm) DeleteBlockedDate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.BlockedSalesDate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// ------------------------------------------------------
// Terms
// ------------------------------------------------------

func (r *AdminGorm) ListTerms(ctx context.Context) ([]models.SalesTerms, error) {
	var terms []models.SalesTerms
	err := r.db.WithContext(ctx).Order("version_number DESC").Find(&terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *AdminGorm) NextTermsVersion(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&models.SalesTerms{}).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *AdminGorm) CreateTerms(ctx context.Context, t *models.SalesTerms) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// ActivateTerms flips the active flag to the given version inside one
// transaction so at most one version is ever active.
func (r *AdminGorm) ActivateTerms(ctx context.Context, id uint) (*models.SalesTerms, error) {
	var t models.SalesTerms

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return booking.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.SalesTerms{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		t.IsActive = true
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ------------------------------------------------------
// Vehicles
// ------------------------------------------------------

func (r *AdminGorm) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Conditions").
		Order("id").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *AdminGorm) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	err := r.db.WithContext(ctx).Preload("Conditions").First(&v, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &v, nil
}

func (r *AdminGorm) SaveVehicle(ctx context.Context, v *models.Vehicle) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(v).Error
}

// ------------------------------------------------------
// Bookings
// ------------------------------------------------------

func (r *AdminGorm) ListBookings(ctx context.Context, status string) ([]models.SalesBooking, error) {
	q := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("SalesProfile").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("booking_status = ?", status)
	}

	var bookings []models.SalesBooking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *AdminGorm) GetBooking(ctx context.Context, id uint) (*models.SalesBooking, error) {
	var b models.SalesBooking
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("SalesProfile").
		Preload("SalesTerms").
		First(&b, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &b, nil
}
