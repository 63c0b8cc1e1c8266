package booking

import (
	"context"

	domain "github.com/ridgelinemotors/moto-reservations/internal/domain/booking"
	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// PrecheckVehicle verifies under lock that a vehicle can still anchor a
// new reservation. The lock closes the gap between the customer seeing
// the listing and the draft being written.
type PrecheckVehicle struct {
	store Store
}

func NewPrecheckVehicle(store Store) *PrecheckVehicle {
	return &PrecheckVehicle{store: store}
}

func (uc *PrecheckVehicle) Execute(ctx context.Context, vehicleID uint) (*models.Vehicle, error) {
	var vehicle *models.Vehicle

	err := uc.store.Transaction(ctx, func(s Store) error {
		v, err := s.GetVehicleForUpdate(ctx, vehicleID)
		if err == ErrNotFound {
			return httperr.ErrBusiness("vehicle_not_found")
		}
		if err != nil {
			return err
		}

		if !domain.Reservable(v) {
			return httperr.ErrBusiness("vehicle_not_available")
		}

		vehicle = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}
