package booking

import "github.com/ridgelinemotors/moto-reservations/internal/models"

// Inventory transitions. Callers must hold the vehicle row lock for the
// duration of the surrounding transaction.

// ApplyReservation marks the vehicle as taken after money was received.
// Multi-unit "new" stock decrements; a unit count of zero sells the
// listing out. Single-unit vehicles move to reserved.
func ApplyReservation(v *models.Vehicle) {
	if v.IsNewStock() {
		if v.Quantity > 0 {
			v.Quantity--
			if v.Quantity == 0 {
				v.IsAvailable = false
				v.Status = models.VehicleStatusSold
			}
		}
		return
	}

	v.IsAvailable = false
	v.Status = models.VehicleStatusReserved
}

// ReleaseReservation returns a vehicle reserved by a rejected booking to
// the open market. It is a no-op unless the vehicle is actually held.
func ReleaseReservation(v *models.Vehicle) {
	if v.IsAvailable || v.Status != models.VehicleStatusReserved {
		return
	}
	if v.IsNewStock() {
		v.Quantity++
	}
	v.IsAvailable = true
	v.Status = models.VehicleStatusForSale
}

// Reservable reports whether the vehicle can still be offered to a
// customer starting a reservation.
func Reservable(v *models.Vehicle) bool {
	if !v.IsAvailable || v.Status != models.VehicleStatusForSale {
		return false
	}
	if v.IsNewStock() && v.Quantity <= 0 {
		return false
	}
	return true
}
