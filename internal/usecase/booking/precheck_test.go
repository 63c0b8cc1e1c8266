package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

func TestPrecheckVehicleOpenListing(t *testing.T) {
	store := &mockStore{}
	store.GetVehicleForUpdateFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: id, Condition: "used", Status: models.VehicleStatusForSale, IsAvailable: true, Quantity: 1}, nil
	}

	uc := NewPrecheckVehicle(store)

	v, err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), v.ID)
}

func TestPrecheckVehicleReserved(t *testing.T) {
	store := &mockStore{}
	store.GetVehicleForUpdateFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: id, Condition: "used", Status: models.VehicleStatusReserved, IsAvailable: false}, nil
	}

	uc := NewPrecheckVehicle(store)

	_, err := uc.Execute(context.Background(), 7)
	assert.True(t, httperr.IsBusiness(err, "vehicle_not_available"))
}

func TestPrecheckVehicleMissing(t *testing.T) {
	uc := NewPrecheckVehicle(&mockStore{})

	_, err := uc.Execute(context.Background(), 404)
	assert.True(t, httperr.IsBusiness(err, "vehicle_not_found"))
}
