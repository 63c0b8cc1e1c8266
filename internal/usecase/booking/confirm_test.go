package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ridgelinemotors/moto-reservations/internal/domain/booking"
	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

func bookingFixture(status domain.Status, paymentStatus domain.PaymentStatus) *models.SalesBooking {
	return &models.SalesBooking{
		ID:            9,
		Reference:     "SBK-AB12CD34",
		VehicleID:     7,
		BookingStatus: string(status),
		PaymentStatus: string(paymentStatus),
		SalesProfile:  models.SalesProfile{Email: "customer@example.com"},
	}
}

func TestConfirmBookingSetsConfirmed(t *testing.T) {
	store := &mockStore{}
	mailer := &mockMailer{}

	var savedBooking *models.SalesBooking

	store.GetBookingForUpdateFn = func(ctx context.Context, id uint) (*models.SalesBooking, error) {
		return bookingFixture(domain.StatusPendingConfirmation, domain.PaymentDepositPaid), nil
	}
	store.GetVehicleForUpdateFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		// Already reserved at settlement time.
		return &models.Vehicle{ID: id, Condition: "used", Status: models.VehicleStatusReserved, IsAvailable: false}, nil
	}
	store.SaveBookingFn = func(ctx context.Context, b *models.SalesBooking) error {
		savedBooking = b
		return nil
	}

	uc := NewConfirmBooking(store, mailer, &mockAudit{}, testLogger())

	b, err := uc.Execute(context.Background(), ConfirmInput{BookingID: 9, Message: "See you Saturday"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), b.BookingStatus)
	assert.Equal(t, "See you Saturday", savedBooking.OperatorNotes)
	assert.Len(t, mailer.sent, 1)
}

func TestConfirmBookingSkipsNotification(t *testing.T) {
	store := &mockStore{}
	mailer := &mockMailer{}

	store.GetBookingForUpdateFn = func(ctx context.Context, id uint) (*models.SalesBooking, error) {
		return bookingFixture(domain.StatusPendingConfirmation, domain.PaymentDepositPaid), nil
	}
	store.GetVehicleForUpdateFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: id, Condition: "used", Status: models.VehicleStatusReserved, IsAvailable: false}, nil
	}

	uc := NewConfirmBooking(store, mailer, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), ConfirmInput{BookingID: 9, SkipNotification: true})
	require.NoError(t, err)

	assert.Empty(t, mailer.sent)
}

func TestConfirmBookingAlreadyConfirmed(t *testing.T) {
	store := &mockStore{}

	store.GetBookingForUpdateFn = func(ctx context.Context, id uint) (*models.SalesBooking, error) {
		return bookingFixture(domain.StatusConfirmed, domain.PaymentDepositPaid), nil
	}

	uc := NewConfirmBooking(store, &mockMailer{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), ConfirmInput{BookingID: 9})

	assert.True(t, httperr.IsBusiness(err, "already_confirmed"))
}

func TestConfirmBookingNotFound(t *testing.T) {
	store := &mockStore{}

	uc := NewConfirmBooking(store, &mockMailer{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), ConfirmInput{BookingID: 99})

	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestConfirmBookingReservesOpenUsedVehicleOnlyWithDeposit(t *testing.T) {
	run := func(paymentStatus domain.PaymentStatus) *models.Vehicle {
		store := &mockStore{}

		vehicle := &models.Vehicle{ID: 7, Condition: "used", Status: models.VehicleStatusForSale, IsAvailable: true, Quantity: 1}

		store.GetBookingForUpdateFn = func(ctx context.Context, id uint) (*models.SalesBooking, error) {
			return bookingFixture(domain.StatusEnquired, paymentStatus), nil
		}
		store.GetVehicleForUpdateFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
			return vehicle, nil
		}

		uc := NewConfirmBooking(store, &mockMailer{}, &mockAudit{}, testLogger())
		_, err := uc.Execute(context.Background(), ConfirmInput{BookingID: 9})
		require.NoError(t, err)
		return vehicle
	}

	// Deposit paid: confirming an enquiry-created booking holds the bike.
	withDeposit := run(domain.PaymentDepositPaid)
	assert.Equal(t, models.VehicleStatusReserved, withDeposit.Status)

	// No money: a one-off vehicle stays on the market.
	noMoney := run(domain.PaymentUnpaid)
	assert.Equal(t, models.VehicleStatusForSale, noMoney.Status)
	assert.True(t, noMoney.IsAvailable)
}

func TestConfirmBookingNewStockDecrementsWithoutDeposit(t *testing.T) {
	store := &mockStore{}

	vehicle := &models.Vehicle{ID: 7, Condition: "new", Status: models.VehicleStatusForSale, IsAvailable: true, Quantity: 2}

	store.GetBookingForUpdateFn = func(ctx context.Context, id uint) (*models.SalesBooking, error) {
		return bookingFixture(domain.StatusEnquired, domain.PaymentUnpaid), nil
	}
	store.GetVehicleForUpdateFn = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return vehicle, nil
	}

	uc := NewConfirmBooking(store, &mockMailer{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), ConfirmInput{BookingID: 9})
	require.NoError(t, err)

	assert.Equal(t, 1, vehicle.Quantity)
}
