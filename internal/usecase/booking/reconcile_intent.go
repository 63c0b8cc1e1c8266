package booking

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	payment "github.com/ridgelinemotors/moto-reservations/internal/domain/payment"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// ReconcileIntent brings the remote payment intent and the local shadow
// record in line with the amount the draft currently requires.
//
// An intent that is still amendable is repaired in place rather than
// discarded, so a customer already on the card form keeps their intent
// id. Terminal intents (canceled, failed) are abandoned: the old shadow
// record is retired as ownerless history and a fresh intent with a
// fresh shadow takes over the draft. A succeeded intent is never
// mutated. Any provider error while retrieving or modifying is treated
// as "no usable existing handle".
type ReconcileIntent struct {
	store   Store
	gateway payment.Gateway
}

func NewReconcileIntent(store Store, gateway payment.Gateway) *ReconcileIntent {
	return &ReconcileIntent{store: store, gateway: gateway}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ReconcileIntent) Execute(
	ctx context.Context,
	draft *models.DraftBooking,
	vehicle *models.Vehicle,
	profile *models.SalesProfile,
	amountToPay float64,
	currency string,
) (*payment.Intent, *models.Payment, error) {

	amountMinor := int64(math.Round(amountToPay * 100))
	description := fmt.Sprintf(
		"Deposit for Vehicle: %d %s %s (Ref: %s)",
		vehicle.Year, vehicle.Make, vehicle.Model, draft.SessionToken,
	)
	metadata := map[string]string{
		"draft_session_token": draft.SessionToken,
		"booking_type":        "sales_booking",
	}
	if profile != nil {
		metadata["sales_profile_id"] = strconv.FormatUint(uint64(profile.ID), 10)
	} else {
		metadata["sales_profile_id"] = "guest"
	}

	shadow, err := uc.store.GetPaymentByDraftID(ctx, draft.ID)
	if err != nil && err != ErrNotFound {
		return nil, nil, err
	}
	if err == ErrNotFound {
		shadow = nil
	}

	var intent *payment.Intent

	if shadow != nil && shadow.StripePaymentIntentID != "" {
		remote, err := uc.gateway.RetrieveIntent(ctx, shadow.StripePaymentIntentID)
		if err == nil {
			if remote.Status == payment.StatusCanceled || remote.Status == payment.StatusFailed {
				// Terminal handle: detach the shadow so it survives as
				// intent-id history while a new record owns the draft.
				shadow.DraftBookingID = nil
				if err := uc.store.SavePayment(ctx, shadow); err != nil {
					return nil, nil, err
				}
				shadow = nil
			} else {
				intent = uc.decide(ctx, remote, amountMinor, currency, description, metadata)
			}
		}
	}

	if intent == nil {
		intent, err = uc.gateway.CreateIntent(ctx, amountMinor, currency, description, metadata)
		if err != nil {
			return nil, nil, err
		}
	}

	if shadow != nil {
		shadow.StripePaymentIntentID = intent.ID
		shadow.Amount = amountToPay
		shadow.Currency = currency
		shadow.Description = description
		if shadow.Status != intent.Status {
			shadow.Status = intent.Status
		}
		if err := uc.store.SavePayment(ctx, shadow); err != nil {
			return nil, nil, err
		}
	} else {
		shadow = &models.Payment{
			DraftBookingID:        &draft.ID,
			StripePaymentIntentID: intent.ID,
			Amount:                amountToPay,
			Currency:              currency,
			Status:                intent.Status,
			Description:           description,
		}
		if err := uc.store.CreatePayment(ctx, shadow); err != nil {
			return nil, nil, err
		}
	}

	if draft.StripePaymentIntentID != intent.ID {
		draft.StripePaymentIntentID = intent.ID
		if err := uc.store.SaveDraft(ctx, draft); err != nil {
			return nil, nil, err
		}
	}

	return intent, shadow, nil
}

// decide applies the reuse/modify table to a retrieved non-terminal
// intent. A nil return means "no usable existing handle, create one".
func (uc *ReconcileIntent) decide(
	ctx context.Context,
	remote *payment.Intent,
	amountMinor int64,
	currency string,
	description string,
	metadata map[string]string,
) *payment.Intent {

	matches := remote.Amount == amountMinor && strings.EqualFold(remote.Currency, currency)

	switch {
	case payment.Modifiable(remote.Status) && matches:
		return remote

	case payment.Modifiable(remote.Status):
		modified, err := uc.gateway.ModifyIntent(ctx, remote.ID, amountMinor, currency, description, metadata)
		if err != nil {
			return nil
		}
		return modified

	default:
		// Succeeded or otherwise non-modifiable: never mutate.
		return remote
	}
}
