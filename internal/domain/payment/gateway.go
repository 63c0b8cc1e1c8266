package payment

import "context"

// Intent status values, mirroring the provider's enum.
const (
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusRequiresConfirmation  = "requires_confirmation"
	StatusRequiresAction        = "requires_action"
	StatusProcessing            = "processing"
	StatusSucceeded             = "succeeded"
	StatusCanceled              = "canceled"
	StatusFailed                = "failed"
)

// Modifiable reports whether an intent in this status may still be
// amended in place (amount or currency repair). Canceled and failed are
// terminal; succeeded must never be mutated.
func Modifiable(status string) bool {
	switch status {
	case StatusRequiresPaymentMethod, StatusRequiresConfirmation,
		StatusRequiresAction, StatusProcessing:
		return true
	}
	return false
}

// Intent is the provider's representation of an in-progress or completed
// charge, reduced to what the reconciler needs.
type Intent struct {
	ID           string
	Status       string
	Amount       int64 // minor units
	Currency     string
	ClientSecret string
}

// Gateway is the remote payment provider. Calls are synchronous with no
// retry loop; a provider error is terminal for the current request.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, description string, metadata map[string]string) (*Intent, error)
	ModifyIntent(ctx context.Context, id string, amountMinor int64, currency, description string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}
