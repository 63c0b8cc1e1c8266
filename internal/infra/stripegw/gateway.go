package stripegw

import (
	"context"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	payment "github.com/ridgelinemotors/moto-reservations/internal/domain/payment"
)

// Gateway implements payment.Gateway on the Stripe PaymentIntents API.
type Gateway struct {
	api *client.API
}

func New(secretKey string) *Gateway {
	return &Gateway{api: client.New(secretKey, nil)}
}

func (g *Gateway) CreateIntent(
	ctx context.Context,
	amountMinor int64,
	currency, description string,
	metadata map[string]string,
) (*payment.Intent, error) {

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountMinor),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripe(pi), nil
}

func (g *Gateway) ModifyIntent(
	ctx context.Context,
	id string,
	amountMinor int64,
	currency, description string,
	metadata map[string]string,
) (*payment.Intent, error) {

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountMinor),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.Update(id, params)
	if err != nil {
		return nil, err
	}
	return fromStripe(pi), nil
}

func (g *Gateway) RetrieveIntent(ctx context.Context, id string) (*payment.Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, err
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) *payment.Intent {
	return &payment.Intent{
		ID:           pi.ID,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		ClientSecret: pi.ClientSecret,
	}
}
