package stripeclient

import (
	"context"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/charge"
	"github.com/stripe/stripe-go/v78/paymentintent"
	"github.com/stripe/stripe-go/v78/paymentmethod"
	"github.com/stripe/stripe-go/v78/setupintent"
	"github.com/stripe/stripe-go/v78/webhook"
)

// API is the slice of Stripe this service touches. Handlers and the
// notifier depend on it so tests can swap in fakes.
type API interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*stripe.PaymentIntent, error)
	CreateSetupIntent(ctx context.Context, metadata map[string]string) (*stripe.SetupIntent, error)
	LatestChargeForPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.Charge, error)
	GetPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error)
}

type Client struct{}

func New(secretKey string) *Client {
	stripe.Key = secretKey
	return &Client{}
}

func (c *Client) CreatePaymentIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: metadata,
	}
	params.Context = ctx
	return paymentintent.New(params)
}

func (c *Client) CreateSetupIntent(ctx context.Context, metadata map[string]string) (*stripe.SetupIntent, error) {
	params := &stripe.SetupIntentParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"us_bank_account"}),
		Metadata:           metadata,
	}
	params.Context = ctx
	return setupintent.New(params)
}

// LatestChargeForPaymentIntent returns the most recent charge for the
// intent, or nil when Stripe has none. The succeeded payment intent in a
// webhook event carries no billing email, so the charge is where the
// donor's address comes from.
func (c *Client) LatestChargeForPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.Charge, error) {
	params := &stripe.ChargeListParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Limit = stripe.Int64(1)
	params.Context = ctx

	iter := charge.List(params)
	for iter.Next() {
		return iter.Charge(), nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (c *Client) GetPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	params := &stripe.PaymentMethodParams{}
	params.Context = ctx
	return paymentmethod.Get(id, params)
}

// VerifyWebhook checks the Stripe-Signature header against the signing
// secret and returns the parsed event.
func (c *Client) VerifyWebhook(payload []byte, signature, secret string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, secret)
}
