// Package gateway wraps the external payment provider. The rest of the
// system only ever asks it for a client secret covering an amount.
package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// Client mints client-side payment secrets for a given amount in minor units.
type Client interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// client charges through the package-global key set at construction.
type client struct{}

// NewClient creates a Stripe-backed gateway client.
func NewClient(apiKey string) Client {
	stripe.Key = apiKey
	return &client{}
}

// CreatePaymentIntent creates a card PaymentIntent and returns its client secret.
func (c *client) CreatePaymentIntent(_ context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
