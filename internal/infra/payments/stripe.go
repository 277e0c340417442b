package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("payments: stripe secret key is required")

// IntentCreator converts a monetary amount into a client-usable charge
// handle. Handlers depend on this rather than the Stripe SDK directly.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64) (clientSecret string, err error)
}

// StripeClient creates card payment intents through the Stripe API.
type StripeClient struct {
	api *client.API
}

// NewStripeClient constructs a client bound to the given secret key. An empty
// key yields a client that fails fast on use, so the service can still boot
// without payments configured.
func NewStripeClient(secretKey string) *StripeClient {
	key := strings.TrimSpace(secretKey)
	if key == "" {
		return &StripeClient{}
	}
	api := &client.API{}
	api.Init(key, nil)
	return &StripeClient{api: api}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *StripeClient) HasCredentials() bool {
	return c != nil && c.api != nil
}

// CreateIntent creates a card payment intent for the amount given in the
// smallest currency unit and returns its client secret.
func (c *StripeClient) CreateIntent(ctx context.Context, amount int64) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingAPIKey
	}
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

var _ IntentCreator = (*StripeClient)(nil)
