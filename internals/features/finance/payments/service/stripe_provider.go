package service

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"

	"rentpay_backend/internals/features/finance/payments/model"
)

type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// StripeProvider creates hosted Checkout Sessions in payment mode.
type StripeProvider struct {
	config StripeConfig
}

// NewStripeProvider sets the global Stripe API key used by the resource
// packages.
func NewStripeProvider(config StripeConfig) (*StripeProvider, error) {
	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, ErrProviderUnavailable
	}
	stripe.Key = config.SecretKey
	return &StripeProvider{config: config}, nil
}

func (s *StripeProvider) Name() model.PaymentGatewayProvider {
	return model.GatewayProviderStripe
}

func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	name := params.Description
	if name == "" {
		name = "Rent Payment"
	}

	sp := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(params.Currency)),
					UnitAmount: stripe.Int64(params.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.config.SuccessURL),
		CancelURL:         stripe.String(s.config.CancelURL),
		ClientReferenceID: stripe.String(params.ClientReference),
	}
	sp.Context = ctx
	for k, v := range params.Metadata {
		sp.AddMetadata(k, v)
	}
	// same payment id → same session if the request is retried by the SDK
	sp.SetIdempotencyKey("checkout-" + params.ClientReference)

	cs, err := session.New(sp)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return &CheckoutSession{ID: cs.ID, URL: cs.URL}, nil
}

func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return &ProviderError{Provider: model.GatewayProviderStripe, Message: err.Error(), Err: err}
	}
	return &ProviderError{
		Provider: model.GatewayProviderStripe,
		Code:     string(stripeErr.Code),
		Message:  stripeErr.Msg,
		Err:      err,
	}
}
