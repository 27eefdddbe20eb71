package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentpay_backend/internals/configs"
	"rentpay_backend/internals/features/finance/payments/model"
)

// CheckoutSessionParams describes one hosted checkout for one Payment.
type CheckoutSessionParams struct {
	Amount          int64 // minor units
	Currency        string
	ClientReference string // payment id
	Description     string
	Metadata        map[string]string
}

// CheckoutSession is what the provider hands back: an id to correlate later
// webhook deliveries and the URL to redirect the tenant to.
type CheckoutSession struct {
	ID  string
	URL string
}

// Provider is the payment provider capability used by checkout.
type Provider interface {
	Name() model.PaymentGatewayProvider
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
}

var ErrProviderUnavailable = errors.New("payment provider is not configured")

// ProviderError membungkus error SDK provider.
type ProviderError struct {
	Provider model.PaymentGatewayProvider
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	msg := string(e.Provider) + ": " + e.Message
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderFromConfig memilih provider aktif dari PAYMENT_PROVIDER.
func NewProviderFromConfig(cfg configs.PaymentConfig) (Provider, error) {
	switch model.PaymentGatewayProvider(strings.ToLower(strings.TrimSpace(cfg.Provider))) {
	case model.GatewayProviderMidtrans:
		p, err := NewMidtransProvider(cfg.MidtransServerKey, cfg.MidtransUseProd)
		if err != nil {
			return nil, err
		}
		return p, nil
	case model.GatewayProviderStripe, "":
		p, err := NewStripeProvider(StripeConfig{
			SecretKey:  cfg.StripeSecretKey,
			SuccessURL: cfg.SuccessURL,
			CancelURL:  cfg.CancelURL,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}
