package service

import (
	"context"
	"fmt"
	"strconv"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"rentpay_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Midtrans Snap (alternatif Stripe)
========================================================= */

// MidtransProvider creates Snap transactions. The order id is the payment id
// so notifications resolve back without a lookup table.
type MidtransProvider struct {
	client snap.Client
}

// NewMidtransProvider: useProduction=true untuk Production, false untuk Sandbox.
func NewMidtransProvider(serverKey string, useProduction bool) (*MidtransProvider, error) {
	if serverKey == "" {
		return nil, ErrProviderUnavailable
	}
	p := &MidtransProvider{}
	if useProduction {
		p.client.New(serverKey, midtrans.Production)
	} else {
		p.client.New(serverKey, midtrans.Sandbox)
	}
	return p, nil
}

func (m *MidtransProvider) Name() model.PaymentGatewayProvider {
	return model.GatewayProviderMidtrans
}

func (m *MidtransProvider) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	// Snap menerima nominal utuh; amount disimpan dalam minor units.
	if params.Amount%100 != 0 {
		return nil, &ProviderError{
			Provider: model.GatewayProviderMidtrans,
			Message:  fmt.Sprintf("amount %d has a fractional part", params.Amount),
		}
	}
	gross := params.Amount / 100

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  params.ClientReference,
			GrossAmt: gross,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    truncate(params.Metadata["charge_id"], 50),
				Price: gross,
				Qty:   1,
				Name:  truncate(defaultString(params.Description, "Rent Payment"), 50),
			},
		},
		CustomField1: params.Metadata["charge_id"],
	}

	resp, mErr := m.client.CreateTransaction(req)
	if mErr != nil {
		return nil, &ProviderError{
			Provider: model.GatewayProviderMidtrans,
			Code:     strconv.Itoa(mErr.StatusCode),
			Message:  mErr.Message,
			Err:      mErr,
		}
	}
	return &CheckoutSession{ID: resp.Token, URL: resp.RedirectURL}, nil
}

/* =========================================================
   Utils
========================================================= */

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

func defaultString(s string, def string) string {
	if s == "" {
		return def
	}
	return s
}
