package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83/webhook"

	"rentpay_backend/internals/features/finance/payments/model"
)

const stripeCompletedPayload = `{
  "id": "evt_1",
  "object": "event",
  "api_version": "2020-08-27",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": "cs_test_1",
      "object": "checkout.session",
      "payment_intent": "pi_test_1",
      "metadata": {"payment_id": "7a0c7c36-7a43-4a43-9d8a-6b8a2a1c3f10", "charge_id": "c1"}
    }
  }
}`

func TestParseStripeEventWithoutSecret(t *testing.T) {
	ev, err := ParseStripeEvent([]byte(stripeCompletedPayload), "", "")
	require.NoError(t, err)

	assert.Equal(t, model.GatewayProviderStripe, ev.Provider)
	assert.Equal(t, "evt_1", ev.EventID)
	assert.Equal(t, model.EventCheckoutSessionCompleted, ev.Type)
	assert.Equal(t, "cs_test_1", ev.Object.ID)
	assert.Equal(t, "pi_test_1", ev.Object.PaymentIntent)
	assert.Equal(t, "7a0c7c36-7a43-4a43-9d8a-6b8a2a1c3f10", ev.Object.Metadata["payment_id"])
	assert.Equal(t, []byte(stripeCompletedPayload), ev.Payload)
}

func TestParseStripeEventPaymentIntentShapes(t *testing.T) {
	cases := map[string]struct {
		payload string
		want    string
	}{
		"expanded": {
			payload: `{"id":"evt_2","type":"checkout.session.completed","data":{"object":{"id":"cs_1","payment_intent":{"id":"pi_9","object":"payment_intent"}}}}`,
			want:    "pi_9",
		},
		"null": {
			payload: `{"id":"evt_3","type":"checkout.session.completed","data":{"object":{"id":"cs_1","payment_intent":null}}}`,
			want:    "",
		},
		"intent event": {
			payload: `{"id":"evt_4","type":"payment_intent.succeeded","data":{"object":{"id":"pi_4","object":"payment_intent"}}}`,
			want:    "",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ev, err := ParseStripeEvent([]byte(tc.payload), "", "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, ev.Object.PaymentIntent)
		})
	}

	ev, err := ParseStripeEvent([]byte(cases["intent event"].payload), "", "")
	require.NoError(t, err)
	assert.Equal(t, model.EventPaymentIntentSucceeded, ev.Type)
	assert.Equal(t, "pi_4", ev.Object.ID)
}

func TestParseStripeEventKeepsUnknownTypes(t *testing.T) {
	ev, err := ParseStripeEvent([]byte(`{"id":"evt_5","type":"charge.refunded","data":{"object":{}}}`), "", "")
	require.NoError(t, err)
	assert.Equal(t, "charge.refunded", ev.Type)
}

func TestParseStripeEventMalformed(t *testing.T) {
	_, err := ParseStripeEvent([]byte(`not json`), "", "")
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = ParseStripeEvent([]byte(`{"type":"checkout.session.completed"}`), "", "")
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

func TestParseStripeEventSigned(t *testing.T) {
	const secret = "whsec_test_secret"
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(stripeCompletedPayload),
		Secret:  secret,
	})

	ev, err := ParseStripeEvent(signed.Payload, signed.Header, secret)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", ev.EventID)
	assert.Equal(t, model.EventCheckoutSessionCompleted, ev.Type)
	assert.Equal(t, "pi_test_1", ev.Object.PaymentIntent)

	_, err = ParseStripeEvent(signed.Payload, signed.Header, "whsec_other")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = ParseStripeEvent(signed.Payload, "", secret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func midtransBody(status, fraud, signature string) []byte {
	return []byte(`{"order_id":"7a0c7c36-7a43-4a43-9d8a-6b8a2a1c3f10","status_code":"200","gross_amount":"1200.00",` +
		`"transaction_id":"tx-1","transaction_status":"` + status + `","fraud_status":"` + fraud + `","signature_key":"` + signature + `"}`)
}

func TestParseMidtransNotification(t *testing.T) {
	const key = "SB-Mid-server-test"
	sig := MidtransSignature("7a0c7c36-7a43-4a43-9d8a-6b8a2a1c3f10", "200", "1200.00", key)

	ev, err := ParseMidtransNotification(midtransBody("settlement", "", sig), key)
	require.NoError(t, err)
	assert.Equal(t, model.GatewayProviderMidtrans, ev.Provider)
	assert.Equal(t, "tx-1:settlement", ev.EventID)
	assert.Equal(t, model.EventCheckoutSessionCompleted, ev.Type)
	assert.Equal(t, "7a0c7c36-7a43-4a43-9d8a-6b8a2a1c3f10", ev.Object.Metadata["payment_id"])
	assert.Equal(t, "tx-1", ev.Object.PaymentIntent)
	assert.EqualValues(t, 120000, ev.Object.Amount)

	ev, err = ParseMidtransNotification(midtransBody("pending", "", sig), key)
	require.NoError(t, err)
	assert.Equal(t, "midtrans.pending", ev.Type)
	assert.Equal(t, "tx-1:pending", ev.EventID)
	assert.Empty(t, ev.Object.PaymentIntent)
}

func TestParseMidtransNotificationSignature(t *testing.T) {
	const key = "SB-Mid-server-test"

	_, err := ParseMidtransNotification(midtransBody("settlement", "", "deadbeef"), key)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// tanpa server key: tidak diverifikasi
	_, err = ParseMidtransNotification(midtransBody("settlement", "", "deadbeef"), "")
	assert.NoError(t, err)

	_, err = ParseMidtransNotification([]byte(`{"status_code":"200"}`), key)
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = ParseMidtransNotification([]byte(`{"order_id":"o-1","transaction_status":"settlement","gross_amount":"abc"}`), "")
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

func TestMidtransSignatureIsSHA512Hex(t *testing.T) {
	sig := MidtransSignature("order-1", "200", "10000.00", "key")
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, MidtransSignature("order-1", "200", "10000.00", "key"))
	assert.NotEqual(t, sig, MidtransSignature("order-1", "201", "10000.00", "key"))
}

func TestMidtransIsSettled(t *testing.T) {
	cases := []struct {
		status, fraud string
		want          bool
	}{
		{"settlement", "", true},
		{"capture", "accept", true},
		{"capture", "", false},
		{"capture", "challenge", false},
		{"pending", "", false},
		{"deny", "", false},
		{"expire", "", false},
		{"SETTLEMENT", "", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MidtransIsSettled(tc.status, tc.fraud), "%s/%s", tc.status, tc.fraud)
	}
}
