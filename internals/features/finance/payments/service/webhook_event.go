package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"rentpay_backend/internals/features/finance/payments/model"
	helper "rentpay_backend/internals/helpers"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed webhook event")
)

// EventObject is the subset of the provider object the reconciler reads.
// Every field may be empty.
type EventObject struct {
	ID            string
	PaymentIntent string
	Metadata      map[string]string
	Amount        int64 // minor units, 0 kalau provider tidak mengirim
}

// WebhookEvent is a verified provider delivery, normalized across providers.
type WebhookEvent struct {
	Provider model.PaymentGatewayProvider
	EventID  string
	Type     string
	Object   EventObject
	Payload  []byte
}

/* =========================================================
   STRIPE
========================================================= */

var stripeEventTypes = map[string]string{
	string(stripe.EventTypeCheckoutSessionCompleted): model.EventCheckoutSessionCompleted,
	string(stripe.EventTypePaymentIntentSucceeded):   model.EventPaymentIntentSucceeded,
}

type rawStripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type rawStripeObject struct {
	ID            string          `json:"id"`
	PaymentIntent json.RawMessage `json:"payment_intent"`
	Metadata      map[string]any  `json:"metadata"`
}

// ParseStripeEvent verifies the Stripe-Signature header when secret is set.
// An empty secret means the environment is trusted and the body is parsed
// as-is.
func ParseStripeEvent(payload []byte, sigHeader, secret string) (*WebhookEvent, error) {
	var (
		eventID   string
		eventType string
		rawObject []byte
	)

	if secret != "" {
		ev, err := webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		eventID, eventType = ev.ID, string(ev.Type)
		if ev.Data != nil {
			rawObject = ev.Data.Raw
		}
	} else {
		var raw rawStripeEvent
		if err := sonic.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		eventID, eventType, rawObject = raw.ID, raw.Type, raw.Data.Object
	}

	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: missing event id", ErrMalformedEvent)
	}

	ev := &WebhookEvent{
		Provider: model.GatewayProviderStripe,
		EventID:  eventID,
		Type:     eventType,
		Payload:  payload,
	}
	if normalized, ok := stripeEventTypes[eventType]; ok {
		ev.Type = normalized
	}
	ev.Object = decodeStripeObject(rawObject)
	return ev, nil
}

// decodeStripeObject never fails: an unreadable object just resolves nothing.
func decodeStripeObject(raw []byte) EventObject {
	var obj rawStripeObject
	if len(raw) == 0 || sonic.Unmarshal(raw, &obj) != nil {
		return EventObject{}
	}

	out := EventObject{ID: obj.ID, Metadata: map[string]string{}}
	for k, v := range obj.Metadata {
		if v != nil {
			out.Metadata[k] = fmt.Sprint(v)
		}
	}

	// payment_intent: "pi_..." | {"id": "pi_..."} (expanded) | null
	pi := strings.TrimSpace(string(obj.PaymentIntent))
	switch {
	case strings.HasPrefix(pi, `"`):
		_ = sonic.Unmarshal(obj.PaymentIntent, &out.PaymentIntent)
	case strings.HasPrefix(pi, "{"):
		var expanded struct {
			ID string `json:"id"`
		}
		if sonic.Unmarshal(obj.PaymentIntent, &expanded) == nil {
			out.PaymentIntent = expanded.ID
		}
	}
	return out
}

/* =========================================================
   MIDTRANS (HTTP notification)
========================================================= */

type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// MidtransSignature = sha512(order_id + status_code + gross_amount + server_key).
func MidtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// ParseMidtransNotification verifies the signature_key (skipped when
// serverKey is empty) and maps the transaction status. A settled payment
// becomes a completed checkout keyed by the order id, which is the payment id.
func ParseMidtransNotification(payload []byte, serverKey string) (*WebhookEvent, error) {
	var n MidtransNotification
	if err := sonic.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if n.OrderID == "" || n.TransactionStatus == "" {
		return nil, fmt.Errorf("%w: missing order_id/transaction_status", ErrMalformedEvent)
	}

	if serverKey != "" {
		expected := MidtransSignature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(n.SignatureKey))) != 1 {
			return nil, ErrInvalidSignature
		}
	}

	var amount int64
	if n.GrossAmount != "" {
		a, err := helper.ParseMajorToMinor(n.GrossAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		amount = a
	}

	txID := n.TransactionID
	if txID == "" {
		txID = n.OrderID
	}

	ev := &WebhookEvent{
		Provider: model.GatewayProviderMidtrans,
		EventID:  txID + ":" + strings.ToLower(n.TransactionStatus),
		Type:     "midtrans." + strings.ToLower(n.TransactionStatus),
		Payload:  payload,
		Object: EventObject{
			ID:       n.OrderID,
			Metadata: map[string]string{"payment_id": n.OrderID},
			Amount:   amount,
		},
	}
	if MidtransIsSettled(n.TransactionStatus, n.FraudStatus) {
		ev.Type = model.EventCheckoutSessionCompleted
		ev.Object.PaymentIntent = n.TransactionID
	}
	return ev, nil
}

// MidtransIsSettled: settlement, atau capture dengan fraud_status accept.
func MidtransIsSettled(transactionStatus, fraudStatus string) bool {
	ts := strings.ToLower(transactionStatus)
	fraud := strings.ToLower(fraudStatus)

	switch ts {
	case "settlement":
		return true
	case "capture":
		return fraud == "accept"
	}
	return false
}
