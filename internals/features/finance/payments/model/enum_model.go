package model

type PaymentStatus string
type PaymentGatewayProvider string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

const (
	GatewayProviderStripe   PaymentGatewayProvider = "stripe"
	GatewayProviderMidtrans PaymentGatewayProvider = "midtrans"
)

// Event types yang dipahami reconciler (sudah dinormalisasi dari format
// masing-masing provider). Tipe lain hanya dicatat.
const (
	EventCheckoutSessionCompleted = "checkout_session_completed"
	EventPaymentIntentSucceeded   = "payment_intent_succeeded"
)
