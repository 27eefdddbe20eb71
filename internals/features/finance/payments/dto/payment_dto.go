package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"rentpay_backend/internals/features/finance/payments/model"
	helper "rentpay_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type CheckoutRequest struct {
	ChargeID string `json:"charge_id" validate:"required,uuid"`
}

func (r *CheckoutRequest) Validate() error {
	return helper.Validate.Struct(r)
}

func (r *CheckoutRequest) ParsedChargeID() uuid.UUID {
	id, _ := uuid.Parse(r.ChargeID)
	return id
}

/* ===================== RESPONSES ===================== */

type CheckoutResponse struct {
	URL       string    `json:"url"`
	PaymentID uuid.UUID `json:"payment_id"`
}

type PaymentResponse struct {
	PaymentID                uuid.UUID                    `json:"payment_id"`
	PaymentChargeID          uuid.UUID                    `json:"payment_charge_id"`
	PaymentProvider          model.PaymentGatewayProvider `json:"payment_provider"`
	PaymentProviderPaymentID *string                      `json:"payment_provider_payment_id"`
	PaymentStatus            model.PaymentStatus          `json:"payment_status"`
	PaymentAmount            int64                        `json:"payment_amount"`
	PaymentAmountDisplay     string                       `json:"payment_amount_display"`
	PaymentPaidAt            *time.Time                   `json:"payment_paid_at"`
	PaymentCreatedAt         time.Time                    `json:"payment_created_at"`
}

func FromPaymentModel(m model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:                m.PaymentID,
		PaymentChargeID:          m.PaymentChargeID,
		PaymentProvider:          m.PaymentProvider,
		PaymentProviderPaymentID: m.PaymentProviderPaymentID,
		PaymentStatus:            m.PaymentStatus,
		PaymentAmount:            m.PaymentAmount,
		PaymentAmountDisplay:     helper.FormatMinor(m.PaymentAmount),
		PaymentPaidAt:            m.PaymentPaidAt,
		PaymentCreatedAt:         m.PaymentCreatedAt,
	}
}

func FromPaymentModels(rows []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromPaymentModel(r))
	}
	return out
}

type PaymentEventResponse struct {
	PaymentEventID         uuid.UUID                    `json:"payment_event_id"`
	PaymentEventProvider   model.PaymentGatewayProvider `json:"payment_event_provider"`
	PaymentEventExternalID string                       `json:"payment_event_external_id"`
	PaymentEventType       string                       `json:"payment_event_type"`
	PaymentEventPaymentID  *uuid.UUID                   `json:"payment_event_payment_id,omitempty"`
	PaymentEventPayload    datatypes.JSON               `json:"payment_event_payload,omitempty"`
	PaymentEventReceivedAt time.Time                    `json:"payment_event_received_at"`
}

// FromPaymentEventModels: payload hanya disertakan bila withPayload.
func FromPaymentEventModels(rows []model.PaymentEventModel, withPayload bool) []PaymentEventResponse {
	out := make([]PaymentEventResponse, 0, len(rows))
	for _, m := range rows {
		r := PaymentEventResponse{
			PaymentEventID:         m.PaymentEventID,
			PaymentEventProvider:   m.PaymentEventProvider,
			PaymentEventExternalID: m.PaymentEventExternalID,
			PaymentEventType:       m.PaymentEventType,
			PaymentEventPaymentID:  m.PaymentEventPaymentID,
			PaymentEventReceivedAt: m.PaymentEventReceivedAt,
		}
		if withPayload {
			r.PaymentEventPayload = m.PaymentEventPayload
		}
		out = append(out, r)
	}
	return out
}
