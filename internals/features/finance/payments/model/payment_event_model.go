// file: internals/features/finance/payments/model/payment_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentEventModel: ledger webhook dari provider.
//   - (provider, external_id) unik → kunci idempotensi.
//   - Write-once: tidak pernah di-update.
type PaymentEventModel struct {
	PaymentEventID uuid.UUID `gorm:"column:payment_event_id;type:uuid;primaryKey" json:"payment_event_id"`

	PaymentEventProvider   PaymentGatewayProvider `gorm:"column:payment_event_provider;type:varchar(20);not null;uniqueIndex:ux_payment_events_provider_external,priority:1" json:"payment_event_provider"`
	PaymentEventExternalID string                 `gorm:"column:payment_event_external_id;size:255;not null;uniqueIndex:ux_payment_events_provider_external,priority:2" json:"payment_event_external_id"`
	PaymentEventType       string                 `gorm:"column:payment_event_type;size:100;not null;index" json:"payment_event_type"`

	// payment yang berhasil di-resolve saat event diterima (audit saja)
	PaymentEventPaymentID *uuid.UUID `gorm:"column:payment_event_payment_id;type:uuid;index" json:"payment_event_payment_id,omitempty"`

	PaymentEventPayload datatypes.JSON `gorm:"column:payment_event_payload" json:"payment_event_payload"`

	PaymentEventReceivedAt time.Time `gorm:"column:payment_event_received_at;not null" json:"payment_event_received_at"`
}

func (PaymentEventModel) TableName() string { return "payment_events" }

func (m *PaymentEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentEventID == uuid.Nil {
		m.PaymentEventID = uuid.New()
	}
	if m.PaymentEventReceivedAt.IsZero() {
		m.PaymentEventReceivedAt = time.Now().UTC()
	}
	return nil
}
