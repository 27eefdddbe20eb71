// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentModel: satu percobaan bayar sebuah charge lewat provider.
//   - Dibuat checkout dalam status pending.
//   - Setelah itu hanya diubah oleh webhook reconciler.
//   - Maksimal satu pending per charge (partial unique index ux_payments_charge_pending).
type PaymentModel struct {
	PaymentID       uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentChargeID uuid.UUID `gorm:"column:payment_charge_id;type:uuid;not null;index:idx_payments_charge_status,priority:1" json:"payment_charge_id"`

	PaymentProvider          PaymentGatewayProvider `gorm:"column:payment_provider;type:varchar(20);not null;default:'stripe'" json:"payment_provider"`
	PaymentProviderPaymentID *string                `gorm:"column:payment_provider_payment_id;size:255;index" json:"payment_provider_payment_id"`
	PaymentStatus            PaymentStatus          `gorm:"column:payment_status;type:varchar(16);not null;default:'pending';index:idx_payments_charge_status,priority:2" json:"payment_status"`

	// snapshot nominal charge saat checkout (immutable)
	PaymentAmount int64      `gorm:"column:payment_amount;not null" json:"payment_amount"`
	PaymentPaidAt *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	if m.PaymentStatus == "" {
		m.PaymentStatus = PaymentStatusPending
	}
	return nil
}
