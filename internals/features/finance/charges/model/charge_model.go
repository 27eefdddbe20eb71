package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChargeStatus string

const (
	ChargeStatusDue  ChargeStatus = "due"
	ChargeStatusPaid ChargeStatus = "paid"
	ChargeStatusVoid ChargeStatus = "void"
)

// ChargeModel: satu kewajiban bayar (mis. sewa 1 bulan) milik sebuah lease.
// Transisi yang sah hanya due → paid (webhook) dan due → void (admin).
type ChargeModel struct {
	ChargeID      uuid.UUID `gorm:"column:charge_id;type:uuid;primaryKey" json:"charge_id"`
	ChargeLeaseID uuid.UUID `gorm:"column:charge_lease_id;type:uuid;not null;index:idx_charges_lease_status,priority:1" json:"charge_lease_id"`

	ChargeAmount  int64        `gorm:"column:charge_amount;not null;check:charge_amount > 0" json:"charge_amount"`
	ChargeDueDate time.Time    `gorm:"column:charge_due_date;type:date;not null" json:"charge_due_date"`
	ChargeStatus  ChargeStatus `gorm:"column:charge_status;type:varchar(16);not null;default:'due';index:idx_charges_lease_status,priority:2" json:"charge_status"`

	ChargeCreatedAt time.Time `gorm:"column:charge_created_at;autoCreateTime" json:"charge_created_at"`
	ChargeUpdatedAt time.Time `gorm:"column:charge_updated_at;autoUpdateTime" json:"charge_updated_at"`
}

func (ChargeModel) TableName() string { return "charges" }

func (m *ChargeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ChargeID == uuid.Nil {
		m.ChargeID = uuid.New()
	}
	if m.ChargeStatus == "" {
		m.ChargeStatus = ChargeStatusDue
	}
	return nil
}

func (m *ChargeModel) IsPayable() bool { return m.ChargeStatus == ChargeStatusDue }
