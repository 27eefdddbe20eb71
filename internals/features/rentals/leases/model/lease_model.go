package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
)

type LeaseModel struct {
	LeaseID           uuid.UUID `gorm:"column:lease_id;type:uuid;primaryKey" json:"lease_id"`
	LeaseUnitID       uuid.UUID `gorm:"column:lease_unit_id;type:uuid;not null;index" json:"lease_unit_id"`
	LeaseTenantUserID uuid.UUID `gorm:"column:lease_tenant_user_id;type:uuid;not null;index" json:"lease_tenant_user_id"`

	LeaseRentAmount int64      `gorm:"column:lease_rent_amount;not null;check:lease_rent_amount > 0" json:"lease_rent_amount"`
	LeaseDueDay     int        `gorm:"column:lease_due_day;not null;check:lease_due_day BETWEEN 1 AND 28" json:"lease_due_day"`
	LeaseStartDate  time.Time  `gorm:"column:lease_start_date;type:date;not null" json:"lease_start_date"`
	LeaseEndDate    *time.Time `gorm:"column:lease_end_date;type:date" json:"lease_end_date,omitempty"`

	LeaseCreatedAt time.Time `gorm:"column:lease_created_at;autoCreateTime" json:"lease_created_at"`
	LeaseUpdatedAt time.Time `gorm:"column:lease_updated_at;autoUpdateTime" json:"lease_updated_at"`

	Charges []chargeModel.ChargeModel `gorm:"foreignKey:ChargeLeaseID;references:LeaseID" json:"charges,omitempty"`
}

func (LeaseModel) TableName() string { return "leases" }

func (m *LeaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.LeaseID == uuid.Nil {
		m.LeaseID = uuid.New()
	}
	return nil
}

// OwnedLeaseScope: lease → unit → property milik admin, sebagai predicate
// eksplisit (bukan traversal relasi).
func OwnedLeaseScope(adminID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN units ON units.unit_id = leases.lease_unit_id").
			Joins("JOIN properties ON properties.property_id = units.unit_property_id").
			Where("properties.property_user_id = ?", adminID)
	}
}
