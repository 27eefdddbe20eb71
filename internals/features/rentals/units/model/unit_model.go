package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitModel struct {
	UnitID         uuid.UUID `gorm:"column:unit_id;type:uuid;primaryKey" json:"unit_id"`
	UnitPropertyID uuid.UUID `gorm:"column:unit_property_id;type:uuid;not null;index" json:"unit_property_id"`

	UnitName  string  `gorm:"column:unit_name;size:255;not null" json:"unit_name"`
	UnitNotes *string `gorm:"column:unit_notes;size:255" json:"unit_notes,omitempty"`

	UnitCreatedAt time.Time `gorm:"column:unit_created_at;autoCreateTime" json:"unit_created_at"`
	UnitUpdatedAt time.Time `gorm:"column:unit_updated_at;autoUpdateTime" json:"unit_updated_at"`
}

func (UnitModel) TableName() string { return "units" }

func (m *UnitModel) BeforeCreate(tx *gorm.DB) error {
	if m.UnitID == uuid.Nil {
		m.UnitID = uuid.New()
	}
	return nil
}

// OwnedUnitScope membatasi query units ke properti milik admin tertentu.
// Unit milik admin lain diperlakukan sama dengan unit yang tidak ada.
func OwnedUnitScope(adminID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("units.unit_property_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Table("properties").
				Select("property_id").
				Where("property_user_id = ?", adminID))
	}
}
