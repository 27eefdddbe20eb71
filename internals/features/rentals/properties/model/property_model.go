package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropertyModel struct {
	PropertyID     uuid.UUID `gorm:"column:property_id;type:uuid;primaryKey" json:"property_id"`
	PropertyUserID uuid.UUID `gorm:"column:property_user_id;type:uuid;not null;index" json:"property_user_id"`

	PropertyName         string  `gorm:"column:property_name;size:255;not null" json:"property_name"`
	PropertyAddressLine1 *string `gorm:"column:property_address_line1;size:255" json:"property_address_line1,omitempty"`
	PropertyCity         *string `gorm:"column:property_city;size:255" json:"property_city,omitempty"`
	PropertyState        *string `gorm:"column:property_state;size:50" json:"property_state,omitempty"`
	PropertyPostalCode   *string `gorm:"column:property_postal_code;size:20" json:"property_postal_code,omitempty"`

	PropertyCreatedAt time.Time `gorm:"column:property_created_at;autoCreateTime" json:"property_created_at"`
	PropertyUpdatedAt time.Time `gorm:"column:property_updated_at;autoUpdateTime" json:"property_updated_at"`
}

func (PropertyModel) TableName() string { return "properties" }

func (m *PropertyModel) BeforeCreate(tx *gorm.DB) error {
	if m.PropertyID == uuid.Nil {
		m.PropertyID = uuid.New()
	}
	return nil
}
