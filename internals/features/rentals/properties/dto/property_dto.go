package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"rentpay_backend/internals/features/rentals/properties/model"
	helper "rentpay_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type CreatePropertyRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	AddressLine1 *string `json:"address_line1" validate:"omitempty,max=255"`
	City         *string `json:"city" validate:"omitempty,max=255"`
	State        *string `json:"state" validate:"omitempty,max=50"`
	PostalCode   *string `json:"postal_code" validate:"omitempty,max=20"`
}

func (r *CreatePropertyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.AddressLine1 = trimPtr(r.AddressLine1)
	r.City = trimPtr(r.City)
	r.State = trimPtr(r.State)
	r.PostalCode = trimPtr(r.PostalCode)
}

func (r *CreatePropertyRequest) Validate() error {
	return helper.Validate.Struct(r)
}

func (r CreatePropertyRequest) ToModel(ownerID uuid.UUID) model.PropertyModel {
	return model.PropertyModel{
		PropertyUserID:       ownerID,
		PropertyName:         r.Name,
		PropertyAddressLine1: r.AddressLine1,
		PropertyCity:         r.City,
		PropertyState:        r.State,
		PropertyPostalCode:   r.PostalCode,
	}
}

// UpdatePropertyRequest: PATCH parsial, field nil tidak diubah.
type UpdatePropertyRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	AddressLine1 *string `json:"address_line1" validate:"omitempty,max=255"`
	City         *string `json:"city" validate:"omitempty,max=255"`
	State        *string `json:"state" validate:"omitempty,max=50"`
	PostalCode   *string `json:"postal_code" validate:"omitempty,max=20"`
}

func (r *UpdatePropertyRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return helper.NewFieldError("name", "The name field is required.")
	}
	return helper.Validate.Struct(r)
}

func (r UpdatePropertyRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["property_name"] = strings.TrimSpace(*r.Name)
	}
	if r.AddressLine1 != nil {
		m["property_address_line1"] = trimPtr(r.AddressLine1)
	}
	if r.City != nil {
		m["property_city"] = trimPtr(r.City)
	}
	if r.State != nil {
		m["property_state"] = trimPtr(r.State)
	}
	if r.PostalCode != nil {
		m["property_postal_code"] = trimPtr(r.PostalCode)
	}
	return m
}

/* ===================== RESPONSES ===================== */

type PropertyResponse struct {
	PropertyID           uuid.UUID `json:"property_id"`
	PropertyName         string    `json:"property_name"`
	PropertyAddressLine1 *string   `json:"property_address_line1"`
	PropertyCity         *string   `json:"property_city"`
	PropertyState        *string   `json:"property_state"`
	PropertyPostalCode   *string   `json:"property_postal_code"`
	PropertyUnitsCount   *int64    `json:"property_units_count,omitempty"`
	PropertyCreatedAt    time.Time `json:"property_created_at"`
	PropertyUpdatedAt    time.Time `json:"property_updated_at"`
}

func FromModel(m model.PropertyModel) PropertyResponse {
	return PropertyResponse{
		PropertyID:           m.PropertyID,
		PropertyName:         m.PropertyName,
		PropertyAddressLine1: m.PropertyAddressLine1,
		PropertyCity:         m.PropertyCity,
		PropertyState:        m.PropertyState,
		PropertyPostalCode:   m.PropertyPostalCode,
		PropertyCreatedAt:    m.PropertyCreatedAt,
		PropertyUpdatedAt:    m.PropertyUpdatedAt,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
