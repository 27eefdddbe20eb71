package dto

import (
	"time"

	"github.com/google/uuid"

	"rentpay_backend/internals/features/rentals/units/model"
	"rentpay_backend/internals/features/rentals/units/service"
	helper "rentpay_backend/internals/helpers"
)

type CreateUnitRequest struct {
	PropertyID string  `json:"property_id" validate:"required,uuid"`
	Name       string  `json:"name" validate:"required,max=255"`
	Notes      *string `json:"notes" validate:"omitempty,max=255"`
}

func (r *CreateUnitRequest) Validate() error {
	return helper.Validate.Struct(r)
}

func (r CreateUnitRequest) ToInput() service.CreateUnitInput {
	pid, _ := uuid.Parse(r.PropertyID)
	return service.CreateUnitInput{PropertyID: pid, Name: r.Name, Notes: r.Notes}
}

type UpdateUnitRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Notes *string `json:"notes" validate:"omitempty,max=255"`
}

func (r *UpdateUnitRequest) Validate() error {
	return helper.Validate.Struct(r)
}

func (r UpdateUnitRequest) ToInput() service.UpdateUnitInput {
	return service.UpdateUnitInput{Name: r.Name, Notes: r.Notes}
}

type UnitResponse struct {
	UnitID         uuid.UUID `json:"unit_id"`
	UnitPropertyID uuid.UUID `json:"unit_property_id"`
	UnitName       string    `json:"unit_name"`
	UnitNotes      *string   `json:"unit_notes"`
	UnitCreatedAt  time.Time `json:"unit_created_at"`
	UnitUpdatedAt  time.Time `json:"unit_updated_at"`
}

func FromModel(m model.UnitModel) UnitResponse {
	return UnitResponse{
		UnitID:         m.UnitID,
		UnitPropertyID: m.UnitPropertyID,
		UnitName:       m.UnitName,
		UnitNotes:      m.UnitNotes,
		UnitCreatedAt:  m.UnitCreatedAt,
		UnitUpdatedAt:  m.UnitUpdatedAt,
	}
}

func FromModels(rows []model.UnitModel) []UnitResponse {
	out := make([]UnitResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
