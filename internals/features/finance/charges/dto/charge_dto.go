package dto

import (
	"time"

	"github.com/google/uuid"

	"rentpay_backend/internals/features/finance/charges/model"
	helper "rentpay_backend/internals/helpers"
	"rentpay_backend/internals/helpers/dbtime"
)

/* ===================== REQUESTS ===================== */

// paid sengaja tidak diterima: hanya webhook yang boleh menandai lunas.
type CreateChargeRequest struct {
	LeaseID string  `json:"lease_id" validate:"required,uuid"`
	Amount  int64   `json:"amount" validate:"required,gt=0"`
	DueDate string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	Status  *string `json:"status" validate:"omitempty,oneof=due void"`
}

func (r *CreateChargeRequest) Validate() error {
	return helper.Validate.Struct(r)
}

func (r *CreateChargeRequest) ParsedLeaseID() uuid.UUID {
	id, _ := uuid.Parse(r.LeaseID)
	return id
}

func (r *CreateChargeRequest) ParsedDueDate() time.Time {
	t, _ := dbtime.ParseDate(r.DueDate)
	return t
}

func (r *CreateChargeRequest) StatusOrDefault() model.ChargeStatus {
	if r.Status == nil || *r.Status == "" {
		return model.ChargeStatusDue
	}
	return model.ChargeStatus(*r.Status)
}

/* ===================== RESPONSES ===================== */

type ChargeResponse struct {
	ChargeID            uuid.UUID          `json:"charge_id"`
	ChargeLeaseID       uuid.UUID          `json:"charge_lease_id"`
	ChargeAmount        int64              `json:"charge_amount"`
	ChargeAmountDisplay string             `json:"charge_amount_display"`
	ChargeDueDate       string             `json:"charge_due_date"`
	ChargeStatus        model.ChargeStatus `json:"charge_status"`
	ChargeCreatedAt     time.Time          `json:"charge_created_at"`
}

func FromModel(m model.ChargeModel) ChargeResponse {
	return ChargeResponse{
		ChargeID:            m.ChargeID,
		ChargeLeaseID:       m.ChargeLeaseID,
		ChargeAmount:        m.ChargeAmount,
		ChargeAmountDisplay: helper.FormatMinor(m.ChargeAmount),
		ChargeDueDate:       dbtime.FormatDate(m.ChargeDueDate),
		ChargeStatus:        m.ChargeStatus,
		ChargeCreatedAt:     m.ChargeCreatedAt,
	}
}

func FromModels(rows []model.ChargeModel) []ChargeResponse {
	out := make([]ChargeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

// AdminChargeRow: charge + konteks lease/unit/property/tenant (hasil join).
type AdminChargeRow struct {
	model.ChargeModel
	UnitID       uuid.UUID `gorm:"column:unit_id"`
	UnitName     string    `gorm:"column:unit_name"`
	PropertyID   uuid.UUID `gorm:"column:property_id"`
	PropertyName string    `gorm:"column:property_name"`
	TenantID     uuid.UUID `gorm:"column:tenant_id"`
	TenantName   string    `gorm:"column:tenant_name"`
	TenantEmail  string    `gorm:"column:tenant_email"`
}

type AdminChargeResponse struct {
	ChargeResponse
	Unit     namedRef `json:"unit"`
	Property namedRef `json:"property"`
	Tenant   struct {
		ID    uuid.UUID `json:"id"`
		Name  string    `json:"name"`
		Email string    `json:"email"`
	} `json:"tenant"`
}

type namedRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func FromAdminRow(r AdminChargeRow) AdminChargeResponse {
	out := AdminChargeResponse{ChargeResponse: FromModel(r.ChargeModel)}
	out.Unit = namedRef{ID: r.UnitID, Name: r.UnitName}
	out.Property = namedRef{ID: r.PropertyID, Name: r.PropertyName}
	out.Tenant.ID = r.TenantID
	out.Tenant.Name = r.TenantName
	out.Tenant.Email = r.TenantEmail
	return out
}

func FromAdminRows(rows []AdminChargeRow) []AdminChargeResponse {
	out := make([]AdminChargeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromAdminRow(r))
	}
	return out
}
