package dto

import (
	"time"

	"github.com/google/uuid"

	chargeDTO "rentpay_backend/internals/features/finance/charges/dto"
	"rentpay_backend/internals/features/rentals/leases/model"
	"rentpay_backend/internals/features/rentals/leases/service"
	helper "rentpay_backend/internals/helpers"
	"rentpay_backend/internals/helpers/dbtime"
)

/* ===================== REQUESTS ===================== */

type CreateLeaseRequest struct {
	UnitID       string  `json:"unit_id" validate:"required,uuid"`
	TenantUserID string  `json:"tenant_user_id" validate:"required,uuid"`
	RentAmount   int64   `json:"rent_amount" validate:"required,gt=0"`
	DueDay       int     `json:"due_day" validate:"required,min=1,max=28"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CreateLeaseRequest) Validate() error {
	return helper.Validate.Struct(r)
}

// ToInput dipanggil setelah Validate, jadi parse di sini tidak gagal.
func (r CreateLeaseRequest) ToInput() service.CreateLeaseInput {
	unitID, _ := uuid.Parse(r.UnitID)
	tenantID, _ := uuid.Parse(r.TenantUserID)
	start, _ := dbtime.ParseDate(r.StartDate)
	end, _ := dbtime.ParseDatePtr(r.EndDate)
	return service.CreateLeaseInput{
		UnitID:       unitID,
		TenantUserID: tenantID,
		RentAmount:   r.RentAmount,
		DueDay:       r.DueDay,
		StartDate:    start,
		EndDate:      end,
	}
}

// UpdateLeaseRequest: end_date "" (string kosong) menghapus end date.
type UpdateLeaseRequest struct {
	RentAmount *int64  `json:"rent_amount" validate:"omitempty,gt=0"`
	DueDay     *int    `json:"due_day" validate:"omitempty,min=1,max=28"`
	StartDate  *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateLeaseRequest) Validate() error {
	return helper.Validate.Struct(r)
}

func (r UpdateLeaseRequest) ToInput() service.UpdateLeaseInput {
	in := service.UpdateLeaseInput{RentAmount: r.RentAmount, DueDay: r.DueDay}
	if r.StartDate != nil {
		if t, err := dbtime.ParseDate(*r.StartDate); err == nil {
			in.StartDate = &t
		}
	}
	if r.EndDate != nil {
		if *r.EndDate == "" {
			in.ClearEnd = true
		} else if t, err := dbtime.ParseDate(*r.EndDate); err == nil {
			in.EndDate = &t
		}
	}
	return in
}

/* ===================== RESPONSES ===================== */

type LeaseResponse struct {
	LeaseID           uuid.UUID                  `json:"lease_id"`
	LeaseUnitID       uuid.UUID                  `json:"lease_unit_id"`
	LeaseTenantUserID uuid.UUID                  `json:"lease_tenant_user_id"`
	LeaseRentAmount   int64                      `json:"lease_rent_amount"`
	LeaseDueDay       int                        `json:"lease_due_day"`
	LeaseStartDate    string                     `json:"lease_start_date"`
	LeaseEndDate      *string                    `json:"lease_end_date"`
	LeaseCreatedAt    time.Time                  `json:"lease_created_at"`
	Charges           []chargeDTO.ChargeResponse `json:"charges"`
}

func FromModel(m model.LeaseModel) LeaseResponse {
	return LeaseResponse{
		LeaseID:           m.LeaseID,
		LeaseUnitID:       m.LeaseUnitID,
		LeaseTenantUserID: m.LeaseTenantUserID,
		LeaseRentAmount:   m.LeaseRentAmount,
		LeaseDueDay:       m.LeaseDueDay,
		LeaseStartDate:    dbtime.FormatDate(m.LeaseStartDate),
		LeaseEndDate:      dbtime.FormatDatePtr(m.LeaseEndDate),
		LeaseCreatedAt:    m.LeaseCreatedAt,
		Charges:           chargeDTO.FromModels(m.Charges),
	}
}

func FromModels(rows []model.LeaseModel) []LeaseResponse {
	out := make([]LeaseResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
