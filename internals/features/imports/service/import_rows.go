package service

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	helper "rentpay_backend/internals/helpers"
	"rentpay_backend/internals/helpers/dbtime"
	"rentpay_backend/internals/helpers/tabular"
)

var (
	UnitHeaders   = []string{"property_id", "name", "notes"}
	LeaseHeaders  = []string{"unit_id", "tenant_user_id", "rent_amount", "due_day", "start_date", "end_date"}
	ChargeHeaders = []string{"lease_id", "amount", "due_date", "status"}
)

type unitRow struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,max=255"`
	Notes      string `json:"notes" validate:"omitempty,max=255"`
}

type leaseRow struct {
	UnitID       string `json:"unit_id" validate:"required,uuid"`
	TenantUserID string `json:"tenant_user_id" validate:"required,uuid"`
	RentAmount   string `json:"rent_amount" validate:"required,number"`
	DueDay       string `json:"due_day" validate:"required,number"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type chargeRow struct {
	LeaseID string `json:"lease_id" validate:"required,uuid"`
	Amount  string `json:"amount" validate:"required,number"`
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
	Status  string `json:"status" validate:"omitempty,oneof=due void"`
}

func validateRow(v any) []string {
	err := helper.Validate.Struct(v)
	if err == nil {
		return nil
	}
	if m, ok := helper.ValidationErrorsToMap(err); ok {
		return helper.Messages(m)
	}
	return []string{err.Error()}
}

func toUnitRow(r tabular.Row) unitRow {
	return unitRow{PropertyID: r.Get("property_id"), Name: r.Get("name"), Notes: r.Get("notes")}
}

func toLeaseRow(r tabular.Row) leaseRow {
	return leaseRow{
		UnitID:       r.Get("unit_id"),
		TenantUserID: r.Get("tenant_user_id"),
		RentAmount:   r.Get("rent_amount"),
		DueDay:       r.Get("due_day"),
		StartDate:    r.Get("start_date"),
		EndDate:      r.Get("end_date"),
	}
}

func toChargeRow(r tabular.Row) chargeRow {
	return chargeRow{
		LeaseID: r.Get("lease_id"),
		Amount:  r.Get("amount"),
		DueDate: r.Get("due_date"),
		Status:  r.Get("status"),
	}
}

func mustUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}

func mustDate(s string) time.Time {
	t, _ := dbtime.ParseDate(s)
	return t
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
