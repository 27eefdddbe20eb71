package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	chargeService "rentpay_backend/internals/features/finance/charges/service"
	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	leaseService "rentpay_backend/internals/features/rentals/leases/service"
	unitModel "rentpay_backend/internals/features/rentals/units/model"
	unitService "rentpay_backend/internals/features/rentals/units/service"
	authRepo "rentpay_backend/internals/features/users/auth/repository"
	helpersAuth "rentpay_backend/internals/helpers/auth"
	"rentpay_backend/internals/helpers/dbtime"
	"rentpay_backend/internals/helpers/tabular"
)

var errForbidden = fiber.NewError(fiber.StatusForbidden, "Forbidden.")

// ImportService: semua baris divalidasi dulu; satu baris gagal = tidak ada
// yang disimpan. Insert berjalan dalam satu transaksi.
type ImportService struct {
	DB *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{DB: db}
}

/* =========================================================
   UNITS
========================================================= */

func (s *ImportService) ImportUnits(ctx context.Context, actor helpersAuth.Actor, t *tabular.Table) (int, []tabular.RowError, error) {
	if !actor.IsAdmin() {
		return 0, nil, errForbidden
	}
	db := s.DB.WithContext(ctx)

	var rowErrs []tabular.RowError
	for _, r := range t.Rows {
		row := toUnitRow(r)
		if msgs := validateRow(row); len(msgs) > 0 {
			rowErrs = append(rowErrs, tabular.RowError{Row: r.Line, Errors: msgs})
			continue
		}
		ok, err := unitService.PropertyOwned(db, actor.ID, mustUUID(row.PropertyID))
		if err != nil {
			return 0, nil, err
		}
		if !ok {
			rowErrs = append(rowErrs, tabular.RowError{Row: r.Line, Errors: []string{"Property not found for admin."}})
		}
	}
	if len(rowErrs) > 0 {
		return 0, rowErrs, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, r := range t.Rows {
			row := toUnitRow(r)
			u := unitModel.UnitModel{
				UnitPropertyID: mustUUID(row.PropertyID),
				UnitName:       row.Name,
				UnitNotes:      nonEmpty(row.Notes),
			}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	log.Printf("[INFO] import units admin=%s rows=%d", actor.ID, len(t.Rows))
	return len(t.Rows), nil, nil
}

/* =========================================================
   LEASES (lewat LeaseService → charge pertama ikut dibuat)
========================================================= */

func (s *ImportService) ImportLeases(ctx context.Context, actor helpersAuth.Actor, t *tabular.Table) (int, []tabular.RowError, error) {
	if !actor.IsAdmin() {
		return 0, nil, errForbidden
	}
	db := s.DB.WithContext(ctx)

	inputs := make([]leaseService.CreateLeaseInput, 0, len(t.Rows))
	var rowErrs []tabular.RowError
	for _, r := range t.Rows {
		row := toLeaseRow(r)
		msgs := validateRow(row)
		if len(msgs) > 0 {
			rowErrs = append(rowErrs, tabular.RowError{Row: r.Line, Errors: msgs})
			continue
		}

		rent, _ := parseInt(row.RentAmount)
		dueDay, _ := parseInt(row.DueDay)
		start := mustDate(row.StartDate)
		var end *time.Time
		if row.EndDate != "" {
			e := mustDate(row.EndDate)
			end = &e
		}
		if rent < 1 {
			msgs = append(msgs, "The rent_amount must be at least 1.")
		}
		if dueDay < leaseService.MinDueDay || dueDay > leaseService.MaxDueDay {
			msgs = append(msgs, "The due_day must be between 1 and 28.")
		}
		if end != nil && end.Before(start) {
			msgs = append(msgs, "The end_date must be a date after or equal to start_date.")
		}
		if len(msgs) > 0 {
			rowErrs = append(rowErrs, tabular.RowError{Row: r.Line, Errors: msgs})
			continue
		}

		unitID, tenantID := mustUUID(row.UnitID), mustUUID(row.TenantUserID)
		var n int64
		if err := db.Model(&unitModel.UnitModel{}).
			Scopes(unitModel.OwnedUnitScope(actor.ID)).
			Where("units.unit_id = ?", unitID).
			Count(&n).Error; err != nil {
			return 0, nil, err
		}
		if n == 0 {
			msgs = append(msgs, "Unit not found for admin.")
		}
		if _, err := authRepo.FindTenantByID(db, tenantID); err != nil {
			msgs = append(msgs, "Tenant user not found.")
		}
		if len(msgs) > 0 {
			rowErrs = append(rowErrs, tabular.RowError{Row: r.Line, Errors: msgs})
			continue
		}

		inputs = append(inputs, leaseService.CreateLeaseInput{
			UnitID:       unitID,
			TenantUserID: tenantID,
			RentAmount:   rent,
			DueDay:       int(dueDay),
			StartDate:    start,
			EndDate:      end,
		})
	}
	if len(rowErrs) > 0 {
		return 0, rowErrs, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		svc := leaseService.NewLeaseService(tx)
		for _, in := range inputs {
			if _, err := svc.CreateLease(ctx, actor, in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	log.Printf("[INFO] import leases admin=%s rows=%d", actor.ID, len(inputs))
	return len(inputs), nil, nil
}

/* =========================================================
   CHARGES (status paid ditolak)
========================================================= */

func (s *ImportService) ImportCharges(ctx context.Context, actor helpersAuth.Actor, t *tabular.Table) (int, []tabular.RowError, error) {
	if !actor.IsAdmin() {
		return 0, nil, errForbidden
	}
	db := s.DB.WithContext(ctx)

	inputs := make([]chargeService.CreateChargeInput, 0, len(t.Rows))
	var rowErrs []tabular.RowError
	for _, r := range t.Rows {
		row := toChargeRow(r)
		row.Status = strings.ToLower(row.Status)
		msgs := validateRow(row)
		if len(msgs) > 0 {
			rowErrs = append(rowErrs, tabular.RowError{Row: r.Line, Errors: msgs})
			continue
		}

		amount, _ := parseInt(row.Amount)
		if amount < 1 {
			rowErrs = append(rowErrs, tabular.RowError{Row: r.Line, Errors: []string{"The amount must be at least 1."}})
			continue
		}

		leaseID := mustUUID(row.LeaseID)
		var n int64
		if err := db.Model(&leaseModel.LeaseModel{}).
			Scopes(leaseModel.OwnedLeaseScope(actor.ID)).
			Where("leases.lease_id = ?", leaseID).
			Count(&n).Error; err != nil {
			return 0, nil, err
		}
		if n == 0 {
			rowErrs = append(rowErrs, tabular.RowError{Row: r.Line, Errors: []string{"Lease not found for admin."}})
			continue
		}

		status := chargeModel.ChargeStatusDue
		if row.Status != "" {
			status = chargeModel.ChargeStatus(row.Status)
		}
		inputs = append(inputs, chargeService.CreateChargeInput{
			LeaseID: leaseID,
			Amount:  amount,
			DueDate: dbtime.DateOnly(mustDate(row.DueDate)),
			Status:  status,
		})
	}
	if len(rowErrs) > 0 {
		return 0, rowErrs, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		svc := chargeService.NewChargeService(tx)
		for _, in := range inputs {
			if _, err := svc.CreateCharge(ctx, actor, in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	log.Printf("[INFO] import charges admin=%s rows=%d", actor.ID, len(inputs))
	return len(inputs), nil, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
