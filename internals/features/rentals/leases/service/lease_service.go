package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	paymentModel "rentpay_backend/internals/features/finance/payments/model"
	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	unitModel "rentpay_backend/internals/features/rentals/units/model"
	authRepo "rentpay_backend/internals/features/users/auth/repository"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
	"rentpay_backend/internals/helpers/dbtime"
)

var (
	errLeaseNotFound = fiber.NewError(fiber.StatusNotFound, "Lease not found.")
	errUnitNotFound  = fiber.NewError(fiber.StatusNotFound, "Unit not found.")
	errForbidden     = fiber.NewError(fiber.StatusForbidden, "Forbidden.")
)

type CreateLeaseInput struct {
	UnitID       uuid.UUID
	TenantUserID uuid.UUID
	RentAmount   int64
	DueDay       int
	StartDate    time.Time
	EndDate      *time.Time
}

type UpdateLeaseInput struct {
	RentAmount *int64
	DueDay     *int
	StartDate  *time.Time
	EndDate    *time.Time
	ClearEnd   bool
}

type LeaseService struct {
	DB *gorm.DB
}

func NewLeaseService(db *gorm.DB) *LeaseService {
	return &LeaseService{DB: db}
}

/* =========================================================
   CREATE: lease + seed charge dalam satu transaksi
========================================================= */

func (s *LeaseService) CreateLease(ctx context.Context, actor helpersAuth.Actor, in CreateLeaseInput) (*leaseModel.LeaseModel, error) {
	if !actor.IsAdmin() {
		return nil, errForbidden
	}
	if err := validateTerms(in.RentAmount, in.DueDay, in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	var lease leaseModel.LeaseModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnitOwned(tx, actor.ID, in.UnitID); err != nil {
			return err
		}
		if _, err := authRepo.FindTenantByID(tx, in.TenantUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewFieldError("tenant_user_id", "The selected tenant_user_id is invalid.")
			}
			return err
		}

		lease = leaseModel.LeaseModel{
			LeaseUnitID:       in.UnitID,
			LeaseTenantUserID: in.TenantUserID,
			LeaseRentAmount:   in.RentAmount,
			LeaseDueDay:       in.DueDay,
			LeaseStartDate:    dbtime.DateOnly(in.StartDate),
			LeaseEndDate:      dateOnlyPtr(in.EndDate),
		}
		if err := tx.Create(&lease).Error; err != nil {
			return err
		}

		charge := chargeModel.ChargeModel{
			ChargeLeaseID: lease.LeaseID,
			ChargeAmount:  in.RentAmount,
			ChargeDueDate: FirstDueDate(in.StartDate, in.DueDay),
			ChargeStatus:  chargeModel.ChargeStatusDue,
		}
		if err := tx.Create(&charge).Error; err != nil {
			return err
		}
		lease.Charges = []chargeModel.ChargeModel{charge}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] lease created id=%s unit=%s first_due=%s",
		lease.LeaseID, lease.LeaseUnitID, dbtime.FormatDate(lease.Charges[0].ChargeDueDate))
	return &lease, nil
}

/* =========================================================
   READ
========================================================= */

// GetLease: admin pemilik atau tenant lease tersebut. Selain itu 404.
func (s *LeaseService) GetLease(ctx context.Context, actor helpersAuth.Actor, id uuid.UUID) (*leaseModel.LeaseModel, error) {
	var lease leaseModel.LeaseModel
	q := s.DB.WithContext(ctx).Model(&leaseModel.LeaseModel{}).
		Preload("Charges", func(db *gorm.DB) *gorm.DB { return db.Order("charge_due_date ASC") })
	q = scopeForActor(q, actor)

	if err := q.Where("leases.lease_id = ?", id).Take(&lease).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errLeaseNotFound
		}
		return nil, err
	}
	return &lease, nil
}

func (s *LeaseService) ListLeases(ctx context.Context, actor helpersAuth.Actor, offset, limit int) ([]leaseModel.LeaseModel, int64, error) {
	base := func() *gorm.DB {
		return scopeForActor(s.DB.WithContext(ctx).Model(&leaseModel.LeaseModel{}), actor)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []leaseModel.LeaseModel
	err := base().
		Preload("Charges", func(db *gorm.DB) *gorm.DB { return db.Order("charge_due_date ASC") }).
		Order("leases.lease_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

/* =========================================================
   UPDATE (tidak membuat ulang charge)
========================================================= */

func (s *LeaseService) UpdateLease(ctx context.Context, actor helpersAuth.Actor, id uuid.UUID, in UpdateLeaseInput) (*leaseModel.LeaseModel, error) {
	if !actor.IsAdmin() {
		return nil, errForbidden
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lease leaseModel.LeaseModel
		if err := tx.Model(&leaseModel.LeaseModel{}).
			Scopes(leaseModel.OwnedLeaseScope(actor.ID)).
			Where("leases.lease_id = ?", id).
			Take(&lease).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errLeaseNotFound
			}
			return err
		}

		if in.RentAmount != nil {
			lease.LeaseRentAmount = *in.RentAmount
		}
		if in.DueDay != nil {
			lease.LeaseDueDay = *in.DueDay
		}
		if in.StartDate != nil {
			lease.LeaseStartDate = dbtime.DateOnly(*in.StartDate)
		}
		if in.ClearEnd {
			lease.LeaseEndDate = nil
		} else if in.EndDate != nil {
			lease.LeaseEndDate = dateOnlyPtr(in.EndDate)
		}
		if err := validateTerms(lease.LeaseRentAmount, lease.LeaseDueDay, lease.LeaseStartDate, lease.LeaseEndDate); err != nil {
			return err
		}

		return tx.Model(&leaseModel.LeaseModel{}).
			Where("lease_id = ?", lease.LeaseID).
			Updates(map[string]any{
				"lease_rent_amount": lease.LeaseRentAmount,
				"lease_due_day":     lease.LeaseDueDay,
				"lease_start_date":  lease.LeaseStartDate,
				"lease_end_date":    lease.LeaseEndDate,
				"lease_updated_at":  time.Now().UTC(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetLease(ctx, actor, id)
}

/* =========================================================
   DELETE (cascade charges → payments)
========================================================= */

func (s *LeaseService) DeleteLease(ctx context.Context, actor helpersAuth.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return errForbidden
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&leaseModel.LeaseModel{}).
			Scopes(leaseModel.OwnedLeaseScope(actor.ID)).
			Where("leases.lease_id = ?", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return errLeaseNotFound
		}
		return DeleteLeasesCascade(tx, []uuid.UUID{id})
	})
}

// DeleteLeasesCascade menghapus leases beserta charges & payments-nya.
// Dipanggil di dalam transaksi (juga oleh delete unit/property).
func DeleteLeasesCascade(tx *gorm.DB, leaseIDs []uuid.UUID) error {
	if len(leaseIDs) == 0 {
		return nil
	}
	chargeIDs := tx.Session(&gorm.Session{NewDB: true}).
		Model(&chargeModel.ChargeModel{}).
		Select("charge_id").
		Where("charge_lease_id IN ?", leaseIDs)

	if err := tx.Where("payment_charge_id IN (?)", chargeIDs).Delete(&paymentModel.PaymentModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("charge_lease_id IN ?", leaseIDs).Delete(&chargeModel.ChargeModel{}).Error; err != nil {
		return err
	}
	return tx.Where("lease_id IN ?", leaseIDs).Delete(&leaseModel.LeaseModel{}).Error
}

/* =========================================================
   Helpers
========================================================= */

func ensureUnitOwned(tx *gorm.DB, adminID, unitID uuid.UUID) error {
	var n int64
	if err := tx.Model(&unitModel.UnitModel{}).
		Scopes(unitModel.OwnedUnitScope(adminID)).
		Where("units.unit_id = ?", unitID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errUnitNotFound
	}
	return nil
}

func scopeForActor(q *gorm.DB, actor helpersAuth.Actor) *gorm.DB {
	switch {
	case actor.IsAdmin():
		return q.Scopes(leaseModel.OwnedLeaseScope(actor.ID))
	case actor.IsTenant():
		return q.Where("leases.lease_tenant_user_id = ?", actor.ID)
	default:
		return q.Where("1 = 0")
	}
}

func validateTerms(rent int64, dueDay int, start time.Time, end *time.Time) error {
	fe := helper.FieldErrors{}
	if rent <= 0 {
		fe.Add("rent_amount", "The rent_amount must be at least 1.")
	}
	if dueDay < MinDueDay || dueDay > MaxDueDay {
		fe.Add("due_day", "The due_day must be between 1 and 28.")
	}
	if start.IsZero() {
		fe.Add("start_date", "The start_date field is required.")
	}
	if end != nil && !start.IsZero() && dbtime.DateOnly(*end).Before(dbtime.DateOnly(start)) {
		fe.Add("end_date", "The end_date must be a date after or equal to start_date.")
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := dbtime.DateOnly(*t)
	return &v
}
