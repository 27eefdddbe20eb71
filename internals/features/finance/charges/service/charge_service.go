package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentpay_backend/internals/features/finance/charges/dto"
	"rentpay_backend/internals/features/finance/charges/model"
	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
	"rentpay_backend/internals/helpers/dbtime"
)

var (
	errForbidden      = fiber.NewError(fiber.StatusForbidden, "Forbidden.")
	errLeaseNotFound  = fiber.NewError(fiber.StatusNotFound, "Lease not found.")
	errChargeNotFound = fiber.NewError(fiber.StatusNotFound, "Charge not found.")
	errNotVoidable    = fiber.NewError(fiber.StatusConflict, "Only due charges can be voided.")
)

type CreateChargeInput struct {
	LeaseID uuid.UUID
	Amount  int64
	DueDate time.Time
	Status  model.ChargeStatus
}

type ChargeService struct {
	DB *gorm.DB
}

func NewChargeService(db *gorm.DB) *ChargeService {
	return &ChargeService{DB: db}
}

// CreateCharge: charge manual oleh admin. Status paid ditolak (422) karena
// transisi ke paid hanya milik webhook reconciler.
func (s *ChargeService) CreateCharge(ctx context.Context, actor helpersAuth.Actor, in CreateChargeInput) (*model.ChargeModel, error) {
	if !actor.IsAdmin() {
		return nil, errForbidden
	}
	if in.Status == "" {
		in.Status = model.ChargeStatusDue
	}
	if in.Status != model.ChargeStatusDue && in.Status != model.ChargeStatusVoid {
		return nil, helper.NewFieldError("status", "The selected status is invalid.")
	}
	if in.Amount <= 0 {
		return nil, helper.NewFieldError("amount", "The amount must be at least 1.")
	}

	var charge model.ChargeModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&leaseModel.LeaseModel{}).
			Scopes(leaseModel.OwnedLeaseScope(actor.ID)).
			Where("leases.lease_id = ?", in.LeaseID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return errLeaseNotFound
		}

		charge = model.ChargeModel{
			ChargeLeaseID: in.LeaseID,
			ChargeAmount:  in.Amount,
			ChargeDueDate: dbtime.DateOnly(in.DueDate),
			ChargeStatus:  in.Status,
		}
		return tx.Create(&charge).Error
	})
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

// VoidCharge: due → void. Charge paid/void tidak bisa di-void lagi.
func (s *ChargeService) VoidCharge(ctx context.Context, actor helpersAuth.Actor, id uuid.UUID) (*model.ChargeModel, error) {
	if !actor.IsAdmin() {
		return nil, errForbidden
	}

	var charge model.ChargeModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedChargeQuery(tx, actor.ID).
			Where("charges.charge_id = ?", id).
			Take(&charge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errChargeNotFound
			}
			return err
		}

		res := tx.Model(&model.ChargeModel{}).
			Where("charge_id = ? AND charge_status = ?", id, model.ChargeStatusDue).
			Updates(map[string]any{
				"charge_status":     model.ChargeStatusVoid,
				"charge_updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNotVoidable
		}
		charge.ChargeStatus = model.ChargeStatusVoid
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

// ListAdminCharges: semua charge di properti milik admin, due date terbaru dulu.
func (s *ChargeService) ListAdminCharges(ctx context.Context, actor helpersAuth.Actor, status string, offset, limit int) ([]dto.AdminChargeRow, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, errForbidden
	}
	base := func() *gorm.DB {
		q := s.DB.WithContext(ctx).
			Table("charges").
			Joins("JOIN leases ON leases.lease_id = charges.charge_lease_id").
			Joins("JOIN units ON units.unit_id = leases.lease_unit_id").
			Joins("JOIN properties ON properties.property_id = units.unit_property_id").
			Joins("JOIN users ON users.id = leases.lease_tenant_user_id").
			Where("properties.property_user_id = ?", actor.ID)
		if status != "" {
			q = q.Where("charges.charge_status = ?", status)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []dto.AdminChargeRow
	err := base().
		Select(`charges.*,
			units.unit_id AS unit_id, units.unit_name AS unit_name,
			properties.property_id AS property_id, properties.property_name AS property_name,
			users.id AS tenant_id, users.user_name AS tenant_name, users.email AS tenant_email`).
		Order("charges.charge_due_date DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}

// ListTenantDueCharges: charge due milik tenant, urut due date.
func (s *ChargeService) ListTenantDueCharges(ctx context.Context, actor helpersAuth.Actor) ([]model.ChargeModel, error) {
	if !actor.IsTenant() {
		return nil, errForbidden
	}
	var rows []model.ChargeModel
	err := s.DB.WithContext(ctx).
		Model(&model.ChargeModel{}).
		Joins("JOIN leases ON leases.lease_id = charges.charge_lease_id").
		Where("leases.lease_tenant_user_id = ?", actor.ID).
		Where("charges.charge_status = ?", model.ChargeStatusDue).
		Order("charges.charge_due_date ASC").
		Find(&rows).Error
	return rows, err
}

func ownedChargeQuery(tx *gorm.DB, adminID uuid.UUID) *gorm.DB {
	return tx.Model(&model.ChargeModel{}).
		Joins("JOIN leases ON leases.lease_id = charges.charge_lease_id").
		Joins("JOIN units ON units.unit_id = leases.lease_unit_id").
		Joins("JOIN properties ON properties.property_id = units.unit_property_id").
		Where("properties.property_user_id = ?", adminID)
}
