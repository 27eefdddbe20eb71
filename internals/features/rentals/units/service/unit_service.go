package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	leaseService "rentpay_backend/internals/features/rentals/leases/service"
	propertyModel "rentpay_backend/internals/features/rentals/properties/model"
	"rentpay_backend/internals/features/rentals/units/model"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

var (
	errForbidden        = fiber.NewError(fiber.StatusForbidden, "Forbidden.")
	errUnitNotFound     = fiber.NewError(fiber.StatusNotFound, "Unit not found.")
	errPropertyNotFound = fiber.NewError(fiber.StatusNotFound, "Property not found.")
)

type CreateUnitInput struct {
	PropertyID uuid.UUID
	Name       string
	Notes      *string
}

type UpdateUnitInput struct {
	Name  *string
	Notes *string
}

type UnitService struct {
	DB *gorm.DB
}

func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{DB: db}
}

// PropertyOwned: true bila properti milik admin.
func PropertyOwned(tx *gorm.DB, adminID, propertyID uuid.UUID) (bool, error) {
	var n int64
	err := tx.Model(&propertyModel.PropertyModel{}).
		Where("property_id = ? AND property_user_id = ?", propertyID, adminID).
		Count(&n).Error
	return n > 0, err
}

func (s *UnitService) CreateUnit(ctx context.Context, actor helpersAuth.Actor, in CreateUnitInput) (*model.UnitModel, error) {
	if !actor.IsAdmin() {
		return nil, errForbidden
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, helper.NewFieldError("name", "The name field is required.")
	}

	var unit model.UnitModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := PropertyOwned(tx, actor.ID, in.PropertyID)
		if err != nil {
			return err
		}
		if !ok {
			return errPropertyNotFound
		}
		unit = model.UnitModel{
			UnitPropertyID: in.PropertyID,
			UnitName:       in.Name,
			UnitNotes:      in.Notes,
		}
		return tx.Create(&unit).Error
	})
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (s *UnitService) GetUnit(ctx context.Context, actor helpersAuth.Actor, id uuid.UUID) (*model.UnitModel, error) {
	if !actor.IsAdmin() {
		return nil, errForbidden
	}
	return findOwned(s.DB.WithContext(ctx), actor.ID, id)
}

// ListUnits: propertyID nil = semua unit milik admin.
func (s *UnitService) ListUnits(ctx context.Context, actor helpersAuth.Actor, propertyID *uuid.UUID, offset, limit int) ([]model.UnitModel, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, errForbidden
	}
	base := func() *gorm.DB {
		q := s.DB.WithContext(ctx).Model(&model.UnitModel{}).Scopes(model.OwnedUnitScope(actor.ID))
		if propertyID != nil {
			q = q.Where("units.unit_property_id = ?", *propertyID)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.UnitModel
	err := base().Order("units.unit_name ASC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

func (s *UnitService) UpdateUnit(ctx context.Context, actor helpersAuth.Actor, id uuid.UUID, in UpdateUnitInput) (*model.UnitModel, error) {
	if !actor.IsAdmin() {
		return nil, errForbidden
	}
	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, helper.NewFieldError("name", "The name field is required.")
		}
		updates["unit_name"] = name
	}
	if in.Notes != nil {
		updates["unit_notes"] = in.Notes
	}

	var out *model.UnitModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwned(tx, actor.ID, id); err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&model.UnitModel{}).Where("unit_id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		u, err := findOwned(tx, actor.ID, id)
		out = u
		return err
	})
	return out, err
}

// DeleteUnit menghapus unit beserta leases → charges → payments.
func (s *UnitService) DeleteUnit(ctx context.Context, actor helpersAuth.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return errForbidden
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwned(tx, actor.ID, id); err != nil {
			return err
		}
		var leaseIDs []uuid.UUID
		if err := tx.Model(&leaseModel.LeaseModel{}).
			Where("lease_unit_id = ?", id).
			Pluck("lease_id", &leaseIDs).Error; err != nil {
			return err
		}
		if err := leaseService.DeleteLeasesCascade(tx, leaseIDs); err != nil {
			return err
		}
		return tx.Where("unit_id = ?", id).Delete(&model.UnitModel{}).Error
	})
}

func findOwned(tx *gorm.DB, adminID, id uuid.UUID) (*model.UnitModel, error) {
	var u model.UnitModel
	if err := tx.Model(&model.UnitModel{}).
		Scopes(model.OwnedUnitScope(adminID)).
		Where("units.unit_id = ?", id).
		Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUnitNotFound
		}
		return nil, err
	}
	return &u, nil
}
