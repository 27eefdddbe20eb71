package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	leaseService "rentpay_backend/internals/features/rentals/leases/service"
	"rentpay_backend/internals/features/rentals/properties/dto"
	"rentpay_backend/internals/features/rentals/properties/model"
	unitModel "rentpay_backend/internals/features/rentals/units/model"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

var errPropertyNotFound = fiber.NewError(fiber.StatusNotFound, "Property not found.")

type PropertyController struct {
	DB *gorm.DB
}

func NewPropertyController(db *gorm.DB) *PropertyController {
	return &PropertyController{DB: db}
}

func (ctl *PropertyController) findOwned(tx *gorm.DB, adminID, id uuid.UUID) (*model.PropertyModel, error) {
	var p model.PropertyModel
	if err := tx.Where("property_id = ? AND property_user_id = ?", id, adminID).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GET /api/properties
func (ctl *PropertyController) List(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 100)
	db := ctl.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&model.PropertyModel{}).
		Where("property_user_id = ?", actor.ID).
		Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.PropertyModel
	if err := db.Where("property_user_id = ?", actor.ID).
		Order("property_name ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	// jumlah unit per properti (satu query)
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.PropertyID)
	}
	counts := map[uuid.UUID]int64{}
	if len(ids) > 0 {
		var agg []struct {
			PropertyID uuid.UUID
			N          int64
		}
		if err := db.Model(&unitModel.UnitModel{}).
			Select("unit_property_id AS property_id, COUNT(*) AS n").
			Where("unit_property_id IN ?", ids).
			Group("unit_property_id").
			Scan(&agg).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
		for _, a := range agg {
			counts[a.PropertyID] = a.N
		}
	}

	out := make([]dto.PropertyResponse, 0, len(rows))
	for _, r := range rows {
		resp := dto.FromModel(r)
		n := counts[r.PropertyID]
		resp.PropertyUnitsCount = &n
		out = append(out, resp)
	}
	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage, len(out))
	return helper.JsonList(c, "ok", out, &pagination)
}

// GET /api/properties/:id
func (ctl *PropertyController) Get(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctl.findOwned(ctl.DB.WithContext(c.UserContext()), actor.ID, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*p))
}

// POST /api/properties
func (ctl *PropertyController) Create(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}

	m := req.ToModel(actor.ID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Property created", dto.FromModel(m))
}

// PATCH /api/properties/:id
func (ctl *PropertyController) Update(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}

	var out *model.PropertyModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := ctl.findOwned(tx, actor.ID, id); err != nil {
			return err
		}
		if updates := req.ToUpdates(); len(updates) > 0 {
			if err := tx.Model(&model.PropertyModel{}).
				Where("property_id = ?", id).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		p, err := ctl.findOwned(tx, actor.ID, id)
		out = p
		return err
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Property updated", dto.FromModel(*out))
}

// DELETE /api/properties/:id (cascade units → leases → charges → payments)
func (ctl *PropertyController) Delete(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := ctl.findOwned(tx, actor.ID, id); err != nil {
			return err
		}
		var leaseIDs []uuid.UUID
		if err := tx.Model(&leaseModel.LeaseModel{}).
			Joins("JOIN units ON units.unit_id = leases.lease_unit_id").
			Where("units.unit_property_id = ?", id).
			Pluck("leases.lease_id", &leaseIDs).Error; err != nil {
			return err
		}
		if err := leaseService.DeleteLeasesCascade(tx, leaseIDs); err != nil {
			return err
		}
		if err := tx.Where("unit_property_id = ?", id).Delete(&unitModel.UnitModel{}).Error; err != nil {
			return err
		}
		return tx.Where("property_id = ?", id).Delete(&model.PropertyModel{}).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Property deleted", fiber.Map{"property_id": id})
}
