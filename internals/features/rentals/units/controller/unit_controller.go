package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rentpay_backend/internals/features/rentals/units/dto"
	"rentpay_backend/internals/features/rentals/units/service"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

type UnitController struct {
	Units *service.UnitService
}

func NewUnitController(s *service.UnitService) *UnitController {
	return &UnitController{Units: s}
}

// GET /api/units?property_id=
func (ctl *UnitController) List(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var propertyID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("property_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.FromFiberError(c, helper.NewFieldError("property_id", "The property_id must be a valid UUID."))
		}
		propertyID = &id
	}

	pg := helper.ResolvePaging(c, 50, 200)
	rows, total, err := ctl.Units.ListUnits(c.UserContext(), actor, propertyID, pg.Offset, pg.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage, len(rows))
	return helper.JsonList(c, "ok", dto.FromModels(rows), &pagination)
}

// GET /api/units/:id
func (ctl *UnitController) Get(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	u, err := ctl.Units.GetUnit(c.UserContext(), actor, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*u))
}

// POST /api/units
func (ctl *UnitController) Create(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}
	u, err := ctl.Units.CreateUnit(c.UserContext(), actor, req.ToInput())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Unit created", dto.FromModel(*u))
}

// PATCH /api/units/:id
func (ctl *UnitController) Update(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}
	u, err := ctl.Units.UpdateUnit(c.UserContext(), actor, id, req.ToInput())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Unit updated", dto.FromModel(*u))
}

// DELETE /api/units/:id
func (ctl *UnitController) Delete(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Units.DeleteUnit(c.UserContext(), actor, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Unit deleted", fiber.Map{"unit_id": id})
}
