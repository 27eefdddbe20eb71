package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentpay_backend/internals/features/rentals/leases/dto"
	"rentpay_backend/internals/features/rentals/leases/service"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

type LeaseController struct {
	Leases *service.LeaseService
}

func NewLeaseController(s *service.LeaseService) *LeaseController {
	return &LeaseController{Leases: s}
}

// GET /api/leases (admin: lease di properti miliknya; tenant: lease miliknya)
func (ctl *LeaseController) List(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Leases.ListLeases(c.UserContext(), actor, pg.Offset, pg.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage, len(rows))
	return helper.JsonList(c, "ok", dto.FromModels(rows), &pagination)
}

// GET /api/leases/:id
func (ctl *LeaseController) Get(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	lease, err := ctl.Leases.GetLease(c.UserContext(), actor, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*lease))
}

// POST /api/leases → lease + charge pertama
func (ctl *LeaseController) Create(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateLeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}
	lease, err := ctl.Leases.CreateLease(c.UserContext(), actor, req.ToInput())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Lease created", dto.FromModel(*lease))
}

// PATCH /api/leases/:id
func (ctl *LeaseController) Update(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateLeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}
	lease, err := ctl.Leases.UpdateLease(c.UserContext(), actor, id, req.ToInput())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Lease updated", dto.FromModel(*lease))
}

// DELETE /api/leases/:id
func (ctl *LeaseController) Delete(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Leases.DeleteLease(c.UserContext(), actor, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Lease deleted", fiber.Map{"lease_id": id})
}
