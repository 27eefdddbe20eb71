package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"rentpay_backend/internals/features/imports/service"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
	"rentpay_backend/internals/helpers/tabular"
)

type importFunc func(ctx context.Context, actor helpersAuth.Actor, t *tabular.Table) (int, []tabular.RowError, error)

type ImportController struct {
	Imports *service.ImportService
}

func NewImportController(s *service.ImportService) *ImportController {
	return &ImportController{Imports: s}
}

// POST /api/admin/import/units (multipart: file)
func (ctl *ImportController) Units(c *fiber.Ctx) error {
	return ctl.run(c, service.UnitHeaders, ctl.Imports.ImportUnits)
}

// POST /api/admin/import/leases
func (ctl *ImportController) Leases(c *fiber.Ctx) error {
	return ctl.run(c, service.LeaseHeaders, ctl.Imports.ImportLeases)
}

// POST /api/admin/import/charges
func (ctl *ImportController) Charges(c *fiber.Ctx) error {
	return ctl.run(c, service.ChargeHeaders, ctl.Imports.ImportCharges)
}

func (ctl *ImportController) run(c *fiber.Ctx, headers []string, fn importFunc) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !actor.IsAdmin() {
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden.")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"file": {"The file field is required."}})
	}
	format, err := tabular.FormatOf(fh.Filename)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"file": {"The file must be a file of type: csv, txt, xlsx."}})
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unable to read uploaded file.")
	}
	defer f.Close()

	table, fileErrs := tabular.Read(format, f, headers)
	if len(fileErrs) > 0 {
		return rowErrors(c, fileErrs)
	}

	n, rowErrs, err := fn(c.UserContext(), actor, table)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if len(rowErrs) > 0 {
		return rowErrors(c, rowErrs)
	}
	return helper.JsonOK(c, "Import completed", fiber.Map{"imported": n})
}

func rowErrors(c *fiber.Ctx, errs []tabular.RowError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success":    false,
		"message":    "validation failed",
		"error_code": "VALIDATION_ERROR",
		"errors":     errs,
	})
}
