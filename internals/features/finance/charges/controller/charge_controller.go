package controller

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"rentpay_backend/internals/features/finance/charges/dto"
	"rentpay_backend/internals/features/finance/charges/model"
	"rentpay_backend/internals/features/finance/charges/service"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
	"rentpay_backend/internals/helpers/dbtime"
	"rentpay_backend/internals/helpers/tabular"
)

const exportMaxRows = 10000

type ChargeController struct {
	Charges *service.ChargeService
}

func NewChargeController(s *service.ChargeService) *ChargeController {
	return &ChargeController{Charges: s}
}

// GET /api/admin/charges?status=due|paid|void&page=&per_page=
func (ctl *ChargeController) ListAdmin(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	switch model.ChargeStatus(status) {
	case "", model.ChargeStatusDue, model.ChargeStatusPaid, model.ChargeStatusVoid:
	default:
		return helper.FromFiberError(c, helper.NewFieldError("status", "The selected status is invalid."))
	}

	pg := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Charges.ListAdminCharges(c.UserContext(), actor, status, pg.Offset, pg.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage, len(rows))
	return helper.JsonList(c, "ok", dto.FromAdminRows(rows), &pagination)
}

// POST /api/admin/charges
func (ctl *ChargeController) Create(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}

	charge, err := ctl.Charges.CreateCharge(c.UserContext(), actor, service.CreateChargeInput{
		LeaseID: req.ParsedLeaseID(),
		Amount:  req.Amount,
		DueDate: req.ParsedDueDate(),
		Status:  req.StatusOrDefault(),
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Charge created", dto.FromModel(*charge))
}

// PATCH /api/admin/charges/:id/void
func (ctl *ChargeController) Void(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helpersAuth.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	charge, err := ctl.Charges.VoidCharge(c.UserContext(), actor, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Charge voided", dto.FromModel(*charge))
}

// GET /api/tenant/charges
func (ctl *ChargeController) ListTenantDue(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctl.Charges.ListTenantDueCharges(c.UserContext(), actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

// GET /api/admin/charges/export?format=csv|xlsx&status=
func (ctl *ChargeController) Export(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	format := strings.ToLower(c.Query("format", "csv"))
	if format != "csv" && format != "xlsx" {
		return helper.FromFiberError(c, helper.NewFieldError("format", "The selected format is invalid."))
	}

	rows, _, err := ctl.Charges.ListAdminCharges(c.UserContext(), actor, strings.ToLower(c.Query("status")), 0, exportMaxRows)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	headers := []string{"charge_id", "lease_id", "property", "unit", "tenant", "tenant_email", "amount", "due_date", "status"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.ChargeID.String(),
			r.ChargeLeaseID.String(),
			r.PropertyName,
			r.UnitName,
			r.TenantName,
			r.TenantEmail,
			strconv.FormatInt(r.ChargeAmount, 10),
			dbtime.FormatDate(r.ChargeDueDate),
			string(r.ChargeStatus),
		})
	}

	var buf bytes.Buffer
	filename := fmt.Sprintf("charges_%s.%s", time.Now().UTC().Format("20060102"), format)
	if format == "xlsx" {
		if err := tabular.WriteXLSX(&buf, "Charges", headers, records); err != nil {
			return helper.FromFiberError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	} else {
		if err := tabular.WriteCSV(&buf, headers, records); err != nil {
			return helper.FromFiberError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
