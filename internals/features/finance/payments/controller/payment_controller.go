package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentpay_backend/internals/features/finance/payments/dto"
	"rentpay_backend/internals/features/finance/payments/service"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

type PaymentController struct {
	Query *service.PaymentQueryService
}

func NewPaymentController(q *service.PaymentQueryService) *PaymentController {
	return &PaymentController{Query: q}
}

// GET /api/tenant/payments
func (ctl *PaymentController) ListTenantPayments(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctl.Query.ListTenantPayments(c.UserContext(), actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromPaymentModels(rows), nil)
}

// GET /api/admin/payment-events?provider=&type=&page=&per_page=&include_payload=1
func (ctl *PaymentController) ListPaymentEvents(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctl.Query.ListPaymentEvents(c.UserContext(), actor, service.PaymentEventFilter{
		Provider: c.Query("provider"),
		Type:     c.Query("type"),
	}, pg.Offset, pg.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	withPayload := strings.EqualFold(c.Query("include_payload"), "1") || strings.EqualFold(c.Query("include_payload"), "true")
	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage, len(rows))
	return helper.JsonList(c, "ok", dto.FromPaymentEventModels(rows, withPayload), &pagination)
}
