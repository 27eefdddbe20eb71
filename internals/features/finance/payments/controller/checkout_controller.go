package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentpay_backend/internals/features/finance/payments/dto"
	"rentpay_backend/internals/features/finance/payments/service"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

type CheckoutController struct {
	Checkout *service.CheckoutService
}

func NewCheckoutController(checkout *service.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// POST /api/payments/checkout  { "charge_id": "<uuid>" } → { "url": "..." }
func (ctl *CheckoutController) Create(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}

	res, err := ctl.Checkout.CreateCheckoutSession(c.UserContext(), actor, req.ParsedChargeID())
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url":        res.URL,
		"payment_id": res.Payment.PaymentID,
	})
}
