package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"rentpay_backend/internals/features/finance/payments/service"
)

// WebhookController adalah boundary publik untuk provider. Response selalu
// 200 "ok" kecuali signature/payload tidak valid (400), supaya provider tidak
// retry tanpa henti untuk event yang memang tidak relevan.
type WebhookController struct {
	Reconciler          *service.Reconciler
	StripeWebhookSecret string
	MidtransServerKey   string
}

func NewWebhookController(r *service.Reconciler, stripeSecret, midtransServerKey string) *WebhookController {
	return &WebhookController{
		Reconciler:          r,
		StripeWebhookSecret: stripeSecret,
		MidtransServerKey:   midtransServerKey,
	}
}

// POST /api/webhooks/stripe
func (ctl *WebhookController) Stripe(c *fiber.Ctx) error {
	// body di-copy: buffer fasthttp dipakai ulang setelah handler selesai
	payload := append([]byte(nil), c.Body()...)

	ev, err := service.ParseStripeEvent(payload, c.Get("Stripe-Signature"), ctl.StripeWebhookSecret)
	if err != nil {
		log.Printf("[WARN] stripe webhook rejected: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("invalid")
	}
	return ctl.handle(c, ev)
}

// POST /api/webhooks/midtrans
func (ctl *WebhookController) Midtrans(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)

	ev, err := service.ParseMidtransNotification(payload, ctl.MidtransServerKey)
	if err != nil {
		log.Printf("[WARN] midtrans notification rejected: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("invalid")
	}
	return ctl.handle(c, ev)
}

func (ctl *WebhookController) handle(c *fiber.Ctx, ev *service.WebhookEvent) error {
	outcome, err := ctl.Reconciler.HandleEvent(c.UserContext(), ev)
	if err != nil {
		if errors.Is(err, service.ErrMalformedEvent) {
			return c.Status(fiber.StatusBadRequest).SendString("invalid")
		}
		// error DB → 500 agar provider mengirim ulang
		log.Printf("[ERROR] webhook provider=%s event=%s: %v", ev.Provider, ev.EventID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("error")
	}

	c.Set("X-Webhook-Outcome", string(outcome))
	return c.Status(fiber.StatusOK).SendString("ok")
}
