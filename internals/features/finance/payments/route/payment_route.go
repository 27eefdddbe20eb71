package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/configs"
	"rentpay_backend/internals/constants"
	"rentpay_backend/internals/features/finance/payments/controller"
	"rentpay_backend/internals/features/finance/payments/service"
	middlewares "rentpay_backend/internals/middlewares"
	authMiddleware "rentpay_backend/internals/middlewares/auth"
)

// PaymentWebhookRoutes: publik, diverifikasi lewat signature provider.
func PaymentWebhookRoutes(app *fiber.App, db *gorm.DB, cfg configs.PaymentConfig) {
	ctl := controller.NewWebhookController(service.NewReconciler(db), cfg.StripeWebhookSecret, cfg.MidtransServerKey)

	wh := app.Group("/api/webhooks")
	wh.Post("/stripe", ctl.Stripe)
	wh.Post("/midtrans", ctl.Midtrans)
}

// PaymentTenantRoutes: checkout + riwayat pembayaran (role tenant).
// Router sudah melewati AuthMiddleware.
func PaymentTenantRoutes(r fiber.Router, db *gorm.DB, provider service.Provider, cfg configs.PaymentConfig) {
	checkout := controller.NewCheckoutController(service.NewCheckoutService(db, provider, cfg.Currency))
	payments := controller.NewPaymentController(service.NewPaymentQueryService(db))

	// checkout sengaja tidak dibatasi role di middleware: admin harus
	// mendapat "Not allowed to pay this charge." dari authorizer.
	r.Post("/payments/checkout", middlewares.CheckoutRateLimiter(), checkout.Create)

	r.Get("/tenant/payments",
		authMiddleware.OnlyRoles(constants.ErrOnlyTenantsCanAccess, constants.RoleTenant),
		payments.ListTenantPayments,
	)
}

func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	payments := controller.NewPaymentController(service.NewPaymentQueryService(db))
	admin.Get("/payment-events", payments.ListPaymentEvents)
}
