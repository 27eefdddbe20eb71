package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/configs"
	ChargeRoutes "rentpay_backend/internals/features/finance/charges/route"
	PaymentRoutes "rentpay_backend/internals/features/finance/payments/route"
	paymentService "rentpay_backend/internals/features/finance/payments/service"
)

// FinancePublicRoutes: webhook provider (tanpa JWT).
func FinancePublicRoutes(app *fiber.App, db *gorm.DB, cfg configs.PaymentConfig) {
	PaymentRoutes.PaymentWebhookRoutes(app, db, cfg)
}

func FinanceUserRoutes(api fiber.Router, db *gorm.DB, provider paymentService.Provider, cfg configs.PaymentConfig) {
	PaymentRoutes.PaymentTenantRoutes(api, db, provider, cfg)
}

func FinanceTenantRoutes(tenant fiber.Router, db *gorm.DB) {
	ChargeRoutes.ChargeTenantRoutes(tenant, db)
}

func FinanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ChargeRoutes.ChargeAdminRoutes(admin, db)
	PaymentRoutes.PaymentAdminRoutes(admin, db)
}
