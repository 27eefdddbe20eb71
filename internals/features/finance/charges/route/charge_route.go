package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/features/finance/charges/controller"
	"rentpay_backend/internals/features/finance/charges/service"
)

// ChargeAdminRoutes: router sudah Auth + OnlyRoles(admin).
func ChargeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewChargeController(service.NewChargeService(db))

	grp := admin.Group("/charges")
	grp.Get("/", ctl.ListAdmin)
	grp.Get("/export", ctl.Export)
	grp.Post("/", ctl.Create)
	grp.Patch("/:id/void", ctl.Void)
}

// ChargeTenantRoutes: router sudah Auth + OnlyRoles(tenant).
func ChargeTenantRoutes(tenant fiber.Router, db *gorm.DB) {
	ctl := controller.NewChargeController(service.NewChargeService(db))
	tenant.Get("/charges", ctl.ListTenantDue)
}
