package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/features/imports/controller"
	"rentpay_backend/internals/features/imports/service"
)

// ImportAdminRoutes: /api/admin/import/* (router sudah Auth + admin).
func ImportAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewImportController(service.NewImportService(db))

	grp := admin.Group("/import")
	grp.Post("/units", ctl.Units)
	grp.Post("/leases", ctl.Leases)
	grp.Post("/charges", ctl.Charges)
}
