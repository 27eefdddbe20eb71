package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/constants"
	"rentpay_backend/internals/features/rentals/leases/controller"
	"rentpay_backend/internals/features/rentals/leases/service"
	authMiddleware "rentpay_backend/internals/middlewares/auth"
)

// LeaseRoutes: baca untuk admin & tenant, tulis khusus admin.
func LeaseRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewLeaseController(service.NewLeaseService(db))
	onlyAdmin := authMiddleware.OnlyRoles(constants.ErrOnlyAdminsCanAccess, constants.RoleAdmin)

	grp := r.Group("/leases")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.Get)
	grp.Post("/", onlyAdmin, ctl.Create)
	grp.Patch("/:id", onlyAdmin, ctl.Update)
	grp.Delete("/:id", onlyAdmin, ctl.Delete)
}
