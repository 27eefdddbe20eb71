package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/constants"
	"rentpay_backend/internals/features/rentals/units/controller"
	"rentpay_backend/internals/features/rentals/units/service"
	authMiddleware "rentpay_backend/internals/middlewares/auth"
)

func UnitAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewUnitController(service.NewUnitService(db))

	grp := r.Group("/units", authMiddleware.OnlyRoles(constants.ErrOnlyAdminsCanAccess, constants.RoleAdmin))
	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)
	grp.Get("/:id", ctl.Get)
	grp.Patch("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
