package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/constants"
	"rentpay_backend/internals/features/rentals/properties/controller"
	authMiddleware "rentpay_backend/internals/middlewares/auth"
)

// PropertyAdminRoutes: /api/properties (router sudah Auth; khusus admin).
func PropertyAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewPropertyController(db)

	grp := r.Group("/properties", authMiddleware.OnlyRoles(constants.ErrOnlyAdminsCanAccess, constants.RoleAdmin))
	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)
	grp.Get("/:id", ctl.Get)
	grp.Patch("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
