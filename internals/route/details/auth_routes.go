package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	importRoute "rentpay_backend/internals/features/imports/route"
	authRoute "rentpay_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)
}

// UserAdminRoutes: direktori tenant + import massal.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	authRoute.TenantDirectoryRoutes(admin, db)
	importRoute.ImportAdminRoutes(admin, db)
}
