package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	LeaseRoutes "rentpay_backend/internals/features/rentals/leases/route"
	PropertyRoutes "rentpay_backend/internals/features/rentals/properties/route"
	UnitRoutes "rentpay_backend/internals/features/rentals/units/route"
)

// RentalRoutes: /api/properties, /api/units, /api/leases.
func RentalRoutes(api fiber.Router, db *gorm.DB) {
	PropertyRoutes.PropertyAdminRoutes(api, db)
	UnitRoutes.UnitAdminRoutes(api, db)
	LeaseRoutes.LeaseRoutes(api, db)
}
