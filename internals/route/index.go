// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/configs"
	"rentpay_backend/internals/constants"
	paymentService "rentpay_backend/internals/features/finance/payments/service"
	authMiddleware "rentpay_backend/internals/middlewares/auth"
	routeDetails "rentpay_backend/internals/route/details"
)

var startTime time.Time

type Options struct {
	PaymentConfig configs.PaymentConfig
	Provider      paymentService.Provider
}

// SetupRoutes: route publik didaftarkan lebih dulu supaya tidak melewati
// AuthMiddleware milik group /api.
func SetupRoutes(app *fiber.App, db *gorm.DB, opts Options) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	log.Println("[INFO] Setting up webhook routes...")
	routeDetails.FinancePublicRoutes(app, db, opts.PaymentConfig)

	// ===================== PRIVATE =====================
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	admin := api.Group("/admin",
		authMiddleware.OnlyRoles(constants.ErrOnlyAdminsCanAccess, constants.RoleAdmin))
	tenant := api.Group("/tenant",
		authMiddleware.OnlyRoles(constants.ErrOnlyTenantsCanAccess, constants.RoleTenant))

	log.Println("[INFO] Mounting Rental routes...")
	routeDetails.RentalRoutes(api, db)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceUserRoutes(api, db, opts.Provider, opts.PaymentConfig)
	routeDetails.FinanceTenantRoutes(tenant, db)
	routeDetails.FinanceAdminRoutes(admin, db)

	log.Println("[INFO] Mounting admin user routes...")
	routeDetails.UserAdminRoutes(admin, db)
}
