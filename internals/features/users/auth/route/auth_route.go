package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/constants"
	"rentpay_backend/internals/features/users/auth/controller"
	rateLimiter "rentpay_backend/internals/middlewares"
	authMiddleware "rentpay_backend/internals/middlewares/auth"
)

// AuthRoutes: /api/auth/*
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	// 🔐 Protected
	protected := baseAuth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)
}

// TenantDirectoryRoutes: daftar tenant untuk form lease admin.
func TenantDirectoryRoutes(admin fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)
	admin.Get("/tenants",
		authMiddleware.OnlyRoles(constants.ErrOnlyAdminsCanAccess, constants.RoleAdmin),
		authController.ListTenants,
	)
}
