package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentpay_backend/internals/constants"
	authRepo "rentpay_backend/internals/features/users/auth/repository"
	"rentpay_backend/internals/features/users/auth/service"
	userModel "rentpay_backend/internals/features/users/user/model"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userPayload(u userModel.UserModel) fiber.Map {
	return fiber.Map{
		"id":        u.ID,
		"user_name": u.UserName,
		"email":     u.Email,
		"role":      u.Role,
	}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}

	res, err := service.Login(c.UserContext(), ac.DB, in.Email, in.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  res.ExpiresAt,
	})
	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": res.AccessToken,
		"token_type":   "Bearer",
		"expires_at":   res.ExpiresAt,
		"user":         userPayload(res.User),
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	token := rawAccessToken(c)
	if err := service.Logout(c.UserContext(), ac.DB, token); err != nil {
		return helper.FromFiberError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout successful", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := authRepo.FindUserByID(ac.DB.WithContext(c.UserContext()), actor.ID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"user": userPayload(*user)})
}

// GET /api/admin/tenants
func (ac *AuthController) ListTenants(c *fiber.Ctx) error {
	actor, err := helpersAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !actor.IsAdmin() {
		return helper.JsonError(c, fiber.StatusForbidden, constants.ErrOnlyAdminsCanAccess)
	}
	users, err := authRepo.ListTenants(ac.DB.WithContext(c.UserContext()))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, userPayload(u))
	}
	return helper.JsonList(c, "ok", out, nil)
}

func rawAccessToken(c *fiber.Ctx) string {
	if f := strings.Fields(c.Get("Authorization")); len(f) == 2 && strings.EqualFold(f[0], "Bearer") {
		return strings.Trim(f[1], "\"'")
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}
