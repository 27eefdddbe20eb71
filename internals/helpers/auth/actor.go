package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rentpay_backend/internals/constants"
)

// Locals keys diisi oleh AuthMiddleware.
const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
)

// Actor is the authenticated caller. Services take it as an explicit
// argument and never read request state themselves.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool  { return a.Role == constants.RoleAdmin }
func (a Actor) IsTenant() bool { return a.Role == constants.RoleTenant }

// ActorFromCtx membaca user_id & role yang sudah diverifikasi middleware.
func ActorFromCtx(c *fiber.Ctx) (Actor, error) {
	raw, _ := c.Locals(LocUserID).(string)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthenticated.")
	}
	role, _ := c.Locals(LocUserRole).(string)
	return Actor{ID: id, Role: role}, nil
}

// ParseUUIDParam membaca path param sebagai UUID; format salah = 404 supaya
// tidak membocorkan apa pun.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Not found.")
	}
	return id, nil
}
