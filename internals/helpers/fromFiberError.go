package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FromFiberError mengubah error dari service (biasanya *fiber.Error) menjadi
// response JSON konsisten. Validation errors jadi 422 dengan detail field.
func FromFiberError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if fields, ok := ValidationErrorsToMap(err); ok {
		return JsonValidationError(c, fields)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return JsonError(c, fiber.StatusNotFound, "Not found.")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return JsonError(c, fiber.StatusConflict, "Conflict.")
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// FiberErrorHandler dipasang di fiber.Config agar error yang lolos dari
// handler/middleware tetap berbentuk ErrorResponse.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
