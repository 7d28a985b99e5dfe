package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors that escape a handler as {"error", "code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
