package handlers

import (
	"errors"

	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// symbolRequest is the body accepted by search and toggle
type symbolRequest struct {
	Symbol string `json:"symbol"`
}

// respondError writes the error envelope with a status derived from err.
// User errors are shown, not logged; everything else is logged.
func respondError(c *fiber.Ctx, err error) error {
	status := shared.HTTPStatusFor(err)
	body := fiber.Map{
		"success": false,
		"error":   err.Error(),
	}

	var serviceErr *shared.ServiceError
	if errors.As(err, &serviceErr) {
		body["error"] = serviceErr.Message
		body["code"] = serviceErr.Code
		if serviceErr.Details != nil {
			body["details"] = serviceErr.Details
		}
	}

	if status >= fiber.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":   c.Path(),
			"method": c.Method(),
			"status": status,
		}).WithError(err).Error("Request failed")
	}

	return c.Status(status).JSON(body)
}

func respondData(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Invalid request body",
	})
}
