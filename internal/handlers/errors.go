package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/validation"
)

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrIntegrity):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidState):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err with the status StatusFor assigns to it.
func respondError(c *fiber.Ctx, log *logrus.Entry, message string, err error) error {
	return respond(c, log, StatusFor(err), message, err)
}

// respondChangeError is respondError for partial updates, where an unknown
// id is a bad request rather than a missing resource.
func respondChangeError(c *fiber.Ctx, log *logrus.Entry, message string, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusNotFound {
		status = fiber.StatusBadRequest
	}
	return respond(c, log, status, message, err)
}

func respond(c *fiber.Ctx, log *logrus.Entry, status int, message string, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	}

	entry := log.WithError(err).WithFields(logrus.Fields{"method": c.Method(), "path": c.Path()})
	if status >= fiber.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Debug(message)
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// parseBody decodes the JSON body into out and validates it. On failure the
// response is already written and handled is true.
func parseBody(c *fiber.Ctx, v *validation.Validator, out any) (handled bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := v.Struct(out); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		}
		return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	return false, nil
}
