package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecare/internal/services"
	"go.uber.org/zap"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidPredictionContext),
		errors.Is(err, services.ErrInvalidPreferences),
		errors.Is(err, services.ErrInvalidPostInput),
		errors.Is(err, services.ErrInvalidCommentInput),
		errors.Is(err, services.ErrInvalidBuddyInput):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrPostNotFound):
		return apiError(c, fiber.StatusNotFound, "post not found")
	case errors.Is(err, services.ErrBuddyAlreadyExists):
		return apiError(c, fiber.StatusConflict, "buddy already exists")
	case errors.Is(err, services.ErrStorageUnavailable):
		handler.logger.Error("storage failure", zap.String("path", c.Path()), zap.Error(err))
		return apiError(c, fiber.StatusServiceUnavailable, "storage unavailable")
	default:
		handler.logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
