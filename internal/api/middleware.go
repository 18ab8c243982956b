package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecare/internal/security"
	"go.uber.org/zap"
)

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(started)),
			zap.String("method", c.Method()),
		)
		return err
	}
}

// DeviceTokenRequired accepts only bearer tokens issued for this device's identity.
func (handler *Handler) DeviceTokenRequired(c *fiber.Ctx) error {
	rawToken, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	subject, err := security.ParseDeviceToken(handler.tokenKey, rawToken, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	deviceUserID, err := handler.community.EnsureUserID(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	if subject != deviceUserID {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserIDKey, deviceUserID)
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
