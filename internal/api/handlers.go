package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecare/internal/db"
	"github.com/terraincognita07/cyclecare/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, tokenKey []byte, location *time.Location, logger *zap.Logger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if len(tokenKey) == 0 {
		return nil, errors.New("token key is required")
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	repositories := db.NewRepositories(database)
	now := func() time.Time { return time.Now().In(location) }

	return &Handler{
		predictions: services.NewPredictionService(repositories.KeyValues, logger.Named("predictions"), now),
		community:   services.NewCommunityService(repositories.KeyValues, logger.Named("community"), now),
		tokenKey:    tokenKey,
		location:    location,
		logger:      logger,
		now:         now,
	}, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
