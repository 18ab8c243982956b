package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecare/internal/models"
)

func (handler *Handler) QueryPredictions(c *fiber.Ctx) error {
	request := predictionQueryRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	pc, err := handler.predictionContextFromRequest(request)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid last period date")
	}
	if err := handler.predictions.ValidateContext(pc); err != nil {
		return handler.serviceError(c, err)
	}

	response := predictionQueryResponse{
		Phase:         handler.predictions.CurrentPhase(pc),
		HormoneLevels: handler.predictions.HormoneLevels(pc),
		Predictions:   handler.predictions.AllPredictions(pc),
		WellnessScore: handler.predictions.OverallWellnessScore(pc),
		TrendTally:    handler.predictions.TrendTally(pc),
		Supplements:   handler.predictions.SupplementRecommendations(pc),
		Lifestyle:     handler.predictions.LifestyleRecommendations(pc),
	}
	if forecast, ok := handler.predictions.Forecast(pc); ok {
		response.Forecast = &forecast
	}
	return c.JSON(response)
}

func (handler *Handler) GetPreferences(c *fiber.Ctx) error {
	preferences, found, err := handler.predictions.LoadUserPreferences(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "preferences not found")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(preferences)
}

func (handler *Handler) PutPreferences(c *fiber.Ctx) error {
	body := append([]byte(nil), c.Body()...)
	if err := handler.predictions.SaveUserPreferences(c.UserContext(), json.RawMessage(body)); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) predictionContextFromRequest(request predictionQueryRequest) (models.PredictionContext, error) {
	pc := models.PredictionContext{
		Profile: request.Profile,
		Cycle: models.CycleData{
			CycleLength:  request.Cycle.CycleLength,
			PeriodLength: request.Cycle.PeriodLength,
			IsRegular:    request.Cycle.IsRegular,
		},
	}

	raw := strings.TrimSpace(request.Cycle.LastPeriodDate)
	if raw == "" {
		return pc, nil
	}
	lastPeriod, err := time.ParseInLocation("2006-01-02", raw, handler.location)
	if err != nil {
		return models.PredictionContext{}, err
	}
	pc.Cycle.LastPeriodDate = &lastPeriod
	return pc, nil
}
