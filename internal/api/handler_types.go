package api

import (
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
	"go.uber.org/zap"
)

const contextUserIDKey = "device_user_id"

type Handler struct {
	predictions *services.PredictionService
	community   *services.CommunityService
	tokenKey    []byte
	location    *time.Location
	logger      *zap.Logger
	now         func() time.Time
}

type cycleRequest struct {
	LastPeriodDate string `json:"lastPeriodDate"`
	CycleLength    int    `json:"cycleLength"`
	PeriodLength   int    `json:"periodLength"`
	IsRegular      bool   `json:"isRegular"`
}

type predictionQueryRequest struct {
	Profile models.UserProfile `json:"profile"`
	Cycle   cycleRequest       `json:"cycle"`
}

type predictionQueryResponse struct {
	Phase         models.CyclePhase                          `json:"phase"`
	HormoneLevels map[models.HormoneType]models.HormoneLevel `json:"hormoneLevels"`
	Predictions   []models.HealthPrediction                  `json:"predictions"`
	WellnessScore int                                        `json:"wellnessScore"`
	TrendTally    models.TrendTally                          `json:"trendTally"`
	Supplements   []string                                   `json:"supplements"`
	Lifestyle     []string                                   `json:"lifestyle"`
	Forecast      *services.CycleForecast                    `json:"forecast,omitempty"`
}

type createPostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Phase    string   `json:"phase"`
	Tags     []string `json:"tags"`
}

type addCommentRequest struct {
	Content string `json:"content"`
}

type addBuddyRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type identityResponse struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}
