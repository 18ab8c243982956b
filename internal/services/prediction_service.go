package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
	"go.uber.org/zap"
)

const (
	PreferencesStorageKey = "hormonePredictionPreferences"

	regularCycleConfidenceBonus = 15
	onboardingConfidenceBonus   = 15
	maxPredictionConfidence     = 100
)

var (
	ErrInvalidPredictionContext = errors.New("invalid prediction context")
	ErrInvalidPreferences       = errors.New("invalid preferences")
)

// PredictionService answers hormone and health queries for an explicit
// PredictionContext. It keeps no per-user state; only preferences are persisted.
type PredictionService struct {
	store  KeyValueStore
	logger *zap.Logger
	now    func() time.Time
}

func NewPredictionService(store KeyValueStore, logger *zap.Logger, now func() time.Time) *PredictionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &PredictionService{
		store:  store,
		logger: logger,
		now:    now,
	}
}

func (service *PredictionService) ValidateContext(pc models.PredictionContext) error {
	cycle := pc.Cycle
	if cycle.CycleLength != 0 && (cycle.CycleLength < models.MinCycleLength || cycle.CycleLength > models.MaxCycleLength) {
		return fmt.Errorf("%w: cycle length %d outside %d..%d", ErrInvalidPredictionContext, cycle.CycleLength, models.MinCycleLength, models.MaxCycleLength)
	}
	if cycle.PeriodLength != 0 && (cycle.PeriodLength < models.MinPeriodLength || cycle.PeriodLength > models.MaxPeriodLength) {
		return fmt.Errorf("%w: period length %d outside %d..%d", ErrInvalidPredictionContext, cycle.PeriodLength, models.MinPeriodLength, models.MaxPeriodLength)
	}
	if cycle.LastPeriodDate != nil && DaysSinceLastPeriod(*cycle.LastPeriodDate, service.now()) < -1 {
		return fmt.Errorf("%w: last period date is in the future", ErrInvalidPredictionContext)
	}
	if pc.Profile.BirthYear < 0 {
		return fmt.Errorf("%w: negative birth year", ErrInvalidPredictionContext)
	}
	return nil
}

func (service *PredictionService) CurrentPhase(pc models.PredictionContext) models.CyclePhase {
	return PhaseForCycle(pc.Cycle, service.now())
}

func (service *PredictionService) HormoneLevels(pc models.PredictionContext) map[models.HormoneType]models.HormoneLevel {
	return HormoneLevelsForPhase(service.CurrentPhase(pc))
}

// Prediction returns the record for one category in the current phase.
func (service *PredictionService) Prediction(pc models.PredictionContext, category models.HealthCategory) models.HealthPrediction {
	phase := service.CurrentPhase(pc)
	prediction := HealthPredictionFor(category, phase)
	if hasPredictionData(category, phase) {
		prediction.Confidence = predictionConfidence(pc)
	}
	return prediction
}

// AllPredictions covers only AvailableHealthCategories, not every declared category.
func (service *PredictionService) AllPredictions(pc models.PredictionContext) []models.HealthPrediction {
	categories := models.AvailableHealthCategories()
	predictions := make([]models.HealthPrediction, 0, len(categories))
	for _, category := range categories {
		predictions = append(predictions, service.Prediction(pc, category))
	}
	return predictions
}

// SupplementRecommendations unions supplements across all declared categories,
// so the generic fallback entries are included.
func (service *PredictionService) SupplementRecommendations(pc models.PredictionContext) []string {
	return service.collectAcrossCategories(pc, func(prediction models.HealthPrediction) []string {
		return prediction.Supplements
	})
}

func (service *PredictionService) LifestyleRecommendations(pc models.PredictionContext) []string {
	return service.collectAcrossCategories(pc, func(prediction models.HealthPrediction) []string {
		return prediction.Lifestyle
	})
}

func (service *PredictionService) OverallWellnessScore(pc models.PredictionContext) int {
	predictions := service.AllPredictions(pc)
	if len(predictions) == 0 {
		return 0
	}

	total := 0
	for _, prediction := range predictions {
		total += prediction.Score
	}
	return int(math.Round(float64(total) / float64(len(predictions))))
}

func (service *PredictionService) TrendTally(pc models.PredictionContext) models.TrendTally {
	tally := models.TrendTally{}
	for _, prediction := range service.AllPredictions(pc) {
		switch prediction.Trend {
		case models.TrendImproving:
			tally.Improving++
		case models.TrendDeclining:
			tally.Declining++
		default:
			tally.Stable++
		}
	}
	return tally
}

func (service *PredictionService) Forecast(pc models.PredictionContext) (CycleForecast, bool) {
	return BuildCycleForecast(pc.Cycle, service.now())
}

func (service *PredictionService) SaveUserPreferences(ctx context.Context, preferences json.RawMessage) error {
	if len(preferences) == 0 || !json.Valid(preferences) {
		return ErrInvalidPreferences
	}
	if err := service.store.Set(ctx, PreferencesStorageKey, string(preferences)); err != nil {
		return storageError("set", PreferencesStorageKey, err)
	}
	return nil
}

// LoadUserPreferences returns false when nothing has been saved yet. A stored
// blob that is no longer valid JSON is reported as absent and logged.
func (service *PredictionService) LoadUserPreferences(ctx context.Context) (json.RawMessage, bool, error) {
	raw, found, err := service.store.Get(ctx, PreferencesStorageKey)
	if err != nil {
		return nil, false, storageError("get", PreferencesStorageKey, err)
	}
	if !found {
		return nil, false, nil
	}
	if !json.Valid([]byte(raw)) {
		service.logger.Warn("stored preferences are not valid json", zap.String("key", PreferencesStorageKey))
		return nil, false, nil
	}
	return json.RawMessage(raw), true, nil
}

func (service *PredictionService) collectAcrossCategories(pc models.PredictionContext, pick func(models.HealthPrediction) []string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for _, category := range models.AllHealthCategories() {
		for _, value := range pick(service.Prediction(pc, category)) {
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			result = append(result, value)
		}
	}
	return result
}

func predictionConfidence(pc models.PredictionContext) int {
	confidence := basePredictionConfidence
	if pc.Cycle.IsRegular {
		confidence += regularCycleConfidenceBonus
	}
	if pc.Profile.OnboardingCompleted {
		confidence += onboardingConfidenceBonus
	}
	if confidence > maxPredictionConfidence {
		confidence = maxPredictionConfidence
	}
	return confidence
}
