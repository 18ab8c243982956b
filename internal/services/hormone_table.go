package services

import "github.com/terraincognita07/cyclecare/internal/models"

const (
	basePredictionConfidence     = 75
	fallbackPredictionScore      = 70
	fallbackPredictionConfidence = 60
)

var hormoneLevelTable = map[models.CyclePhase]map[models.HormoneType]models.HormoneLevel{
	models.PhaseMenstrual: {
		models.HormoneEstrogen:     {Level: 0.20, Trend: models.HormoneLow},
		models.HormoneProgesterone: {Level: 0.10, Trend: models.HormoneLow},
		models.HormoneTestosterone: {Level: 0.30, Trend: models.HormoneStable},
		models.HormoneLH:           {Level: 0.20, Trend: models.HormoneLow},
		models.HormoneFSH:          {Level: 0.40, Trend: models.HormoneRising},
		models.HormoneCortisol:     {Level: 0.60, Trend: models.HormoneStable},
	},
	models.PhaseFollicular: {
		models.HormoneEstrogen:     {Level: 0.60, Trend: models.HormoneRising},
		models.HormoneProgesterone: {Level: 0.10, Trend: models.HormoneLow},
		models.HormoneTestosterone: {Level: 0.50, Trend: models.HormoneRising},
		models.HormoneLH:           {Level: 0.30, Trend: models.HormoneRising},
		models.HormoneFSH:          {Level: 0.50, Trend: models.HormoneStable},
		models.HormoneCortisol:     {Level: 0.50, Trend: models.HormoneStable},
	},
	models.PhaseOvulatory: {
		models.HormoneEstrogen:     {Level: 0.90, Trend: models.HormonePeak},
		models.HormoneProgesterone: {Level: 0.30, Trend: models.HormoneRising},
		models.HormoneTestosterone: {Level: 0.80, Trend: models.HormonePeak},
		models.HormoneLH:           {Level: 1.00, Trend: models.HormonePeak},
		models.HormoneFSH:          {Level: 0.80, Trend: models.HormonePeak},
		models.HormoneCortisol:     {Level: 0.40, Trend: models.HormoneStable},
	},
	models.PhaseLuteal: {
		models.HormoneEstrogen:     {Level: 0.50, Trend: models.HormoneFalling},
		models.HormoneProgesterone: {Level: 0.90, Trend: models.HormonePeak},
		models.HormoneTestosterone: {Level: 0.40, Trend: models.HormoneFalling},
		models.HormoneLH:           {Level: 0.20, Trend: models.HormoneFalling},
		models.HormoneFSH:          {Level: 0.20, Trend: models.HormoneFalling},
		models.HormoneCortisol:     {Level: 0.70, Trend: models.HormoneRising},
	},
}

type predictionEntry struct {
	Score           int
	Trend           models.PredictionTrend
	Recommendations []string
	Supplements     []string
	Lifestyle       []string
}

type predictionKey struct {
	Category models.HealthCategory
	Phase    models.CyclePhase
}

// Only hair, skin and weight have table data. Every other category resolves
// to fallbackPrediction.
var healthPredictionTable = map[predictionKey]predictionEntry{
	{models.CategoryHair, models.PhaseMenstrual}: {
		Score: 65,
		Trend: models.TrendDeclining,
		Recommendations: []string{
			"Use a gentle sulfate-free shampoo",
			"Avoid heat styling while iron is low",
		},
		Supplements: []string{"Iron", "Vitamin C", "Biotin"},
		Lifestyle:   []string{"Prioritise rest", "Eat iron-rich leafy greens"},
	},
	{models.CategoryHair, models.PhaseFollicular}: {
		Score: 85,
		Trend: models.TrendImproving,
		Recommendations: []string{
			"Good window for hair treatments and colouring",
			"Scalp massage to support circulation",
		},
		Supplements: []string{"Biotin", "Zinc", "Omega-3"},
		Lifestyle:   []string{"Try new workouts while energy rises", "Stay hydrated"},
	},
	{models.CategoryHair, models.PhaseOvulatory}: {
		Score: 95,
		Trend: models.TrendImproving,
		Recommendations: []string{
			"Hair is at its fullest, a good time for a cut",
			"Use a light leave-in conditioner",
		},
		Supplements: []string{"Biotin", "Collagen"},
		Lifestyle:   []string{"Keep up high-intensity training", "Eat protein with every meal"},
	},
	{models.CategoryHair, models.PhaseLuteal}: {
		Score: 75,
		Trend: models.TrendStable,
		Recommendations: []string{
			"Wash more often if the scalp gets oily",
			"Use a clarifying shampoo once a week",
		},
		Supplements: []string{"Zinc", "Magnesium", "Vitamin B6"},
		Lifestyle:   []string{"Manage stress with gentle yoga", "Limit refined sugar"},
	},
	{models.CategorySkin, models.PhaseMenstrual}: {
		Score: 60,
		Trend: models.TrendDeclining,
		Recommendations: []string{
			"Use a hydrating, fragrance-free moisturiser",
			"Skip harsh exfoliants",
		},
		Supplements: []string{"Omega-3", "Vitamin E"},
		Lifestyle:   []string{"Prioritise rest", "Drink warm fluids"},
	},
	{models.CategorySkin, models.PhaseFollicular}: {
		Score: 88,
		Trend: models.TrendImproving,
		Recommendations: []string{
			"Good time for exfoliation and active serums",
			"Introduce vitamin C serum in the morning",
		},
		Supplements: []string{"Vitamin C", "Collagen"},
		Lifestyle:   []string{"Try new workouts while energy rises", "Stay hydrated"},
	},
	{models.CategorySkin, models.PhaseOvulatory}: {
		Score: 95,
		Trend: models.TrendImproving,
		Recommendations: []string{
			"Skin is at its clearest, keep the routine light",
			"Use SPF daily",
		},
		Supplements: []string{"Vitamin C", "Zinc"},
		Lifestyle:   []string{"Keep up high-intensity training", "Stay hydrated"},
	},
	{models.CategorySkin, models.PhaseLuteal}: {
		Score: 65,
		Trend: models.TrendDeclining,
		Recommendations: []string{
			"Use salicylic acid on breakout-prone areas",
			"Double cleanse in the evening",
		},
		Supplements: []string{"Zinc", "Vitamin B6", "Magnesium"},
		Lifestyle:   []string{"Limit refined sugar", "Sleep eight hours"},
	},
	{models.CategoryWeight, models.PhaseMenstrual}: {
		Score: 70,
		Trend: models.TrendStable,
		Recommendations: []string{
			"Expect water retention, avoid daily weigh-ins",
			"Favour gentle movement like walking",
		},
		Supplements: []string{"Magnesium", "Iron"},
		Lifestyle:   []string{"Prioritise rest", "Reduce salty snacks"},
	},
	{models.CategoryWeight, models.PhaseFollicular}: {
		Score: 85,
		Trend: models.TrendImproving,
		Recommendations: []string{
			"Insulin sensitivity is higher, a good time for strength work",
			"Build meals around lean protein",
		},
		Supplements: []string{"Omega-3", "Vitamin D"},
		Lifestyle:   []string{"Try new workouts while energy rises", "Eat protein with every meal"},
	},
	{models.CategoryWeight, models.PhaseOvulatory}: {
		Score: 95,
		Trend: models.TrendImproving,
		Recommendations: []string{
			"Peak performance window for intense training",
			"Keep fibre intake high",
		},
		Supplements: []string{"Vitamin D", "Omega-3"},
		Lifestyle:   []string{"Keep up high-intensity training", "Eat protein with every meal"},
	},
	{models.CategoryWeight, models.PhaseLuteal}: {
		Score: 72,
		Trend: models.TrendStable,
		Recommendations: []string{
			"Appetite rises, plan complex-carb snacks",
			"Switch to moderate-intensity cardio",
		},
		Supplements: []string{"Magnesium", "Vitamin B6"},
		Lifestyle:   []string{"Manage stress with gentle yoga", "Reduce salty snacks"},
	},
}

var fallbackPrediction = predictionEntry{
	Score: fallbackPredictionScore,
	Trend: models.TrendStable,
	Recommendations: []string{
		"Keep a balanced diet",
		"Track how you feel across your cycle",
	},
	Supplements: []string{"Multivitamin", "Vitamin D"},
	Lifestyle:   []string{"Sleep seven to nine hours", "Move every day"},
}

// HormoneLevelsForPhase returns a copy of the static hormone profile for phase.
// Unknown phases yield an empty map.
func HormoneLevelsForPhase(phase models.CyclePhase) map[models.HormoneType]models.HormoneLevel {
	levels := hormoneLevelTable[phase]
	result := make(map[models.HormoneType]models.HormoneLevel, len(levels))
	for hormone, level := range levels {
		result[hormone] = level
	}
	return result
}

// HealthPredictionFor looks up the static record for (category, phase).
// Categories without data get the generic fallback with confidence 60;
// populated records carry the base confidence before any user signals apply.
func HealthPredictionFor(category models.HealthCategory, phase models.CyclePhase) models.HealthPrediction {
	entry, ok := healthPredictionTable[predictionKey{Category: category, Phase: phase}]
	confidence := basePredictionConfidence
	if !ok {
		entry = fallbackPrediction
		confidence = fallbackPredictionConfidence
	}

	return models.HealthPrediction{
		Category:        category,
		Score:           entry.Score,
		Trend:           entry.Trend,
		Recommendations: cloneStrings(entry.Recommendations),
		Supplements:     cloneStrings(entry.Supplements),
		Lifestyle:       cloneStrings(entry.Lifestyle),
		Phase:           phase,
		Confidence:      confidence,
	}
}

func hasPredictionData(category models.HealthCategory, phase models.CyclePhase) bool {
	_, ok := healthPredictionTable[predictionKey{Category: category, Phase: phase}]
	return ok
}

func cloneStrings(values []string) []string {
	result := make([]string, len(values))
	copy(result, values)
	return result
}
