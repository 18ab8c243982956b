package models

type HormoneType string

const (
	HormoneEstrogen     HormoneType = "estrogen"
	HormoneProgesterone HormoneType = "progesterone"
	HormoneTestosterone HormoneType = "testosterone"
	HormoneLH           HormoneType = "lh"
	HormoneFSH          HormoneType = "fsh"
	HormoneCortisol     HormoneType = "cortisol"
)

func AllHormoneTypes() []HormoneType {
	return []HormoneType{
		HormoneEstrogen,
		HormoneProgesterone,
		HormoneTestosterone,
		HormoneLH,
		HormoneFSH,
		HormoneCortisol,
	}
}

type HormoneTrend string

const (
	HormoneRising  HormoneTrend = "rising"
	HormonePeak    HormoneTrend = "peak"
	HormoneFalling HormoneTrend = "falling"
	HormoneLow     HormoneTrend = "low"
	HormoneStable  HormoneTrend = "stable"
)

// HormoneLevel holds a relative level in [0,1] and its qualitative trend.
type HormoneLevel struct {
	Level float64      `json:"level"`
	Trend HormoneTrend `json:"trend"`
}

type HealthCategory string

const (
	CategoryHair      HealthCategory = "hair"
	CategorySkin      HealthCategory = "skin"
	CategoryWeight    HealthCategory = "weight"
	CategoryMood      HealthCategory = "mood"
	CategoryEnergy    HealthCategory = "energy"
	CategorySleep     HealthCategory = "sleep"
	CategoryDigestion HealthCategory = "digestion"
	CategoryFertility HealthCategory = "fertility"
)

// AllHealthCategories returns every declared category in declaration order.
func AllHealthCategories() []HealthCategory {
	return []HealthCategory{
		CategoryHair,
		CategorySkin,
		CategoryWeight,
		CategoryMood,
		CategoryEnergy,
		CategorySleep,
		CategoryDigestion,
		CategoryFertility,
	}
}

// AvailableHealthCategories returns the categories backed by real table data.
func AvailableHealthCategories() []HealthCategory {
	return []HealthCategory{CategoryHair, CategorySkin, CategoryWeight}
}

func (category HealthCategory) Valid() bool {
	for _, candidate := range AllHealthCategories() {
		if candidate == category {
			return true
		}
	}
	return false
}

type PredictionTrend string

const (
	TrendImproving PredictionTrend = "improving"
	TrendStable    PredictionTrend = "stable"
	TrendDeclining PredictionTrend = "declining"
)

type HealthPrediction struct {
	Category        HealthCategory  `json:"category"`
	Score           int             `json:"score"`
	Trend           PredictionTrend `json:"trend"`
	Recommendations []string        `json:"recommendations"`
	Supplements     []string        `json:"supplements"`
	Lifestyle       []string        `json:"lifestyle"`
	Phase           CyclePhase      `json:"phase"`
	Confidence      int             `json:"confidence"`
}

type TrendTally struct {
	Improving int `json:"improving"`
	Stable    int `json:"stable"`
	Declining int `json:"declining"`
}
