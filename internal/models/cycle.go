package models

import "time"

type CyclePhase string

const (
	PhaseMenstrual  CyclePhase = "menstrual"
	PhaseFollicular CyclePhase = "follicular"
	PhaseOvulatory  CyclePhase = "ovulatory"
	PhaseLuteal     CyclePhase = "luteal"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
	MinCycleLength      = 21
	MaxCycleLength      = 45
	MinPeriodLength     = 1
	MaxPeriodLength     = 10
)

func AllCyclePhases() []CyclePhase {
	return []CyclePhase{PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal}
}

func (phase CyclePhase) Valid() bool {
	switch phase {
	case PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal:
		return true
	default:
		return false
	}
}

type UserProfile struct {
	Name                string `json:"name"`
	BirthYear           int    `json:"birthYear,omitempty"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
}

// CycleData is what the user entered during onboarding. Zero lengths mean
// the defaults apply.
type CycleData struct {
	LastPeriodDate *time.Time `json:"lastPeriodDate,omitempty"`
	CycleLength    int        `json:"cycleLength,omitempty"`
	PeriodLength   int        `json:"periodLength,omitempty"`
	IsRegular      bool       `json:"isRegular"`
}

func (cycle CycleData) EffectiveCycleLength() int {
	if cycle.CycleLength <= 0 {
		return DefaultCycleLength
	}
	return cycle.CycleLength
}

func (cycle CycleData) EffectivePeriodLength() int {
	if cycle.PeriodLength <= 0 {
		return DefaultPeriodLength
	}
	return cycle.PeriodLength
}

type PredictionContext struct {
	Profile UserProfile `json:"profile"`
	Cycle   CycleData   `json:"cycle"`
}
