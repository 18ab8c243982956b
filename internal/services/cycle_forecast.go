package services

import (
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
)

const defaultLutealPhaseDays = 14

type CycleForecast struct {
	CurrentCycleDay      int       `json:"currentCycleDay"`
	LastPeriodStart      time.Time `json:"lastPeriodStart"`
	NextPeriodStart      time.Time `json:"nextPeriodStart"`
	OvulationDate        time.Time `json:"ovulationDate"`
	FertilityWindowStart time.Time `json:"fertilityWindowStart"`
	FertilityWindowEnd   time.Time `json:"fertilityWindowEnd"`
	InFertilityWindow    bool      `json:"inFertilityWindow"`
}

// BuildCycleForecast projects the current cycle from the last period start
// and the user's cycle length. It returns false until a last period date is known.
// Elapsed cycles roll forward so the forecast always describes the cycle
// containing today.
func BuildCycleForecast(cycle models.CycleData, now time.Time) (CycleForecast, bool) {
	if cycle.LastPeriodDate == nil || cycle.LastPeriodDate.IsZero() {
		return CycleForecast{}, false
	}

	cycleLength := cycle.EffectiveCycleLength()
	today := dateOnly(now)
	start := dateOnly(cycle.LastPeriodDate.In(now.Location()))

	elapsed := daysBetween(start, today)
	if elapsed >= cycleLength {
		start = start.AddDate(0, 0, (elapsed/cycleLength)*cycleLength)
	}

	forecast := CycleForecast{LastPeriodStart: start}
	forecast.NextPeriodStart = start.AddDate(0, 0, cycleLength)
	forecast.OvulationDate = forecast.NextPeriodStart.AddDate(0, 0, -defaultLutealPhaseDays)
	forecast.FertilityWindowStart = forecast.OvulationDate.AddDate(0, 0, -5)
	forecast.FertilityWindowEnd = forecast.OvulationDate.AddDate(0, 0, 1)

	if !today.Before(start) {
		forecast.CurrentCycleDay = daysBetween(start, today) + 1
	}
	forecast.InFertilityWindow = betweenInclusive(today, forecast.FertilityWindowStart, forecast.FertilityWindowEnd)
	return forecast, true
}

func betweenInclusive(day, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !day.Before(start) && !day.After(end)
}
