package services

import (
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
)

// Phase boundaries in days since the last period started, inclusive.
const (
	menstrualLastDay  = 5
	follicularLastDay = 13
	ovulatoryLastDay  = 16
)

// ClassifyCyclePhase maps the elapsed calendar days since lastPeriodDate to a
// phase on a fixed 28-day model. A today before lastPeriodDate clamps to
// menstrual.
func ClassifyCyclePhase(lastPeriodDate time.Time, today time.Time) models.CyclePhase {
	days := DaysSinceLastPeriod(lastPeriodDate, today)
	switch {
	case days <= menstrualLastDay:
		return models.PhaseMenstrual
	case days <= follicularLastDay:
		return models.PhaseFollicular
	case days <= ovulatoryLastDay:
		return models.PhaseOvulatory
	default:
		return models.PhaseLuteal
	}
}

// PhaseForCycle returns follicular until a last period date is known.
func PhaseForCycle(cycle models.CycleData, today time.Time) models.CyclePhase {
	if cycle.LastPeriodDate == nil || cycle.LastPeriodDate.IsZero() {
		return models.PhaseFollicular
	}
	return ClassifyCyclePhase(*cycle.LastPeriodDate, today)
}

// DaysSinceLastPeriod counts whole calendar days in today's location. It is
// negative when today precedes lastPeriodDate.
func DaysSinceLastPeriod(lastPeriodDate time.Time, today time.Time) int {
	start := dateOnly(lastPeriodDate.In(today.Location()))
	end := dateOnly(today)
	return daysBetween(start, end)
}

func daysBetween(from time.Time, to time.Time) int {
	fromUTC := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
