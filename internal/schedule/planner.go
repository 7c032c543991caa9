package schedule

import (
	"math"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

// ScheduleSlot is one study day produced by the planner.
type ScheduleSlot struct {
	DayIndex   int
	PassNumber int
	Topic      string
	Date       time.Time
}

// Plan is the three-pass split of a preparation window.
type Plan struct {
	TotalDays int
	PassDays  [3]int
	Slots     []ScheduleSlot
}

// BuildSchedule spreads topics across the days between start and end in
// three passes: roughly 40% of days for first coverage, 35% for the second
// pass, and the remainder for the final pass. Within a pass, day d covers
// topics[d mod K]. DayIndex runs 0-based across the whole plan.
//
// Every pass is at least one day, so tiny windows produce more slots than
// calendar days; slot dates are clamped to the day before the event, which
// for a one-day window collapses all three passes onto day 0.
func BuildSchedule(topics []string, start, end time.Time) Plan {
	totalDays := int(math.Round(end.Sub(start).Hours() / 24))
	if totalDays < 1 {
		totalDays = 1
	}

	pass1 := int(math.Round(0.40 * float64(totalDays)))
	if pass1 < 1 {
		pass1 = 1
	}
	pass2 := int(math.Round(0.35 * float64(totalDays)))
	if pass2 < 1 {
		pass2 = 1
	}
	pass3 := totalDays - pass1 - pass2
	if pass3 < 1 {
		pass3 = 1
	}

	plan := Plan{TotalDays: totalDays, PassDays: [3]int{pass1, pass2, pass3}}
	if len(topics) == 0 {
		return plan
	}

	dayIndex := 0
	for pass, days := range plan.PassDays {
		for d := 0; d < days; d++ {
			offset := dayIndex
			if offset > totalDays-1 {
				offset = totalDays - 1
			}
			plan.Slots = append(plan.Slots, ScheduleSlot{
				DayIndex:   dayIndex,
				PassNumber: pass + 1,
				Topic:      topics[d%len(topics)],
				Date:       start.AddDate(0, 0, offset),
			})
			dayIndex++
		}
	}
	return plan
}

// PassDifficulty escalates with the pass: first exposure stays easy, the
// final pre-event pass is hard.
func PassDifficulty(passNumber int) models.Difficulty {
	switch passNumber {
	case 1:
		return models.DifficultyEasy
	case 2:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}
