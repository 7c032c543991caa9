package schedule

import (
	"testing"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestBuildSchedule_PassSplit(t *testing.T) {
	tests := []struct {
		name      string
		totalDays int
		want      [3]int
	}{
		{"fifteen days", 15, [3]int{6, 5, 4}},
		{"ten days", 10, [3]int{4, 4, 2}},
		{"three days", 3, [3]int{1, 1, 1}},
		{"two days", 2, [3]int{1, 1, 1}},
		{"one day", 1, [3]int{1, 1, 1}},
		{"thirty days", 30, [3]int{12, 11, 7}},
	}

	start := day(t, "2026-03-01")
	topics := []string{"graphs", "flows", "matchings"}

	for _, tt := range tests {
		end := start.AddDate(0, 0, tt.totalDays)
		plan := BuildSchedule(topics, start, end)
		if plan.TotalDays != tt.totalDays {
			t.Errorf("%s: TotalDays = %d, want %d", tt.name, plan.TotalDays, tt.totalDays)
		}
		if plan.PassDays != tt.want {
			t.Errorf("%s: PassDays = %v, want %v", tt.name, plan.PassDays, tt.want)
		}
	}
}

func TestBuildSchedule_RoundRobinTopics(t *testing.T) {
	start := day(t, "2026-03-01")
	end := start.AddDate(0, 0, 15)
	topics := []string{"graphs", "flows", "matchings"}

	plan := BuildSchedule(topics, start, end)
	if len(plan.Slots) != 15 {
		t.Fatalf("got %d slots, want 15", len(plan.Slots))
	}

	// Within each pass, day d covers topics[d mod 3].
	d := 0
	for pass := 0; pass < 3; pass++ {
		for i := 0; i < plan.PassDays[pass]; i++ {
			slot := plan.Slots[d]
			if slot.PassNumber != pass+1 {
				t.Errorf("slot %d: pass = %d, want %d", d, slot.PassNumber, pass+1)
			}
			if want := topics[i%3]; slot.Topic != want {
				t.Errorf("slot %d: topic = %q, want %q", d, slot.Topic, want)
			}
			if slot.DayIndex != d {
				t.Errorf("slot %d: day index = %d, want %d", d, slot.DayIndex, d)
			}
			d++
		}
	}
}

func TestBuildSchedule_DatesSequential(t *testing.T) {
	start := day(t, "2026-03-01")
	end := start.AddDate(0, 0, 15)

	plan := BuildSchedule([]string{"one topic"}, start, end)
	for i, slot := range plan.Slots {
		want := start.AddDate(0, 0, i)
		if !slot.Date.Equal(want) {
			t.Errorf("slot %d: date = %s, want %s", i, slot.Date.Format("2006-01-02"), want.Format("2006-01-02"))
		}
		if slot.Date.Before(start) || !slot.Date.Before(end) {
			t.Errorf("slot %d: date %s outside [start, end)", i, slot.Date.Format("2006-01-02"))
		}
	}
}

func TestBuildSchedule_OneDayCollapses(t *testing.T) {
	start := day(t, "2026-03-01")
	end := start.AddDate(0, 0, 1)

	plan := BuildSchedule([]string{"integrals"}, start, end)
	if len(plan.Slots) != 3 {
		t.Fatalf("got %d slots, want 3 (one per pass)", len(plan.Slots))
	}
	for i, slot := range plan.Slots {
		if !slot.Date.Equal(start) {
			t.Errorf("slot %d: date = %s, want collapse onto %s",
				i, slot.Date.Format("2006-01-02"), start.Format("2006-01-02"))
		}
		if slot.PassNumber != i+1 {
			t.Errorf("slot %d: pass = %d, want %d", i, slot.PassNumber, i+1)
		}
	}
}

func TestBuildSchedule_TwoDayClamp(t *testing.T) {
	start := day(t, "2026-03-01")
	end := start.AddDate(0, 0, 2)

	plan := BuildSchedule([]string{"series"}, start, end)
	if len(plan.Slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(plan.Slots))
	}
	lastDay := start.AddDate(0, 0, 1)
	if !plan.Slots[0].Date.Equal(start) {
		t.Errorf("slot 0 date = %s, want %s", plan.Slots[0].Date, start)
	}
	if !plan.Slots[1].Date.Equal(lastDay) {
		t.Errorf("slot 1 date = %s, want %s", plan.Slots[1].Date, lastDay)
	}
	if !plan.Slots[2].Date.Equal(lastDay) {
		t.Errorf("slot 2 date = %s, want clamp to %s", plan.Slots[2].Date, lastDay)
	}
}

func TestBuildSchedule_NoTopics(t *testing.T) {
	start := day(t, "2026-03-01")
	plan := BuildSchedule(nil, start, start.AddDate(0, 0, 10))
	if len(plan.Slots) != 0 {
		t.Errorf("got %d slots for empty topic list, want 0", len(plan.Slots))
	}
	if plan.TotalDays != 10 {
		t.Errorf("TotalDays = %d, want 10", plan.TotalDays)
	}
}

func TestPassDifficulty(t *testing.T) {
	tests := []struct {
		pass int
		want models.Difficulty
	}{
		{1, models.DifficultyEasy},
		{2, models.DifficultyMedium},
		{3, models.DifficultyHard},
	}
	for _, tt := range tests {
		if got := PassDifficulty(tt.pass); got != tt.want {
			t.Errorf("PassDifficulty(%d) = %s, want %s", tt.pass, got, tt.want)
		}
	}
}
