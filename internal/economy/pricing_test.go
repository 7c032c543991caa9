package economy

import (
	"testing"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

func TestCreditFactor(t *testing.T) {
	tests := []struct {
		weight int
		want   float64
	}{
		{-2, 0.2},
		{0, 0.2},
		{1, 0.2},
		{4, 0.8},
		{5, 1.0},
		{8, 1.6},
		{10, 2.0},
		{15, 2.0},
	}
	for _, tt := range tests {
		if got := CreditFactor(tt.weight); got != tt.want {
			t.Errorf("CreditFactor(%d) = %v, want %v", tt.weight, got, tt.want)
		}
	}
}

func TestUrgencyMultiplier(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		until time.Duration
		want  float64
		label string
	}{
		{"overdue", -24 * time.Hour, 2.0, "critical"},
		{"same day", 6 * time.Hour, 2.0, "critical"},
		{"just under three days", 71 * time.Hour, 2.0, "critical"},
		{"exactly three days", 72 * time.Hour, 1.5, "high"},
		{"five days", 5 * 24 * time.Hour, 1.5, "high"},
		{"exactly seven days", 7 * 24 * time.Hour, 1.25, "moderate"},
		{"ten days", 10 * 24 * time.Hour, 1.25, "moderate"},
		{"exactly fourteen days", 14 * 24 * time.Hour, 1.25, "moderate"},
		{"beyond two weeks", 15 * 24 * time.Hour, 1.0, "normal"},
	}
	for _, tt := range tests {
		got, label := UrgencyMultiplier(now, now.Add(tt.until))
		if got != tt.want || label != tt.label {
			t.Errorf("%s: UrgencyMultiplier = (%v, %q), want (%v, %q)", tt.name, got, label, tt.want, tt.label)
		}
	}
}

func TestBaseStake(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		want       int
	}{
		{models.DifficultyEasy, 5},
		{models.DifficultyMedium, 10},
		{models.DifficultyHard, 20},
	}
	for _, tt := range tests {
		if got := BaseStake(tt.difficulty); got != tt.want {
			t.Errorf("BaseStake(%q) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestPriceTask(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		difficulty models.Difficulty
		weight     int
		until      time.Duration
		wantStake  int
		wantLabel  string
	}{
		{"hard light course exam soon", models.DifficultyHard, 4, 5 * 24 * time.Hour, 24, "high"},
		{"easy baseline far out", models.DifficultyEasy, 5, 20 * 24 * time.Hour, 5, "normal"},
		{"medium heavy course critical", models.DifficultyMedium, 10, 24 * time.Hour, 40, "critical"},
		{"hard baseline moderate", models.DifficultyHard, 5, 10 * 24 * time.Hour, 25, "moderate"},
		{"easy light course critical", models.DifficultyEasy, 1, 12 * time.Hour, 2, "critical"},
	}
	for _, tt := range tests {
		stake, label := PriceTask(tt.difficulty, tt.weight, now, now.Add(tt.until))
		if stake != tt.wantStake || label != tt.wantLabel {
			t.Errorf("%s: PriceTask = (%d, %q), want (%d, %q)", tt.name, stake, label, tt.wantStake, tt.wantLabel)
		}
	}
}

func TestPriceTaskNoUrgency(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		weight     int
		want       int
	}{
		{models.DifficultyMedium, 5, 10},
		{models.DifficultyHard, 4, 16},
		{models.DifficultyEasy, 10, 10},
		{models.DifficultyEasy, 1, 1},
	}
	for _, tt := range tests {
		if got := PriceTaskNoUrgency(tt.difficulty, tt.weight); got != tt.want {
			t.Errorf("PriceTaskNoUrgency(%q, %d) = %d, want %d", tt.difficulty, tt.weight, got, tt.want)
		}
	}
}

func TestReattemptStake(t *testing.T) {
	tests := []struct {
		base    int
		attempt int
		want    int
	}{
		{10, 1, 10},
		{10, 2, 6},
		{10, 3, 4},
		{10, 4, 3},
		{10, 5, 2},
		{10, 6, 1},
		{10, 12, 1},
		{20, 2, 12},
		{20, 3, 8},
		{1, 1, 1},
		{1, 5, 1},
		{24, 0, 24},
	}
	for _, tt := range tests {
		if got := ReattemptStake(tt.base, tt.attempt); got != tt.want {
			t.Errorf("ReattemptStake(%d, %d) = %d, want %d", tt.base, tt.attempt, got, tt.want)
		}
	}
}
