package models

import (
	"strings"
	"time"
)

// UserStats are the lifetime counters reputation is recomputed from. They
// only ever increase; scores are derived, never patched incrementally.
type UserStats struct {
	UpvotesReceived   int `json:"upvotes_received"`
	DownvotesLost     int `json:"downvotes_lost"`
	DownvotesDefended int `json:"downvotes_defended"`
	QuizzesPassed     int `json:"quizzes_passed"`
	QuizzesFailed     int `json:"quizzes_failed"`
	TasksCompleted    int `json:"tasks_completed"`
	TokensLostTotal   int `json:"tokens_lost_total"`
}

type User struct {
	ID                int64      `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	TokenBalance      int        `json:"token_balance"`
	Reputation        int        `json:"reputation"`
	CurrentStreakDays int        `json:"current_streak_days"`
	LongestStreak     int        `json:"longest_streak"`
	LastActiveDate    *time.Time `json:"last_active_date,omitempty"`
	LastPenaltyDate   *time.Time `json:"last_penalty_date,omitempty"`
	TokensLostToBleed int        `json:"tokens_lost_to_bleed"`
	Stats             UserStats  `json:"stats"`
	CreatedAt         time.Time  `json:"created_at"`
}

// DisplayName returns "FirstName L." format (first name + last initial).
func (u User) DisplayName() string {
	return FormatDisplayName(u.Name)
}

// FormatDisplayName shortens a full name to "FirstName L." for public
// surfaces like leaderboards.
func FormatDisplayName(name string) string {
	parts := splitName(name)
	if len(parts) <= 1 {
		return name
	}
	lastName := parts[len(parts)-1]
	if len(lastName) > 0 {
		return parts[0] + " " + string([]rune(lastName)[0]) + "."
	}
	return parts[0]
}

func splitName(name string) []string {
	var parts []string
	for _, p := range strings.Split(strings.TrimSpace(name), " ") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// ToleranceStatus is the non-mutating absence report. BleedToday is what a
// penalty run would charge right now; BleedTomorrow is the charge one more
// absent day would bring.
type ToleranceStatus struct {
	ToleranceCap       int  `json:"tolerance_cap"`
	DaysAbsent         int  `json:"days_absent"`
	GraceDaysRemaining int  `json:"grace_days_remaining"`
	InGrace            bool `json:"in_grace"`
	BleedToday         int  `json:"bleed_today"`
	BleedTomorrow      int  `json:"bleed_tomorrow"`
	TokensLostToBleed  int  `json:"tokens_lost_to_bleed"`
}

type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       int64  `json:"user_id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	TokenBalance int    `json:"token_balance"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	Metric  string             `json:"metric"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
