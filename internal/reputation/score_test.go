package reputation

import (
	"testing"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		stats models.UserStats
		want  int
	}{
		{"fresh user", models.UserStats{}, 0},
		{
			"productive user",
			models.UserStats{UpvotesReceived: 3, QuizzesPassed: 2, TasksCompleted: 4},
			44,
		},
		{
			"losses clamp at zero",
			models.UserStats{DownvotesLost: 2},
			0,
		},
		{
			"token losses round half up",
			models.UserStats{UpvotesReceived: 1, TokensLostTotal: 25},
			8,
		},
		{
			"small token loss",
			models.UserStats{UpvotesReceived: 1, TokensLostTotal: 5},
			10,
		},
		{
			"everything at once",
			models.UserStats{
				UpvotesReceived:   5,
				DownvotesLost:     1,
				DownvotesDefended: 2,
				QuizzesPassed:     3,
				TasksCompleted:    6,
				TokensLostTotal:   40,
			},
			62,
		},
		{
			"failed quizzes do not directly score",
			models.UserStats{UpvotesReceived: 1, QuizzesFailed: 9},
			10,
		},
	}
	for _, tt := range tests {
		if got := Score(tt.stats); got != tt.want {
			t.Errorf("%s: Score(%+v) = %d, want %d", tt.name, tt.stats, got, tt.want)
		}
	}
}

func TestProficiency(t *testing.T) {
	tests := []struct {
		name string
		prof models.CourseProficiency
		want int
	}{
		{"no activity", models.CourseProficiency{}, 0},
		{
			"balanced record",
			models.CourseProficiency{
				Upvotes:           2,
				DownvotesLost:     1,
				DownvotesDefended: 1,
				TasksCompleted:    3,
				QuizzesFailed:     2,
				QuizzesPassed:     4,
			},
			35,
		},
		{
			"failed quizzes clamp at zero",
			models.CourseProficiency{QuizzesFailed: 10},
			0,
		},
		{
			"quiz heavy",
			models.CourseProficiency{QuizzesPassed: 6, QuizzesFailed: 1},
			28,
		},
	}
	for _, tt := range tests {
		if got := Proficiency(tt.prof); got != tt.want {
			t.Errorf("%s: Proficiency = %d, want %d", tt.name, got, tt.want)
		}
	}
}
