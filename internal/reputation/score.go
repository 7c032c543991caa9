package reputation

import (
	"math"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

// Score computes a user's global reputation from lifetime counters. Token
// losses drag at a tenth of face value. The result never goes negative.
func Score(stats models.UserStats) int {
	raw := 10*float64(stats.UpvotesReceived) -
		15*float64(stats.DownvotesLost) +
		5*float64(stats.DownvotesDefended) +
		3*float64(stats.QuizzesPassed) -
		float64(stats.TokensLostTotal)/10 +
		2*float64(stats.TasksCompleted)

	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	return score
}

// Proficiency computes a user's standing within one course from that
// course's counters. Unlike the global score it punishes failed quizzes
// directly and ignores token losses.
func Proficiency(p models.CourseProficiency) int {
	score := 10*p.Upvotes -
		15*p.DownvotesLost +
		5*p.DownvotesDefended +
		3*p.TasksCompleted -
		2*p.QuizzesFailed +
		5*p.QuizzesPassed

	if score < 0 {
		return 0
	}
	return score
}
