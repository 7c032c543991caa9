package quiz

import "github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"

// SecondsPerQuestion is each question's share of the MCQ clock. The clock
// is cumulative, so time saved early can be spent on later questions.
const SecondsPerQuestion = 17.0

// PassScore is the minimum MCQ score that unlocks the theory round.
const PassScore = 8

const (
	pointsCorrect    = 2
	pointsWrong      = -2
	pointsUnanswered = -1
)

// ScoreMCQ grades a response sheet against the attempt's questions. A
// question times out when total elapsed time through it strictly exceeds
// its cumulative budget; timed-out and skipped questions both cost a point
// and keep Correct nil. Returns the score, whether it passes, and the
// per-question grading.
func ScoreMCQ(questions []models.QuizQuestion, responses []models.MCQResponseInput) (int, bool, []models.QuizResponse) {
	graded := make([]models.QuizResponse, len(questions))
	score := 0
	elapsed := 0.0

	for i, question := range questions {
		result := models.QuizResponse{QuestionIndex: i}

		var input *models.MCQResponseInput
		if i < len(responses) {
			input = &responses[i]
			result.Selected = input.Selected
			result.ElapsedSeconds = input.ElapsedSeconds
			elapsed += input.ElapsedSeconds
		}

		budget := float64(i+1) * SecondsPerQuestion
		switch {
		case input != nil && elapsed > budget:
			result.TimedOut = true
			result.Points = pointsUnanswered
		case input == nil || input.Selected == nil:
			result.Points = pointsUnanswered
		default:
			correct := *input.Selected == question.CorrectIndex
			result.Correct = &correct
			if correct {
				result.Points = pointsCorrect
			} else {
				result.Points = pointsWrong
			}
		}

		score += result.Points
		graded[i] = result
	}

	return score, score >= PassScore, graded
}
