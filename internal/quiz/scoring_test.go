package quiz

import (
	"fmt"
	"testing"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

func sixQuestions() []models.QuizQuestion {
	questions := make([]models.QuizQuestion, models.MCQQuestionCount)
	for i := range questions {
		questions[i] = models.QuizQuestion{
			Prompt:       fmt.Sprintf("question %d", i+1),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % models.MCQOptionCount,
		}
	}
	return questions
}

func answer(selected int, elapsed float64) models.MCQResponseInput {
	return models.MCQResponseInput{Selected: &selected, ElapsedSeconds: elapsed}
}

func skip(elapsed float64) models.MCQResponseInput {
	return models.MCQResponseInput{ElapsedSeconds: elapsed}
}

func responseSheet(questions []models.QuizQuestion, correct, wrong int, elapsed float64) []models.MCQResponseInput {
	responses := make([]models.MCQResponseInput, 0, correct+wrong)
	for i := 0; i < correct; i++ {
		responses = append(responses, answer(questions[i].CorrectIndex, elapsed))
	}
	for i := correct; i < correct+wrong; i++ {
		responses = append(responses, answer((questions[i].CorrectIndex+1)%models.MCQOptionCount, elapsed))
	}
	return responses
}

func TestScoreMCQ_PassBoundary(t *testing.T) {
	questions := sixQuestions()

	tests := []struct {
		name      string
		correct   int
		wrong     int
		wantScore int
		wantPass  bool
	}{
		{"perfect sheet", 6, 0, 12, true},
		{"five correct one wrong", 5, 1, 8, true},
		{"four correct two wrong", 4, 2, 4, false},
		{"all wrong", 0, 6, -12, false},
	}
	for _, tt := range tests {
		score, passed, graded := ScoreMCQ(questions, responseSheet(questions, tt.correct, tt.wrong, 5))
		if score != tt.wantScore || passed != tt.wantPass {
			t.Errorf("%s: ScoreMCQ = (%d, %v), want (%d, %v)", tt.name, score, passed, tt.wantScore, tt.wantPass)
		}
		if len(graded) != len(questions) {
			t.Errorf("%s: graded %d questions, want %d", tt.name, len(graded), len(questions))
		}
	}
}

func TestScoreMCQ_UnansweredQuestions(t *testing.T) {
	questions := sixQuestions()

	// Three answered correctly, the rest never submitted.
	score, passed, graded := ScoreMCQ(questions, responseSheet(questions, 3, 0, 5))
	if score != 3 || passed {
		t.Fatalf("ScoreMCQ = (%d, %v), want (3, false)", score, passed)
	}
	for i := 3; i < len(graded); i++ {
		if graded[i].Selected != nil || graded[i].Correct != nil || graded[i].TimedOut || graded[i].Points != -1 {
			t.Errorf("question %d: graded = %+v, want unanswered for -1", i, graded[i])
		}
	}
}

func TestScoreMCQ_ExplicitSkips(t *testing.T) {
	questions := sixQuestions()

	responses := responseSheet(questions, 3, 0, 5)
	for i := 0; i < 3; i++ {
		responses = append(responses, skip(2))
	}
	score, passed, graded := ScoreMCQ(questions, responses)
	if score != 3 || passed {
		t.Fatalf("ScoreMCQ = (%d, %v), want (3, false)", score, passed)
	}
	if graded[4].Correct != nil || graded[4].Points != -1 {
		t.Errorf("skipped question graded = %+v, want -1 with no correctness", graded[4])
	}
}

func TestScoreMCQ_ExactBudgetIsNotTimeout(t *testing.T) {
	questions := sixQuestions()

	responses := make([]models.MCQResponseInput, len(questions))
	for i := range responses {
		responses[i] = answer(questions[i].CorrectIndex, SecondsPerQuestion)
	}
	score, passed, graded := ScoreMCQ(questions, responses)
	if score != 12 || !passed {
		t.Fatalf("ScoreMCQ = (%d, %v), want (12, true)", score, passed)
	}
	for i, g := range graded {
		if g.TimedOut {
			t.Errorf("question %d timed out at exactly the cumulative budget", i)
		}
	}
}

func TestScoreMCQ_TimeoutCostsOnePoint(t *testing.T) {
	questions := sixQuestions()

	// First answer runs half a second over its slot; the second claws the
	// half second back so the rest of the sheet stays on budget.
	responses := []models.MCQResponseInput{
		answer(questions[0].CorrectIndex, 17.5),
		answer(questions[1].CorrectIndex, 16.5),
		answer(questions[2].CorrectIndex, 17),
		answer(questions[3].CorrectIndex, 17),
		answer(questions[4].CorrectIndex, 17),
		answer(questions[5].CorrectIndex, 17),
	}
	score, passed, graded := ScoreMCQ(questions, responses)
	if score != 9 || !passed {
		t.Fatalf("ScoreMCQ = (%d, %v), want (9, true)", score, passed)
	}
	if !graded[0].TimedOut || graded[0].Points != -1 || graded[0].Correct != nil {
		t.Errorf("first question graded = %+v, want timed out for -1", graded[0])
	}
	if graded[0].Selected == nil || *graded[0].Selected != questions[0].CorrectIndex {
		t.Errorf("timed-out selection not preserved: %+v", graded[0])
	}
	for i := 1; i < len(graded); i++ {
		if graded[i].TimedOut {
			t.Errorf("question %d timed out, want on budget", i)
		}
	}
}

func TestScoreMCQ_SlowSheetTimesOutEverywhere(t *testing.T) {
	questions := sixQuestions()

	responses := make([]models.MCQResponseInput, len(questions))
	for i := range responses {
		responses[i] = answer(questions[i].CorrectIndex, 20)
	}
	score, passed, _ := ScoreMCQ(questions, responses)
	if score != -6 || passed {
		t.Errorf("ScoreMCQ = (%d, %v), want (-6, false)", score, passed)
	}
}

func TestScoreMCQ_BankedTimeCarriesForward(t *testing.T) {
	questions := sixQuestions()

	// Five quick answers leave 90 seconds of slack for the last question.
	responses := make([]models.MCQResponseInput, len(questions))
	for i := 0; i < 5; i++ {
		responses[i] = answer(questions[i].CorrectIndex, 1)
	}
	responses[5] = answer(questions[5].CorrectIndex, 90)

	score, passed, graded := ScoreMCQ(questions, responses)
	if score != 12 || !passed {
		t.Fatalf("ScoreMCQ = (%d, %v), want (12, true)", score, passed)
	}
	if graded[5].TimedOut {
		t.Errorf("last question timed out with banked time remaining")
	}
}
