package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

func questionJSON(num, optionCount, correctIndex int) string {
	options := make([]string, optionCount)
	for j := range options {
		options[j] = fmt.Sprintf(`"option %d"`, j+1)
	}
	return fmt.Sprintf(`{"prompt":"question %d","options":[%s],"correct_index":%d}`,
		num, strings.Join(options, ","), correctIndex)
}

func quizJSON(questions ...string) string {
	return fmt.Sprintf(`{"questions":[%s]}`, strings.Join(questions, ","))
}

func validQuizJSON() string {
	questions := make([]string, models.MCQQuestionCount)
	for i := range questions {
		questions[i] = questionJSON(i+1, models.MCQOptionCount, i%models.MCQOptionCount)
	}
	return quizJSON(questions...)
}

func TestParseTaskContent_Valid(t *testing.T) {
	task, err := ParseTaskContent(`{"title":"Rework the proofs","content":"Reproduce the three main proofs from memory.","duration_hours":3}`)
	if err != nil {
		t.Fatalf("ParseTaskContent: %v", err)
	}
	if task.Title != "Rework the proofs" || task.DurationHours != 3 {
		t.Errorf("parsed task = %+v", task)
	}
}

func TestParseTaskContent_CodeFences(t *testing.T) {
	body := "```json\n{\"title\":\"t\",\"content\":\"c\",\"duration_hours\":1}\n```"
	task, err := ParseTaskContent(body)
	if err != nil {
		t.Fatalf("ParseTaskContent with fences: %v", err)
	}
	if task.Title != "t" {
		t.Errorf("title = %q, want %q", task.Title, "t")
	}
}

func TestParseTaskContent_DurationClamped(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{0, 1},
		{-2, 1},
		{4, 4},
		{9, 4},
	}
	for _, tt := range tests {
		body := fmt.Sprintf(`{"title":"t","content":"c","duration_hours":%d}`, tt.raw)
		task, err := ParseTaskContent(body)
		if err != nil {
			t.Fatalf("ParseTaskContent(duration %d): %v", tt.raw, err)
		}
		if task.DurationHours != tt.want {
			t.Errorf("duration %d clamped to %d, want %d", tt.raw, task.DurationHours, tt.want)
		}
	}
}

func TestParseTaskContent_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty title", `{"title":"  ","content":"c","duration_hours":2}`, "empty title"},
		{"empty content", `{"title":"t","content":"","duration_hours":2}`, "empty content"},
		{"not json", `the model apologizes and explains instead`, "parse task JSON"},
	}
	for _, tt := range tests {
		_, err := ParseTaskContent(tt.body)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestParseQuizBatch_Valid(t *testing.T) {
	questions, err := ParseQuizBatch(validQuizJSON())
	if err != nil {
		t.Fatalf("ParseQuizBatch: %v", err)
	}
	if len(questions) != models.MCQQuestionCount {
		t.Fatalf("got %d questions, want %d", len(questions), models.MCQQuestionCount)
	}
	if questions[2].Prompt != "question 3" || questions[2].CorrectIndex != 2 {
		t.Errorf("question 3 = %+v", questions[2])
	}
}

func TestParseQuizBatch_CodeFences(t *testing.T) {
	if _, err := ParseQuizBatch("```json\n" + validQuizJSON() + "\n```"); err != nil {
		t.Errorf("ParseQuizBatch with fences: %v", err)
	}
}

func TestParseQuizBatch_Rejections(t *testing.T) {
	fiveQuestions := make([]string, 5)
	for i := range fiveQuestions {
		fiveQuestions[i] = questionJSON(i+1, 4, 0)
	}

	shortOptions := make([]string, models.MCQQuestionCount)
	for i := range shortOptions {
		shortOptions[i] = questionJSON(i+1, 4, 0)
	}
	shortOptions[3] = questionJSON(4, 3, 0)

	badIndex := make([]string, models.MCQQuestionCount)
	for i := range badIndex {
		badIndex[i] = questionJSON(i+1, 4, 0)
	}
	badIndex[0] = questionJSON(1, 4, 7)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"five questions", quizJSON(fiveQuestions...), "expected 6 questions, got 5"},
		{"three options", quizJSON(shortOptions...), "question 4: expected 4 options, got 3"},
		{"index out of range", quizJSON(badIndex...), "question 1: correct_index 7 out of range"},
		{"empty batch", `{"questions":[]}`, "expected 6 questions, got 0"},
		{"not json", "no quiz here", "parse quiz JSON"},
	}
	for _, tt := range tests {
		_, err := ParseQuizBatch(tt.body)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestParseVerdict_Valid(t *testing.T) {
	verdict, err := ParseVerdict(`{"decision":"downvoter_correct","confidence":"high","reasoning":"the submission skips the required proof"}`)
	if err != nil {
		t.Fatalf("ParseVerdict: %v", err)
	}
	if verdict.Decision != models.DecisionDownvoterCorrect || verdict.Confidence != "high" {
		t.Errorf("verdict = %+v", verdict)
	}
}

func TestParseVerdict_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			"unknown decision",
			`{"decision":"split_the_difference","confidence":"high","reasoning":"r"}`,
			`invalid decision "split_the_difference"`,
		},
		{
			"missing decision",
			`{"confidence":"high","reasoning":"r"}`,
			"invalid decision",
		},
		{
			"unknown confidence",
			`{"decision":"reviewee_correct","confidence":"certain","reasoning":"r"}`,
			`invalid confidence "certain"`,
		},
		{
			"empty reasoning",
			`{"decision":"reviewee_correct","confidence":"low","reasoning":" "}`,
			"empty reasoning",
		},
		{"not json", "I find in favor of the reviewee.", "parse verdict JSON"},
	}
	for _, tt := range tests {
		_, err := ParseVerdict(tt.body)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"  {}  ", "{}"},
		{"{}", "{}"},
	}
	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
