package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

// GeneratedTask is the model's JSON for one study task body.
type GeneratedTask struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	DurationHours int    `json:"duration_hours"`
}

type generatedQuiz struct {
	Questions []models.QuizQuestion `json:"questions"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseTaskContent extracts a task body from a model response. A missing
// title or body rejects the response; an out-of-band duration is clamped
// into the 1-4 hour range instead.
func ParseTaskContent(responseBody string) (*GeneratedTask, error) {
	cleaned := stripCodeFences(responseBody)

	var task GeneratedTask
	if err := json.Unmarshal([]byte(cleaned), &task); err != nil {
		return nil, fmt.Errorf("parse task JSON: %w", err)
	}

	var errs []string
	if strings.TrimSpace(task.Title) == "" {
		errs = append(errs, "empty title")
	}
	if strings.TrimSpace(task.Content) == "" {
		errs = append(errs, "empty content")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	if task.DurationHours < 1 {
		task.DurationHours = 1
	}
	if task.DurationHours > 4 {
		task.DurationHours = 4
	}

	return &task, nil
}

// ParseQuizBatch extracts a quiz from a model response and enforces its
// shape: exactly six questions, four options each, correct_index in range.
func ParseQuizBatch(responseBody string) ([]models.QuizQuestion, error) {
	cleaned := stripCodeFences(responseBody)

	var quiz generatedQuiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, fmt.Errorf("parse quiz JSON: %w", err)
	}

	if len(quiz.Questions) != models.MCQQuestionCount {
		return nil, &ValidationError{Errors: []string{
			fmt.Sprintf("expected %d questions, got %d", models.MCQQuestionCount, len(quiz.Questions)),
		}}
	}

	var errs []string
	for i, q := range quiz.Questions {
		qNum := i + 1

		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty prompt", qNum))
		}
		if len(q.Options) != models.MCQOptionCount {
			errs = append(errs, fmt.Sprintf("question %d: expected %d options, got %d", qNum, models.MCQOptionCount, len(q.Options)))
			continue
		}
		for j, option := range q.Options {
			if strings.TrimSpace(option) == "" {
				errs = append(errs, fmt.Sprintf("question %d: option %d is empty", qNum, j+1))
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= models.MCQOptionCount {
			errs = append(errs, fmt.Sprintf("question %d: correct_index %d out of range", qNum, q.CorrectIndex))
		}
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return quiz.Questions, nil
}

var validConfidences = map[string]bool{"high": true, "medium": true, "low": true}

// ParseVerdict extracts an arbitration ruling. Every field is required and
// the decision must be one of the two known outcomes; callers must never
// guess a ruling from a malformed response.
func ParseVerdict(responseBody string) (*models.ArbitrationVerdict, error) {
	cleaned := stripCodeFences(responseBody)

	var verdict models.ArbitrationVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return nil, fmt.Errorf("parse verdict JSON: %w", err)
	}

	var errs []string
	if !models.ValidArbitrationDecisions[verdict.Decision] {
		errs = append(errs, fmt.Sprintf("invalid decision %q", verdict.Decision))
	}
	if !validConfidences[verdict.Confidence] {
		errs = append(errs, fmt.Sprintf("invalid confidence %q", verdict.Confidence))
	}
	if strings.TrimSpace(verdict.Reasoning) == "" {
		errs = append(errs, "empty reasoning")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &verdict, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
