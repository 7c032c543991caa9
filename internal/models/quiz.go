package models

import "time"

type AttemptStatus string

const (
	AttemptMCQInProgress AttemptStatus = "mcq_in_progress"
	AttemptMCQCompleted  AttemptStatus = "mcq_completed"
	AttemptMCQFailed     AttemptStatus = "mcq_failed"
	AttemptTheoryPending AttemptStatus = "theory_pending"
	AttemptSubmitted     AttemptStatus = "submitted"
)

var attemptTransitions = map[AttemptStatus]map[AttemptStatus]bool{
	AttemptMCQInProgress: {
		AttemptMCQCompleted: true,
		AttemptMCQFailed:    true,
	},
	AttemptMCQCompleted: {
		AttemptTheoryPending: true,
	},
	AttemptTheoryPending: {
		AttemptSubmitted: true,
	},
	AttemptMCQFailed: {},
	AttemptSubmitted: {},
}

func (s AttemptStatus) CanTransition(next AttemptStatus) bool {
	return attemptTransitions[s][next]
}

// Every quiz is the same shape: six questions, four options each.
const (
	MCQQuestionCount = 6
	MCQOptionCount   = 4
)

// QuizQuestion is one generated multiple-choice item. Options always has
// exactly four entries and CorrectIndex points into it.
type QuizQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// QuizResponse records the grading of a single question.
type QuizResponse struct {
	QuestionIndex  int     `json:"question_index"`
	Selected       *int    `json:"selected"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	TimedOut       bool    `json:"timed_out"`
	Correct        *bool   `json:"correct"`
	Points         int     `json:"points"`
}

// QuizAttempt is one user's run at a task's quiz. EffectiveStake is the
// stake actually deducted at start, decayed by attempt number.
type QuizAttempt struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	TaskID         int64          `json:"task_id"`
	AttemptNumber  int            `json:"attempt_number"`
	EffectiveStake int            `json:"effective_stake"`
	Status         AttemptStatus  `json:"status"`
	Questions      []QuizQuestion `json:"questions,omitempty"`
	Responses      []QuizResponse `json:"responses,omitempty"`
	Score          int            `json:"score"`
	Passed         bool           `json:"passed"`
	TokenSettled   bool           `json:"token_settled"`
	TheoryAnswer   *string        `json:"theory_answer,omitempty"`
	StartedAt      time.Time      `json:"started_at"`
	MCQCompletedAt *time.Time     `json:"mcq_completed_at,omitempty"`
	SubmittedAt    *time.Time     `json:"submitted_at,omitempty"`
}

// AttemptView is the attempt as served to the taker: correct indexes are
// stripped until the MCQ phase is over.
type AttemptView struct {
	ID             int64            `json:"id"`
	TaskID         int64            `json:"task_id"`
	AttemptNumber  int              `json:"attempt_number"`
	EffectiveStake int              `json:"effective_stake"`
	Status         AttemptStatus    `json:"status"`
	Questions      []ServedQuestion `json:"questions"`
	StartedAt      time.Time        `json:"started_at"`
}

type ServedQuestion struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type MCQResponseInput struct {
	Selected       *int    `json:"selected"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type SubmitMCQRequest struct {
	Responses []MCQResponseInput `json:"responses"`
}

type SubmitMCQResponse struct {
	AttemptID    int64          `json:"attempt_id"`
	Score        int            `json:"score"`
	Passed       bool           `json:"passed"`
	Status       AttemptStatus  `json:"status"`
	TokensMoved  int            `json:"tokens_moved"`
	TokenBalance int            `json:"token_balance"`
	Responses    []QuizResponse `json:"responses"`
}

type SubmitTheoryRequest struct {
	Answer string `json:"answer"`
}
