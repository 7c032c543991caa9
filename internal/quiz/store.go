package quiz

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/apperr"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Tasks (quiz view) ───────────────────────────────────

// GetTask loads the slice of the task row the quiz flow needs.
func (s *Store) GetTask(taskID int64) (*models.Task, error) {
	var t models.Task
	err := s.db.QueryRow(
		`SELECT id, course_id, topic, title, content, difficulty, token_stake,
		        status, deadline, assigned_to
		 FROM tasks WHERE id = $1`,
		taskID,
	).Scan(&t.ID, &t.CourseID, &t.Topic, &t.Title, &t.Content, &t.Difficulty,
		&t.TokenStake, &t.Status, &t.Deadline, &t.AssignedTo)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("task %d", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// TransitionTask moves a task between statuses. The status filter makes the
// write a compare-and-set; false means the row was no longer in the
// expected state.
func (s *Store) TransitionTask(taskID int64, from, to models.TaskStatus) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE tasks SET status = $3 WHERE id = $1 AND status = $2`,
		taskID, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("transition task: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ── Attempts ────────────────────────────────────────────

func (s *Store) CountAttempts(userID, taskID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1 AND task_id = $2`,
		userID, taskID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return count, nil
}

func (s *Store) HasOpenAttempt(userID, taskID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (
		    SELECT 1 FROM quiz_attempts
		    WHERE user_id = $1 AND task_id = $2 AND status = 'mcq_in_progress'
		 )`,
		userID, taskID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check open attempt: %w", err)
	}
	return exists, nil
}

// CreateAttempt inserts the attempt row. A duplicate (user, task, attempt
// number) surfaces as a conflict; the uniqueness constraint is the guard
// against racing starts.
func (s *Store) CreateAttempt(a *models.QuizAttempt) error {
	questionsJSON, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	err = s.db.QueryRow(
		`INSERT INTO quiz_attempts (user_id, task_id, attempt_number, effective_stake, status, questions)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, started_at`,
		a.UserID, a.TaskID, a.AttemptNumber, a.EffectiveStake, a.Status, questionsJSON,
	).Scan(&a.ID, &a.StartedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperr.Conflictf("attempt %d for task %d already exists", a.AttemptNumber, a.TaskID)
		}
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (s *Store) GetAttempt(attemptID int64) (*models.QuizAttempt, error) {
	var a models.QuizAttempt
	var questionsJSON, responsesJSON []byte
	err := s.db.QueryRow(
		`SELECT id, user_id, task_id, attempt_number, effective_stake, status,
		        questions, responses, score, passed, token_settled, theory_answer,
		        started_at, mcq_completed_at, submitted_at
		 FROM quiz_attempts WHERE id = $1`,
		attemptID,
	).Scan(&a.ID, &a.UserID, &a.TaskID, &a.AttemptNumber, &a.EffectiveStake, &a.Status,
		&questionsJSON, &responsesJSON, &a.Score, &a.Passed, &a.TokenSettled, &a.TheoryAnswer,
		&a.StartedAt, &a.MCQCompletedAt, &a.SubmittedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("attempt %d", attemptID)
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &a.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	if responsesJSON != nil {
		if err := json.Unmarshal(responsesJSON, &a.Responses); err != nil {
			return nil, fmt.Errorf("unmarshal responses: %w", err)
		}
	}
	return &a, nil
}

// SaveMCQResult records the grading, guarded by the open status. False
// means another submit got there first.
func (s *Store) SaveMCQResult(attemptID int64, to models.AttemptStatus, responses []models.QuizResponse, score int, passed bool, completedAt time.Time) (bool, error) {
	responsesJSON, err := json.Marshal(responses)
	if err != nil {
		return false, fmt.Errorf("marshal responses: %w", err)
	}

	result, err := s.db.Exec(
		`UPDATE quiz_attempts
		 SET status = $2, responses = $3, score = $4, passed = $5, mcq_completed_at = $6
		 WHERE id = $1 AND status = 'mcq_in_progress'`,
		attemptID, to, responsesJSON, score, passed, completedAt,
	)
	if err != nil {
		return false, fmt.Errorf("save mcq result: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (s *Store) TransitionAttempt(attemptID int64, from, to models.AttemptStatus) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE quiz_attempts SET status = $3 WHERE id = $1 AND status = $2`,
		attemptID, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("transition attempt: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// SettleTokens flips the settlement flag exactly once. False means the
// attempt was already settled and no tokens should move.
func (s *Store) SettleTokens(attemptID int64) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE quiz_attempts SET token_settled = TRUE WHERE id = $1 AND token_settled = FALSE`,
		attemptID,
	)
	if err != nil {
		return false, fmt.Errorf("settle attempt: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (s *Store) SaveTheory(attemptID int64, answer string, submittedAt time.Time) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE quiz_attempts
		 SET theory_answer = $2, status = 'submitted', submitted_at = $3
		 WHERE id = $1 AND status = 'theory_pending'`,
		attemptID, answer, submittedAt,
	)
	if err != nil {
		return false, fmt.Errorf("save theory: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
