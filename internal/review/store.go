package review

import (
	"database/sql"
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

const reviewColumns = `id, task_id, reviewer_id, reviewee_id, review_type, wager, reason,
       dispute_status, reviewee_statement, verdict_decision, verdict_confidence,
       verdict_reasoning, settled, created_at, resolved_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*models.PeerReview, error) {
	var r models.PeerReview
	var decision, confidence, reasoning *string
	err := row.Scan(&r.ID, &r.TaskID, &r.ReviewerID, &r.RevieweeID, &r.Type, &r.Wager,
		&r.Reason, &r.DisputeStatus, &r.RevieweeStatement, &decision, &confidence,
		&reasoning, &r.Settled, &r.CreatedAt, &r.ResolvedAt)
	if err != nil {
		return nil, err
	}
	if decision != nil {
		r.Verdict = &models.ArbitrationVerdict{Decision: models.ArbitrationDecision(*decision)}
		if confidence != nil {
			r.Verdict.Confidence = *confidence
		}
		if reasoning != nil {
			r.Verdict.Reasoning = *reasoning
		}
	}
	return &r, nil
}

// ── Tasks (review view) ─────────────────────────────────

// GetTask loads the slice of the task row the review flow needs. Title and
// content travel into arbitration material on disputes.
func (s *Store) GetTask(taskID int64) (*models.Task, error) {
	var t models.Task
	err := s.db.QueryRow(
		`SELECT id, course_id, title, content, token_stake, status
		 FROM tasks WHERE id = $1`,
		taskID,
	).Scan(&t.ID, &t.CourseID, &t.Title, &t.Content, &t.TokenStake, &t.Status)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("task %d", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// LatestSubmission returns the most recent submitted attempt on a task, or
// nil when nothing has been submitted yet.
func (s *Store) LatestSubmission(taskID int64) (*models.QuizAttempt, error) {
	var a models.QuizAttempt
	err := s.db.QueryRow(
		`SELECT id, user_id, task_id, theory_answer
		 FROM quiz_attempts
		 WHERE task_id = $1 AND status = 'submitted'
		 ORDER BY submitted_at DESC, id DESC
		 LIMIT 1`,
		taskID,
	).Scan(&a.ID, &a.UserID, &a.TaskID, &a.TheoryAnswer)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest submission: %w", err)
	}
	return &a, nil
}

// ── Reviews ─────────────────────────────────────────────

// CreateReview inserts the vote. One review per reviewer per task; a
// duplicate surfaces as a conflict.
func (s *Store) CreateReview(r *models.PeerReview) error {
	err := s.db.QueryRow(
		`INSERT INTO peer_reviews (task_id, reviewer_id, reviewee_id, review_type, wager, reason, dispute_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		r.TaskID, r.ReviewerID, r.RevieweeID, r.Type, r.Wager, r.Reason, r.DisputeStatus,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperr.Conflictf("you already reviewed task %d", r.TaskID)
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (s *Store) DeleteReview(reviewID int64) error {
	if _, err := s.db.Exec(`DELETE FROM peer_reviews WHERE id = $1`, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *Store) GetReview(reviewID int64) (*models.PeerReview, error) {
	row := s.db.QueryRow(`SELECT `+reviewColumns+` FROM peer_reviews WHERE id = $1`, reviewID)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("review %d", reviewID)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return r, nil
}

// OpenDispute moves a fresh downvote into the response window.
func (s *Store) OpenDispute(reviewID int64) (bool, error) {
	return s.casDispute(reviewID,
		`UPDATE peer_reviews SET dispute_status = 'pending_response'
		 WHERE id = $1 AND dispute_status = 'none'`,
		reviewID)
}

// RespondAgree concedes the downvote and closes the dispute.
func (s *Store) RespondAgree(reviewID int64, resolvedAt time.Time) (bool, error) {
	return s.casDispute(reviewID,
		`UPDATE peer_reviews SET dispute_status = 'agreed', resolved_at = $2
		 WHERE id = $1 AND dispute_status = 'pending_response'`,
		reviewID, resolvedAt)
}

// RespondDispute records the reviewee's statement and contests the downvote.
func (s *Store) RespondDispute(reviewID int64, statement string) (bool, error) {
	return s.casDispute(reviewID,
		`UPDATE peer_reviews SET dispute_status = 'disputed', reviewee_statement = $2
		 WHERE id = $1 AND dispute_status = 'pending_response'`,
		reviewID, statement)
}

// MarkAIReviewing claims the dispute for arbitration.
func (s *Store) MarkAIReviewing(reviewID int64) (bool, error) {
	return s.casDispute(reviewID,
		`UPDATE peer_reviews SET dispute_status = 'ai_reviewing'
		 WHERE id = $1 AND dispute_status = 'disputed'`,
		reviewID)
}

// SaveVerdict records the arbitration outcome. Only a review that is
// actually under arbitration can be resolved.
func (s *Store) SaveVerdict(reviewID int64, verdict models.ArbitrationVerdict, to models.DisputeStatus, resolvedAt time.Time) (bool, error) {
	return s.casDispute(reviewID,
		`UPDATE peer_reviews
		 SET dispute_status = $2, verdict_decision = $3, verdict_confidence = $4,
		     verdict_reasoning = $5, resolved_at = $6
		 WHERE id = $1 AND dispute_status = 'ai_reviewing'`,
		reviewID, to, verdict.Decision, verdict.Confidence, verdict.Reasoning, resolvedAt)
}

func (s *Store) casDispute(reviewID int64, query string, args ...interface{}) (bool, error) {
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("update review %d: %w", reviewID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// SettleReview flips the settlement flag exactly once. False means tokens
// and counters for this review already moved.
func (s *Store) SettleReview(reviewID int64, at time.Time) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE peer_reviews
		 SET settled = TRUE, resolved_at = COALESCE(resolved_at, $2)
		 WHERE id = $1 AND settled = FALSE`,
		reviewID, at,
	)
	if err != nil {
		return false, fmt.Errorf("settle review: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
