package reputation

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/apperr"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// StatDelta names the counters one event bumps. Zero fields are left alone.
type StatDelta struct {
	Upvotes           int
	DownvotesLost     int
	DownvotesDefended int
	QuizzesPassed     int
	QuizzesFailed     int
	TasksCompleted    int
}

// ── Users ───────────────────────────────────────────────

func (s *Store) GetUser(userID int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		`SELECT id, email, name, token_balance, reputation,
		        current_streak_days, longest_streak, last_active_date,
		        last_penalty_date, tokens_lost_to_bleed,
		        upvotes_received, downvotes_lost, downvotes_defended,
		        quizzes_passed, quizzes_failed, tasks_completed,
		        tokens_lost_total, created_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Email, &u.Name, &u.TokenBalance, &u.Reputation,
		&u.CurrentStreakDays, &u.LongestStreak, &u.LastActiveDate,
		&u.LastPenaltyDate, &u.TokensLostToBleed,
		&u.Stats.UpvotesReceived, &u.Stats.DownvotesLost, &u.Stats.DownvotesDefended,
		&u.Stats.QuizzesPassed, &u.Stats.QuizzesFailed, &u.Stats.TasksCompleted,
		&u.Stats.TokensLostTotal, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("user %d", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *Store) UpdateStreak(userID int64, current, longest int, activeDate time.Time) error {
	_, err := s.db.Exec(
		`UPDATE users SET current_streak_days = $2, longest_streak = $3, last_active_date = $4
		 WHERE id = $1`,
		userID, current, longest, activeDate,
	)
	return err
}

func (s *Store) SetReputation(userID int64, score int) error {
	_, err := s.db.Exec(`UPDATE users SET reputation = $2 WHERE id = $1`, userID, score)
	return err
}

// ── Stat Counters ───────────────────────────────────────

// BumpStats applies one event's counter deltas to the user row and the
// per-course mirror in a single transaction, creating the mirror row on
// first touch.
func (s *Store) BumpStats(userID, courseID int64, d StatDelta) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin stats tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE users SET
		    upvotes_received = upvotes_received + $2,
		    downvotes_lost = downvotes_lost + $3,
		    downvotes_defended = downvotes_defended + $4,
		    quizzes_passed = quizzes_passed + $5,
		    quizzes_failed = quizzes_failed + $6,
		    tasks_completed = tasks_completed + $7
		 WHERE id = $1`,
		userID, d.Upvotes, d.DownvotesLost, d.DownvotesDefended,
		d.QuizzesPassed, d.QuizzesFailed, d.TasksCompleted,
	)
	if err != nil {
		return fmt.Errorf("bump user stats: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO course_proficiency
		    (user_id, course_id, upvotes, downvotes_lost, downvotes_defended,
		     tasks_completed, quizzes_passed, quizzes_failed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id, course_id) DO UPDATE SET
		    upvotes = course_proficiency.upvotes + $3,
		    downvotes_lost = course_proficiency.downvotes_lost + $4,
		    downvotes_defended = course_proficiency.downvotes_defended + $5,
		    tasks_completed = course_proficiency.tasks_completed + $6,
		    quizzes_passed = course_proficiency.quizzes_passed + $7,
		    quizzes_failed = course_proficiency.quizzes_failed + $8,
		    updated_at = NOW()`,
		userID, courseID, d.Upvotes, d.DownvotesLost, d.DownvotesDefended,
		d.TasksCompleted, d.QuizzesPassed, d.QuizzesFailed,
	)
	if err != nil {
		return fmt.Errorf("bump course stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stats tx: %w", err)
	}
	return nil
}

func (s *Store) GetCourseProficiency(userID, courseID int64) (*models.CourseProficiency, error) {
	var p models.CourseProficiency
	err := s.db.QueryRow(
		`SELECT user_id, course_id, upvotes, downvotes_lost, downvotes_defended,
		        tasks_completed, quizzes_passed, quizzes_failed, proficiency, updated_at
		 FROM course_proficiency WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(&p.UserID, &p.CourseID, &p.Upvotes, &p.DownvotesLost, &p.DownvotesDefended,
		&p.TasksCompleted, &p.QuizzesPassed, &p.QuizzesFailed, &p.Proficiency, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course proficiency: %w", err)
	}
	return &p, nil
}

func (s *Store) SetProficiency(userID, courseID int64, score int) error {
	_, err := s.db.Exec(
		`UPDATE course_proficiency SET proficiency = $3, updated_at = NOW()
		 WHERE user_id = $1 AND course_id = $2`,
		userID, courseID, score,
	)
	return err
}

// ── Leaderboards ────────────────────────────────────────

func (s *Store) GlobalLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, u.reputation, u.token_balance,
		        ROW_NUMBER() OVER (ORDER BY u.reputation DESC, u.id) AS rank
		 FROM users u
		 ORDER BY u.reputation DESC, u.id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get global leaderboard: %w", err)
	}
	defer rows.Close()

	return scanLeaderboard(rows)
}

func (s *Store) CourseLeaderboard(courseID int64, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, cp.proficiency, u.token_balance,
		        ROW_NUMBER() OVER (ORDER BY cp.proficiency DESC, u.id) AS rank
		 FROM course_proficiency cp
		 JOIN users u ON u.id = cp.user_id
		 WHERE cp.course_id = $1
		 ORDER BY cp.proficiency DESC, u.id
		 LIMIT $2`,
		courseID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get course leaderboard: %w", err)
	}
	defer rows.Close()

	return scanLeaderboard(rows)
}

func scanLeaderboard(rows *sql.Rows) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		var fullName string
		if err := rows.Scan(&e.UserID, &fullName, &e.Score, &e.TokenBalance, &e.Rank); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.Name = models.FormatDisplayName(fullName)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
