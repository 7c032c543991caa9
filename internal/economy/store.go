package economy

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

// ── Ledger ──────────────────────────────────────────────

// Credit adds tokens and records the ledger row in one transaction.
func (s *Store) Credit(userID int64, entryType models.LedgerEntryType, amount int, reference, description string) (*models.TokenLedgerEntry, error) {
	if amount <= 0 {
		return nil, apperr.Validationf("credit amount must be positive, got %d", amount)
	}
	return s.applyEntry(userID, entryType, amount, reference, description, false)
}

// Debit removes tokens, rejecting the whole movement when the balance
// cannot cover it.
func (s *Store) Debit(userID int64, entryType models.LedgerEntryType, amount int, reference, description string) (*models.TokenLedgerEntry, error) {
	if amount <= 0 {
		return nil, apperr.Validationf("debit amount must be positive, got %d", amount)
	}
	return s.applyEntry(userID, entryType, -amount, reference, description, false)
}

// Penalize removes up to amount, clamping at zero. The ledger row records
// what actually moved, which may be less than asked.
func (s *Store) Penalize(userID int64, entryType models.LedgerEntryType, amount int, reference, description string) (*models.TokenLedgerEntry, error) {
	if amount <= 0 {
		return nil, apperr.Validationf("penalty amount must be positive, got %d", amount)
	}
	return s.applyEntry(userID, entryType, -amount, reference, description, true)
}

// applyEntry moves tokens for one user and appends the matching ledger row
// inside a single transaction, so balance_after always equals the running
// sum of amounts in id order.
func (s *Store) applyEntry(userID int64, entryType models.LedgerEntryType, amount int, reference, description string, allowPartial bool) (*models.TokenLedgerEntry, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	var balance int
	err = tx.QueryRow(`SELECT token_balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("user %d", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("lock balance: %w", err)
	}

	applied := amount
	if balance+applied < 0 {
		if !allowPartial {
			return nil, apperr.Conflictf("insufficient balance: need %d, have %d", -amount, balance)
		}
		applied = -balance
	}

	var after int
	err = tx.QueryRow(
		`UPDATE users SET token_balance = GREATEST(0, token_balance + $2)
		 WHERE id = $1
		 RETURNING token_balance`,
		userID, applied,
	).Scan(&after)
	if err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	var refPtr *string
	if reference != "" {
		refPtr = &reference
	}
	entry := &models.TokenLedgerEntry{
		UserID:       userID,
		EntryType:    entryType,
		Amount:       applied,
		BalanceAfter: after,
		Reference:    refPtr,
		Description:  description,
	}
	err = tx.QueryRow(
		`INSERT INTO token_ledger (user_id, entry_type, amount, balance_after, reference, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		userID, entryType, applied, after, refPtr, description,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ledger tx: %w", err)
	}
	return entry, nil
}

func (s *Store) Balance(userID int64) (int, error) {
	var balance int
	err := s.db.QueryRow(`SELECT token_balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, apperr.NotFoundf("user %d", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// ListEntries returns the newest entries first, plus the total count.
func (s *Store) ListEntries(userID int64, limit, offset int) ([]models.TokenLedgerEntry, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM token_ledger WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, entry_type, amount, balance_after, reference, description, created_at
		 FROM token_ledger
		 WHERE user_id = $1
		 ORDER BY id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []models.TokenLedgerEntry{}
	for rows.Next() {
		var e models.TokenLedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.EntryType, &e.Amount, &e.BalanceAfter, &e.Reference, &e.Description, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// AddTokenLoss bumps the lifetime loss counter that feeds reputation. Used
// for failed quiz stakes and lost review penalties.
func (s *Store) AddTokenLoss(userID int64, amount int) error {
	_, err := s.db.Exec(
		`UPDATE users SET tokens_lost_total = tokens_lost_total + $2 WHERE id = $1`,
		userID, amount,
	)
	return err
}

// AddBleedLoss records an absence penalty in both loss counters.
func (s *Store) AddBleedLoss(userID int64, amount int) error {
	_, err := s.db.Exec(
		`UPDATE users SET tokens_lost_to_bleed = tokens_lost_to_bleed + $2,
		        tokens_lost_total = tokens_lost_total + $2
		 WHERE id = $1`,
		userID, amount,
	)
	return err
}

// ── Decay ───────────────────────────────────────────────

// ExpireOverdueTasks closes open tasks whose deadline has passed. Returns
// how many rows flipped.
func (s *Store) ExpireOverdueTasks(now time.Time) (int64, error) {
	result, err := s.db.Exec(
		`UPDATE tasks SET status = 'expired'
		 WHERE status IN ('pending', 'in_progress') AND deadline <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("expire overdue tasks: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// ListDecayCandidates returns open tasks with a live deadline and a stake
// left to shrink. A task decayed within the last interval is skipped, so a
// rerun cannot stack steps. Age eligibility is rechecked in Go by
// DecayEligible; tasks that already cost somebody a settled attempt are
// left alone.
func (s *Store) ListDecayCandidates(now time.Time, interval time.Duration) ([]models.Task, error) {
	cutoff := now.Add(-interval)
	rows, err := s.db.Query(
		`SELECT id, course_id, topic, token_stake, status, deadline, created_at
		 FROM tasks
		 WHERE status IN ('pending', 'in_progress')
		   AND deadline > $1
		   AND token_stake > 1
		   AND (decayed_at IS NULL OR decayed_at <= $2)
		   AND NOT EXISTS (
		       SELECT 1 FROM quiz_attempts qa
		       WHERE qa.task_id = tasks.id AND qa.token_settled
		   )`,
		now, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("list decay candidates: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.CourseID, &t.Topic, &t.TokenStake, &t.Status, &t.Deadline, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan decay candidate: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ApplyDecay writes the reduced stake, keeping the reward in sync.
func (s *Store) ApplyDecay(taskID int64, newStake int, now time.Time) error {
	_, err := s.db.Exec(
		`UPDATE tasks SET token_stake = $2, token_reward = $2, decayed_at = $3 WHERE id = $1`,
		taskID, newStake, now,
	)
	if err != nil {
		return fmt.Errorf("apply decay: %w", err)
	}
	return nil
}

// ── Tolerance ───────────────────────────────────────────

// ListToleranceCandidates returns users who have been active at least once
// and have not been charged on or after the given day.
func (s *Store) ListToleranceCandidates(today time.Time) ([]models.User, error) {
	rows, err := s.db.Query(
		`SELECT id, token_balance, longest_streak, last_active_date, last_penalty_date, tokens_lost_to_bleed
		 FROM users
		 WHERE last_active_date IS NOT NULL
		   AND (last_penalty_date IS NULL OR last_penalty_date < $1)`,
		today,
	)
	if err != nil {
		return nil, fmt.Errorf("list tolerance candidates: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.TokenBalance, &u.LongestStreak, &u.LastActiveDate, &u.LastPenaltyDate, &u.TokensLostToBleed); err != nil {
			return nil, fmt.Errorf("scan tolerance candidate: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetToleranceRow loads the fields the absence report needs.
func (s *Store) GetToleranceRow(userID int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		`SELECT id, token_balance, longest_streak, last_active_date, last_penalty_date, tokens_lost_to_bleed
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.TokenBalance, &u.LongestStreak, &u.LastActiveDate, &u.LastPenaltyDate, &u.TokensLostToBleed)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("user %d", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get tolerance row: %w", err)
	}
	return &u, nil
}

// ClaimDailyPenalty marks today's penalty as charged. It reports false when
// another run already claimed the day.
func (s *Store) ClaimDailyPenalty(userID int64, today time.Time) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE users SET last_penalty_date = $2
		 WHERE id = $1 AND (last_penalty_date IS NULL OR last_penalty_date < $2)`,
		userID, today,
	)
	if err != nil {
		return false, fmt.Errorf("claim penalty day: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
