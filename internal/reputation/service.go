package reputation

import (
	"fmt"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) GetUser(userID int64) (*models.User, error) {
	return s.store.GetUser(userID)
}

// ── Streak ──────────────────────────────────────────────

// TouchStreak marks the user active today. Consecutive days grow the streak,
// any gap resets it to 1, and the longest streak only ever ratchets up.
func (s *Service) TouchStreak(userID int64) error {
	u, err := s.store.GetUser(userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	today := s.now().UTC().Truncate(24 * time.Hour)

	current := u.CurrentStreakDays
	if u.LastActiveDate != nil {
		lastActive := u.LastActiveDate.Truncate(24 * time.Hour)
		// Already counted today
		if lastActive.Equal(today) {
			return nil
		}
		if int(today.Sub(lastActive).Hours()/24) == 1 {
			current++
		} else {
			current = 1
		}
	} else {
		// First ever activity
		current = 1
	}

	longest := u.LongestStreak
	if current > longest {
		longest = current
	}

	return s.store.UpdateStreak(userID, current, longest, today)
}

// ── Recompute ───────────────────────────────────────────

// Recompute rederives the global reputation score from the current counters.
func (s *Service) Recompute(userID int64) error {
	u, err := s.store.GetUser(userID)
	if err != nil {
		return err
	}
	return s.store.SetReputation(userID, Score(u.Stats))
}

// RecomputeCourse rederives both the global score and the course proficiency.
func (s *Service) RecomputeCourse(userID, courseID int64) error {
	if err := s.Recompute(userID); err != nil {
		return err
	}

	prof, err := s.store.GetCourseProficiency(userID, courseID)
	if err != nil {
		return err
	}
	if prof == nil {
		return nil
	}
	return s.store.SetProficiency(userID, courseID, Proficiency(*prof))
}

// BumpStats forwards one event's counter deltas to the store.
func (s *Service) BumpStats(userID, courseID int64, d StatDelta) error {
	return s.store.BumpStats(userID, courseID, d)
}

// ── Leaderboards ────────────────────────────────────────

func (s *Service) GlobalLeaderboard(limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	entries, err := s.store.GlobalLeaderboard(limit)
	if err != nil {
		return nil, err
	}
	return &models.LeaderboardResponse{Entries: entries, Metric: "reputation"}, nil
}

func (s *Service) CourseLeaderboard(courseID int64, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	entries, err := s.store.CourseLeaderboard(courseID, limit)
	if err != nil {
		return nil, err
	}
	return &models.LeaderboardResponse{Entries: entries, Metric: "proficiency"}, nil
}
