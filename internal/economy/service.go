package economy

import (
	"fmt"
	"log"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/reputation"
)

type Service struct {
	store         *Store
	reputation    *reputation.Service
	decayInterval time.Duration
	now           func() time.Time
}

func NewService(store *Store, reputation *reputation.Service, decayInterval time.Duration) *Service {
	return &Service{
		store:         store,
		reputation:    reputation,
		decayInterval: decayInterval,
		now:           time.Now,
	}
}

// RunDecay applies one decay step to every eligible task and reports how
// many were reduced. Tasks already at the floor are skipped, so repeated
// runs settle to a no-op.
func (s *Service) RunDecay() (int, error) {
	now := s.now()

	expired, err := s.store.ExpireOverdueTasks(now)
	if err != nil {
		log.Printf("[economy] WARN: failed to expire overdue tasks: %v", err)
	} else if expired > 0 {
		log.Printf("[economy] expired %d overdue tasks", expired)
	}

	tasks, err := s.store.ListDecayCandidates(now, s.decayInterval)
	if err != nil {
		return 0, err
	}

	decayed := 0
	for _, task := range tasks {
		if !DecayEligible(task, now, s.decayInterval) {
			continue
		}
		next := DecayStep(task.TokenStake)
		if next == task.TokenStake {
			continue
		}
		if err := s.store.ApplyDecay(task.ID, next, now); err != nil {
			log.Printf("[economy] WARN: failed to decay task %d: %v", task.ID, err)
			continue
		}
		decayed++
	}

	if decayed > 0 {
		log.Printf("[economy] decay pass reduced %d of %d candidate tasks", decayed, len(tasks))
	}
	return decayed, nil
}

// RunTolerance charges absence penalties, at most once per user per calendar
// day. The day claim is the concurrency guard: whichever run flips
// last_penalty_date first does the charging.
func (s *Service) RunTolerance() (int, error) {
	today := dateOf(s.now())
	users, err := s.store.ListToleranceCandidates(today)
	if err != nil {
		return 0, err
	}

	charged := 0
	for _, u := range users {
		if u.LastActiveDate == nil || u.TokenBalance == 0 {
			continue
		}
		absent := DaysAbsent(*u.LastActiveDate, today)
		over := absent - ToleranceCap(u.LongestStreak)
		bleed := BleedAmount(over)
		if bleed == 0 {
			continue
		}

		claimed, err := s.store.ClaimDailyPenalty(u.ID, today)
		if err != nil {
			log.Printf("[economy] WARN: failed to claim penalty day for user %d: %v", u.ID, err)
			continue
		}
		if !claimed {
			continue
		}

		entry, err := s.store.Penalize(u.ID, models.EntryToleranceBleed, bleed,
			fmt.Sprintf("bleed:%s", today.Format("2006-01-02")),
			fmt.Sprintf("absence penalty: %d days over tolerance", over))
		if err != nil {
			log.Printf("[economy] WARN: failed to charge bleed for user %d: %v", u.ID, err)
			continue
		}

		if lost := -entry.Amount; lost > 0 {
			if err := s.store.AddBleedLoss(u.ID, lost); err != nil {
				log.Printf("[economy] WARN: failed to record bleed loss for user %d: %v", u.ID, err)
			}
		}
		if err := s.reputation.Recompute(u.ID); err != nil {
			log.Printf("[economy] WARN: failed to recompute reputation for user %d: %v", u.ID, err)
		}
		charged++
	}

	if charged > 0 {
		log.Printf("[economy] tolerance pass charged %d of %d candidates", charged, len(users))
	}
	return charged, nil
}

// ToleranceStatus builds the absence report without mutating anything.
func (s *Service) ToleranceStatus(userID int64) (*models.ToleranceStatus, error) {
	u, err := s.store.GetToleranceRow(userID)
	if err != nil {
		return nil, err
	}

	capDays := ToleranceCap(u.LongestStreak)
	absent := 0
	if u.LastActiveDate != nil {
		absent = DaysAbsent(*u.LastActiveDate, dateOf(s.now()))
	}
	grace := capDays - absent
	if grace < 0 {
		grace = 0
	}

	bleedToday := BleedAmount(absent - capDays)
	if bleedToday > u.TokenBalance {
		bleedToday = u.TokenBalance
	}
	bleedTomorrow := BleedAmount(absent + 1 - capDays)
	if bleedTomorrow > u.TokenBalance {
		bleedTomorrow = u.TokenBalance
	}

	return &models.ToleranceStatus{
		ToleranceCap:       capDays,
		DaysAbsent:         absent,
		GraceDaysRemaining: grace,
		InGrace:            absent <= capDays,
		BleedToday:         bleedToday,
		BleedTomorrow:      bleedTomorrow,
		TokensLostToBleed:  u.TokensLostToBleed,
	}, nil
}

// Ledger returns the caller's newest entries plus the live balance.
func (s *Service) Ledger(userID int64, limit, offset int) (*models.LedgerListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, total, err := s.store.ListEntries(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	balance, err := s.store.Balance(userID)
	if err != nil {
		return nil, err
	}

	return &models.LedgerListResponse{
		Entries: entries,
		Balance: balance,
		Total:   total,
	}, nil
}

// dateOf truncates to the calendar day in UTC, matching the DATE columns.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
