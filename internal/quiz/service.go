package quiz

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/apperr"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/economy"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/generator"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/reputation"
)

type Service struct {
	store      *Store
	gen        *generator.Generator
	ledger     *economy.Store
	reputation *reputation.Service
	now        func() time.Time
}

func NewService(store *Store, gen *generator.Generator, ledger *economy.Store, reputation *reputation.Service) *Service {
	return &Service{
		store:      store,
		gen:        gen,
		ledger:     ledger,
		reputation: reputation,
		now:        time.Now,
	}
}

// StartAttempt opens a fresh quiz run on a task. Questions are generated
// before any tokens move, so a generation failure costs nothing. The stake
// is deducted up front and decays with the attempt number.
func (s *Service) StartAttempt(ctx context.Context, userID, taskID int64) (*models.AttemptView, error) {
	task, err := s.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.AssignedTo != nil && *task.AssignedTo != userID {
		return nil, apperr.NotFoundf("task %d", taskID)
	}
	if task.Status != models.TaskPending && task.Status != models.TaskInProgress {
		return nil, apperr.Conflictf("task is %s", task.Status)
	}
	if !task.Deadline.After(s.now()) {
		return nil, apperr.Conflictf("task deadline has passed")
	}

	open, err := s.store.HasOpenAttempt(userID, taskID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, apperr.Conflictf("an attempt on task %d is already in progress", taskID)
	}

	prior, err := s.store.CountAttempts(userID, taskID)
	if err != nil {
		return nil, err
	}
	attemptNumber := prior + 1
	effectiveStake := economy.ReattemptStake(task.TokenStake, attemptNumber)

	questions, err := s.gen.GenerateQuiz(ctx, *task)
	if err != nil {
		return nil, err
	}

	reference := fmt.Sprintf("task:%d attempt:%d", taskID, attemptNumber)
	if _, err := s.ledger.Debit(userID, models.EntryQuizStake, effectiveStake, reference,
		fmt.Sprintf("quiz stake for attempt %d on task %d", attemptNumber, taskID)); err != nil {
		return nil, err
	}

	attempt := &models.QuizAttempt{
		UserID:         userID,
		TaskID:         taskID,
		AttemptNumber:  attemptNumber,
		EffectiveStake: effectiveStake,
		Status:         models.AttemptMCQInProgress,
		Questions:      questions,
	}
	if err := s.store.CreateAttempt(attempt); err != nil {
		// A racing start won the attempt number. Return the stake so the
		// loser's balance is untouched.
		if apperr.IsConflict(err) {
			if _, refundErr := s.ledger.Credit(userID, models.EntryAdjustment, effectiveStake, reference,
				"stake returned: duplicate attempt start"); refundErr != nil {
				log.Printf("[quiz] WARN: failed to return stake to user %d after duplicate start: %v", userID, refundErr)
			}
		}
		return nil, err
	}

	if task.Status == models.TaskPending {
		if _, err := s.store.TransitionTask(taskID, models.TaskPending, models.TaskInProgress); err != nil {
			log.Printf("[quiz] WARN: failed to move task %d in progress: %v", taskID, err)
		}
	}

	return attemptView(attempt), nil
}

// SubmitMCQ grades the response sheet and settles the stake exactly once.
// A pass pays out double the effective stake and opens the theory round.
func (s *Service) SubmitMCQ(userID, attemptID int64, req models.SubmitMCQRequest) (*models.SubmitMCQResponse, error) {
	attempt, err := s.store.GetAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, apperr.NotFoundf("attempt %d", attemptID)
	}
	if attempt.Status != models.AttemptMCQInProgress {
		return nil, apperr.Conflictf("attempt %d is already submitted", attemptID)
	}
	if len(req.Responses) > len(attempt.Questions) {
		return nil, apperr.Validationf("expected at most %d responses, got %d", len(attempt.Questions), len(req.Responses))
	}

	score, passed, graded := ScoreMCQ(attempt.Questions, req.Responses)

	next := models.AttemptMCQFailed
	if passed {
		next = models.AttemptMCQCompleted
	}
	if !attempt.Status.CanTransition(next) {
		return nil, apperr.Conflictf("attempt %d cannot move from %s to %s", attemptID, attempt.Status, next)
	}

	saved, err := s.store.SaveMCQResult(attemptID, next, graded, score, passed, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, apperr.Conflictf("attempt %d is already submitted", attemptID)
	}

	tokensMoved := 0
	settled, err := s.store.SettleTokens(attemptID)
	if err != nil {
		log.Printf("[quiz] WARN: failed to settle attempt %d: %v", attemptID, err)
	}
	if settled {
		if passed {
			entry, err := s.ledger.Credit(userID, models.EntryQuizPayout, 2*attempt.EffectiveStake,
				fmt.Sprintf("task:%d attempt:%d", attempt.TaskID, attempt.AttemptNumber),
				fmt.Sprintf("quiz payout for attempt %d on task %d", attempt.AttemptNumber, attempt.TaskID))
			if err != nil {
				log.Printf("[quiz] WARN: failed to pay out attempt %d: %v", attemptID, err)
			} else {
				tokensMoved = entry.Amount
			}
		} else {
			if err := s.ledger.AddTokenLoss(userID, attempt.EffectiveStake); err != nil {
				log.Printf("[quiz] WARN: failed to record token loss for user %d: %v", userID, err)
			}
		}

		delta := reputation.StatDelta{QuizzesFailed: 1}
		if passed {
			delta = reputation.StatDelta{QuizzesPassed: 1}
		}
		task, err := s.store.GetTask(attempt.TaskID)
		if err != nil {
			log.Printf("[quiz] WARN: failed to load task %d for stats: %v", attempt.TaskID, err)
		} else {
			if err := s.reputation.BumpStats(userID, task.CourseID, delta); err != nil {
				log.Printf("[quiz] WARN: failed to bump stats for user %d: %v", userID, err)
			}
			if err := s.reputation.RecomputeCourse(userID, task.CourseID); err != nil {
				log.Printf("[quiz] WARN: failed to recompute reputation for user %d: %v", userID, err)
			}
		}
		if err := s.reputation.TouchStreak(userID); err != nil {
			log.Printf("[quiz] WARN: failed to touch streak for user %d: %v", userID, err)
		}
	}

	status := next
	if passed {
		moved, err := s.store.TransitionAttempt(attemptID, models.AttemptMCQCompleted, models.AttemptTheoryPending)
		if err != nil {
			log.Printf("[quiz] WARN: failed to open theory round for attempt %d: %v", attemptID, err)
		} else if moved {
			status = models.AttemptTheoryPending
		}
	}

	balance, err := s.ledger.Balance(userID)
	if err != nil {
		return nil, err
	}

	return &models.SubmitMCQResponse{
		AttemptID:    attemptID,
		Score:        score,
		Passed:       passed,
		Status:       status,
		TokensMoved:  tokensMoved,
		TokenBalance: balance,
		Responses:    graded,
	}, nil
}

// SubmitTheory closes out a passed attempt with the written answer and
// marks the task completed, which is what peer review runs against.
func (s *Service) SubmitTheory(userID, attemptID int64, req models.SubmitTheoryRequest) (*models.QuizAttempt, error) {
	attempt, err := s.store.GetAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, apperr.NotFoundf("attempt %d", attemptID)
	}

	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		return nil, apperr.Validationf("answer is required")
	}
	if !attempt.Status.CanTransition(models.AttemptSubmitted) {
		return nil, apperr.Conflictf("attempt %d is not awaiting a theory answer", attemptID)
	}

	saved, err := s.store.SaveTheory(attemptID, answer, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, apperr.Conflictf("attempt %d is not awaiting a theory answer", attemptID)
	}

	completed, err := s.store.TransitionTask(attempt.TaskID, models.TaskInProgress, models.TaskCompleted)
	if err != nil {
		log.Printf("[quiz] WARN: failed to complete task %d: %v", attempt.TaskID, err)
	}
	if completed {
		task, err := s.store.GetTask(attempt.TaskID)
		if err != nil {
			log.Printf("[quiz] WARN: failed to load task %d for stats: %v", attempt.TaskID, err)
		} else {
			if err := s.reputation.BumpStats(userID, task.CourseID, reputation.StatDelta{TasksCompleted: 1}); err != nil {
				log.Printf("[quiz] WARN: failed to bump stats for user %d: %v", userID, err)
			}
			if err := s.reputation.RecomputeCourse(userID, task.CourseID); err != nil {
				log.Printf("[quiz] WARN: failed to recompute reputation for user %d: %v", userID, err)
			}
		}
	}
	if err := s.reputation.TouchStreak(userID); err != nil {
		log.Printf("[quiz] WARN: failed to touch streak for user %d: %v", userID, err)
	}

	return s.store.GetAttempt(attemptID)
}

// AttemptResult returns the attempt as its owner may see it right now. The
// answer key stays hidden while the MCQ phase is open.
func (s *Service) AttemptResult(userID, attemptID int64) (interface{}, error) {
	attempt, err := s.store.GetAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, apperr.NotFoundf("attempt %d", attemptID)
	}
	if attempt.Status == models.AttemptMCQInProgress {
		return attemptView(attempt), nil
	}
	return attempt, nil
}

func attemptView(a *models.QuizAttempt) *models.AttemptView {
	served := make([]models.ServedQuestion, len(a.Questions))
	for i, q := range a.Questions {
		served[i] = models.ServedQuestion{Prompt: q.Prompt, Options: q.Options}
	}
	return &models.AttemptView{
		ID:             a.ID,
		TaskID:         a.TaskID,
		AttemptNumber:  a.AttemptNumber,
		EffectiveStake: a.EffectiveStake,
		Status:         a.Status,
		Questions:      served,
		StartedAt:      a.StartedAt,
	}
}
